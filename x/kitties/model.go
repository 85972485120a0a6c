package kitties

import (
	"fmt"

	"github.com/iov-one/kitties/coin"
	"github.com/iov-one/kitties/errors"
	"github.com/iov-one/kitties/orm"
	"github.com/iov-one/kitties/weave"
	amino "github.com/tendermint/go-amino"
)

var codec = amino.NewCodec()

// Gender is the immutable class of a kitty, derived from its DNA.
type Gender int32

const (
	// Male is the gender of kitties with an even DNA length.
	Male Gender = 0
	// Female is the gender of kitties with an odd DNA length.
	Female Gender = 1
)

func (g Gender) String() string {
	switch g {
	case Male:
		return "male"
	case Female:
		return "female"
	default:
		return fmt.Sprintf("gender(%d)", int32(g))
	}
}

// Validate returns an error for values other than Male and Female.
func (g Gender) Validate() error {
	if g != Male && g != Female {
		return errors.Wrapf(errors.ErrInput, "unknown gender %d", int32(g))
	}
	return nil
}

// Kitty is stored in the kitty bucket under its DNA.
type Kitty struct {
	Owner  weave.Address
	Gender Gender
	// Price is only set while the kitty is listed. A transfer always
	// clears it.
	Price     *coin.Coin
	CreatedAt weave.UnixTime
}

var _ orm.Model = (*Kitty)(nil)

func (k *Kitty) Marshal() ([]byte, error) {
	return codec.MarshalBinaryBare(k)
}

func (k *Kitty) Unmarshal(raw []byte) error {
	return codec.UnmarshalBinaryBare(raw, k)
}

func (k *Kitty) Validate() error {
	var errs error
	errs = errors.Append(errs, errors.Field("Owner", k.Owner.Validate(), "invalid owner"))
	errs = errors.Append(errs, errors.Field("Gender", k.Gender.Validate(), "invalid gender"))
	if k.Price != nil {
		errs = errors.Append(errs, errors.Field("Price", k.Price.Validate(), "invalid price"))
		if k.Price.Validate() == nil && !k.Price.IsPositive() {
			errs = errors.Append(errs, errors.Field("Price", errors.ErrInput, fmt.Sprintf("price %s must be positive", k.Price)))
		}
	}
	errs = errors.Append(errs, errors.Field("CreatedAt", k.CreatedAt.Validate(), "invalid creation time"))
	return errs
}

func (k *Kitty) Copy() orm.CloneableData {
	return &Kitty{
		Owner:     append(weave.Address(nil), k.Owner...),
		Gender:    k.Gender,
		Price:     k.Price.Clone(),
		CreatedAt: k.CreatedAt,
	}
}

// OwnedKitties lists the DNA of every kitty an account owns. Only membership
// is meaningful, the order changes when a kitty is transferred away.
type OwnedKitties struct {
	DNAs [][]byte
}

var _ orm.Model = (*OwnedKitties)(nil)

func (o *OwnedKitties) Marshal() ([]byte, error) {
	return codec.MarshalBinaryBare(o)
}

func (o *OwnedKitties) Unmarshal(raw []byte) error {
	return codec.UnmarshalBinaryBare(raw, o)
}

func (o *OwnedKitties) Validate() error {
	for i, dna := range o.DNAs {
		if len(dna) == 0 {
			return errors.Field(fmt.Sprintf("DNAs.%d", i), errors.ErrEmpty, "empty dna")
		}
	}
	return nil
}

func (o *OwnedKitties) Copy() orm.CloneableData {
	dnas := make([][]byte, len(o.DNAs))
	for i, dna := range o.DNAs {
		dnas[i] = append([]byte(nil), dna...)
	}
	return &OwnedKitties{DNAs: dnas}
}

// indexOf returns the position of the given DNA or -1.
func (o *OwnedKitties) indexOf(dna []byte) int {
	for i, d := range o.DNAs {
		if string(d) == string(dna) {
			return i
		}
	}
	return -1
}

// swapRemove deletes the element at position i by moving the last element
// in its place.
func (o *OwnedKitties) swapRemove(i int) {
	last := len(o.DNAs) - 1
	o.DNAs[i] = o.DNAs[last]
	o.DNAs = o.DNAs[:last]
}

const maxOwnedLimit = 1024

// Configuration is stored with gconf under the "kitties" package name.
type Configuration struct {
	// MaxOwned is the highest number of kitties a single account can own.
	MaxOwned int32 `json:"max_owned"`
}

var _ orm.Model = (*Configuration)(nil)

func (c *Configuration) Marshal() ([]byte, error) {
	return codec.MarshalBinaryBare(c)
}

func (c *Configuration) Unmarshal(raw []byte) error {
	return codec.UnmarshalBinaryBare(raw, c)
}

func (c *Configuration) Validate() error {
	if c.MaxOwned < 1 || c.MaxOwned > maxOwnedLimit {
		return errors.Field("MaxOwned", errors.ErrInput,
			fmt.Sprintf("must be between 1 and %d, got %d", maxOwnedLimit, c.MaxOwned))
	}
	return nil
}

func (c *Configuration) Copy() orm.CloneableData {
	cpy := *c
	return &cpy
}

const (
	kittyBucketName = "kitty"
	ownedBucketName = "owned"
	counterName     = "count"
)

// NewKittyBucket returns a bucket storing Kitty models keyed by DNA.
func NewKittyBucket() orm.ModelBucket {
	return orm.NewModelBucket(orm.NewBucket(kittyBucketName, orm.NewSimpleObj(nil, &Kitty{})))
}

// NewOwnedBucket returns a bucket storing OwnedKitties keyed by owner
// address.
func NewOwnedBucket() orm.ModelBucket {
	return orm.NewModelBucket(orm.NewBucket(ownedBucketName, orm.NewSimpleObj(nil, &OwnedKitties{})))
}

// NewCounter returns the counter of existing kitties.
func NewCounter() orm.Counter {
	return NewKittyBucket().Counter(counterName)
}
