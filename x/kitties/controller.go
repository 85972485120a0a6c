package kitties

import (
	"github.com/iov-one/kitties/errors"
	"github.com/iov-one/kitties/gconf"
	"github.com/iov-one/kitties/orm"
	"github.com/iov-one/kitties/weave"
)

// ConfigPkg is the name the Configuration is stored under in gconf.
const ConfigPkg = "kitties"

// Controller is the only component that modifies the kitty and ownership
// buckets and the counter. Every operation checks all its preconditions
// before the first write, so a failed operation leaves no trace.
type Controller struct {
	kitties orm.ModelBucket
	owned   orm.ModelBucket
	counter orm.Counter

	dna    DNAGenerator
	gender GenderPolicy
	sink   EventSink
}

// NewController returns a controller generating DNA with the given generator.
// A nil gender policy defaults to GenderOf and a nil sink to NopSink.
func NewController(dna DNAGenerator, gender GenderPolicy, sink EventSink) *Controller {
	if gender == nil {
		gender = GenderOf
	}
	if sink == nil {
		sink = NopSink{}
	}
	return &Controller{
		kitties: NewKittyBucket(),
		owned:   NewOwnedBucket(),
		counter: NewCounter(),
		dna:     dna,
		gender:  gender,
		sink:    sink,
	}
}

// Create mints a kitty for the caller, with a freshly generated DNA and the
// current block time as its creation time.
func (c *Controller) Create(ctx weave.Context, db weave.KVStore, caller weave.Address) ([]byte, *CreatedEvent, error) {
	dna, err := c.dna.Generate(ctx)
	if err != nil {
		c.sink.Rejected(OpMint, err)
		return nil, nil, errors.Wrap(err, "generate dna")
	}
	event, err := c.Mint(ctx, db, caller, dna, c.gender(dna), BlockClock(ctx))
	if err != nil {
		return nil, nil, err
	}
	return dna, event, nil
}

// Mint stores a new kitty owned by owner.
func (c *Controller) Mint(ctx weave.Context, db weave.KVStore, owner weave.Address, dna []byte, gender Gender, clock Clock) (*CreatedEvent, error) {
	event, err := c.mint(db, owner, dna, gender, clock)
	if err != nil {
		c.sink.Rejected(OpMint, err)
		return nil, err
	}
	weave.GetLogger(ctx).Debug("kitty minted",
		"dna", weave.HexBytes(dna), "owner", owner, "count", event.Count)
	c.sink.Created(event)
	return event, nil
}

func (c *Controller) mint(db weave.KVStore, owner weave.Address, dna []byte, gender Gender, clock Clock) (*CreatedEvent, error) {
	if len(dna) == 0 {
		return nil, errors.Wrap(errors.ErrEmpty, "dna")
	}
	conf, err := c.config(db)
	if err != nil {
		return nil, err
	}

	switch err := c.kitties.Has(db, dna); {
	case err == nil:
		return nil, errors.Wrapf(ErrDuplicateToken, "dna %X", dna)
	case !errors.ErrNotFound.Is(err):
		return nil, errors.Wrap(err, "kitty lookup")
	}

	owned, err := c.ownedBy(db, owner)
	if err != nil {
		return nil, err
	}
	if len(owned.DNAs) >= int(conf.MaxOwned) {
		return nil, errors.Wrapf(ErrTooManyOwned, "%s owns %d", owner, len(owned.DNAs))
	}

	count, err := c.counter.Next(db)
	if err != nil {
		return nil, errors.Wrap(err, "kitty counter")
	}

	now, err := clock.Now()
	if err != nil {
		return nil, errors.Wrap(err, "clock")
	}
	kitty := &Kitty{
		Owner:     owner,
		Gender:    gender,
		CreatedAt: weave.AsUnixTime(now),
	}
	if err := kitty.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid kitty")
	}
	owned.DNAs = append(owned.DNAs, dna)

	if err := c.owned.Put(db, owner, owned); err != nil {
		return nil, errors.Wrap(err, "save owned")
	}
	if err := c.kitties.Put(db, dna, kitty); err != nil {
		return nil, errors.Wrap(err, "save kitty")
	}
	if err := c.counter.Set(db, count); err != nil {
		return nil, errors.Wrap(err, "save counter")
	}
	return &CreatedEvent{DNA: dna, Owner: owner, Count: count}, nil
}

// Transfer moves a kitty owned by caller to another account. The price of a
// transferred kitty is always cleared.
func (c *Controller) Transfer(ctx weave.Context, db weave.KVStore, caller, to weave.Address, dna []byte) (*TransferredEvent, error) {
	event, err := c.transfer(db, caller, to, dna)
	if err != nil {
		c.sink.Rejected(OpTransfer, err)
		return nil, err
	}
	weave.GetLogger(ctx).Debug("kitty transferred",
		"dna", weave.HexBytes(dna), "from", caller, "to", to)
	c.sink.Transferred(event)
	return event, nil
}

func (c *Controller) transfer(db weave.KVStore, caller, to weave.Address, dna []byte) (*TransferredEvent, error) {
	kitty, err := c.Kitty(db, dna)
	if err != nil {
		return nil, err
	}
	if !kitty.Owner.Equals(caller) {
		return nil, errors.Wrapf(ErrNotOwner, "kitty %X", dna)
	}
	if err := to.Validate(); err != nil {
		return nil, errors.Wrap(err, "destination")
	}
	if caller.Equals(to) {
		return nil, errors.Wrapf(ErrTransferToSelf, "kitty %X", dna)
	}
	conf, err := c.config(db)
	if err != nil {
		return nil, err
	}

	from, err := c.ownedBy(db, caller)
	if err != nil {
		return nil, err
	}
	idx := from.indexOf(dna)
	if idx < 0 {
		return nil, errors.Wrapf(ErrNoSuchToken, "kitty %X not indexed for %s", dna, caller)
	}
	dest, err := c.ownedBy(db, to)
	if err != nil {
		return nil, err
	}
	if len(dest.DNAs)+1 > int(conf.MaxOwned) {
		return nil, errors.Wrapf(ErrTooManyOwned, "%s owns %d", to, len(dest.DNAs))
	}

	from.swapRemove(idx)
	dest.DNAs = append(dest.DNAs, dna)
	kitty.Owner = to
	kitty.Price = nil

	if len(from.DNAs) == 0 {
		if err := c.owned.Delete(db, caller); err != nil {
			return nil, errors.Wrap(err, "delete owned")
		}
	} else if err := c.owned.Put(db, caller, from); err != nil {
		return nil, errors.Wrap(err, "save owned")
	}
	if err := c.owned.Put(db, to, dest); err != nil {
		return nil, errors.Wrap(err, "save owned")
	}
	if err := c.kitties.Put(db, dna, kitty); err != nil {
		return nil, errors.Wrap(err, "save kitty")
	}
	return &TransferredEvent{From: caller, To: to, DNA: dna}, nil
}

// Kitty returns the kitty with the given DNA or ErrNoSuchToken.
func (c *Controller) Kitty(db weave.ReadOnlyKVStore, dna []byte) (*Kitty, error) {
	var kitty Kitty
	switch err := c.kitties.One(db, dna, &kitty); {
	case err == nil:
		return &kitty, nil
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrapf(ErrNoSuchToken, "kitty %X", dna)
	default:
		return nil, errors.Wrap(err, "kitty lookup")
	}
}

// OwnedBy returns the DNA of every kitty owned by the given account.
func (c *Controller) OwnedBy(db weave.ReadOnlyKVStore, owner weave.Address) ([][]byte, error) {
	owned, err := c.ownedBy(db, owner)
	if err != nil {
		return nil, err
	}
	return owned.DNAs, nil
}

// Count returns the number of kitties in existence.
func (c *Controller) Count(db weave.ReadOnlyKVStore) (uint64, error) {
	return c.counter.Value(db)
}

// ReportSupply sends the current number of kitties to the event sink. Call
// it once the store is loaded, before any operation is processed.
func (c *Controller) ReportSupply(db weave.ReadOnlyKVStore) error {
	count, err := c.Count(db)
	if err != nil {
		return errors.Wrap(err, "count")
	}
	c.sink.Supply(count)
	return nil
}

func (c *Controller) ownedBy(db weave.ReadOnlyKVStore, owner weave.Address) (*OwnedKitties, error) {
	var owned OwnedKitties
	switch err := c.owned.One(db, owner, &owned); {
	case err == nil, errors.ErrNotFound.Is(err):
		return &owned, nil
	default:
		return nil, errors.Wrap(err, "owned lookup")
	}
}

func (c *Controller) config(db weave.ReadOnlyKVStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, ConfigPkg, &conf); err != nil {
		return nil, errors.Wrap(err, "kitties configuration")
	}
	return &conf, nil
}
