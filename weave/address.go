package weave

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/btcsuite/btcutil/bech32"
	"github.com/iov-one/kitties/errors"
	"golang.org/x/crypto/blake2b"
)

const (
	// AddressLength is the size of every address, in bytes.
	AddressLength = 20

	// AddressPrefix is the human readable part of the bech32 address form.
	AddressPrefix = "kitty"
)

// Address identifies an account. It is the truncated blake2b digest of a
// public key or of any other data.
type Address []byte

// NewAddress returns the address derived from data.
func NewAddress(data []byte) Address {
	h := blake2b.Sum256(data)
	return h[:AddressLength]
}

// ParseAddress accepts both the bech32 and the hex representation of an
// address. The result is validated.
func ParseAddress(s string) (Address, error) {
	var (
		raw []byte
		err error
	)
	if strings.HasPrefix(strings.ToLower(s), AddressPrefix+"1") {
		raw, err = decodeBech32(s)
	} else {
		raw, err = hex.DecodeString(s)
		if err != nil {
			err = errors.Wrapf(errors.ErrInput, "hex address: %s", err)
		}
	}
	if err != nil {
		return nil, err
	}
	if err := Address(raw).Validate(); err != nil {
		return nil, err
	}
	return raw, nil
}

func (a Address) Equals(b Address) bool {
	return bytes.Equal(a, b)
}

// Bech32 returns the address in its bech32 form.
func (a Address) Bech32() (string, error) {
	data, err := bech32.ConvertBits(a, 8, 5, true)
	if err != nil {
		return "", errors.Wrapf(errors.ErrInput, "convert bits: %s", err)
	}
	s, err := bech32.Encode(AddressPrefix, data)
	if err != nil {
		return "", errors.Wrapf(errors.ErrInput, "bech32 encode: %s", err)
	}
	return s, nil
}

// String returns the bech32 form, or upper case hex if the address cannot
// be encoded.
func (a Address) String() string {
	if len(a) == 0 {
		return "(nil)"
	}
	if s, err := a.Bech32(); err == nil {
		return s
	}
	return fmt.Sprintf("%X", []byte(a))
}

// MarshalJSON writes the bech32 form instead of base64.
func (a Address) MarshalJSON() ([]byte, error) {
	s, err := a.Bech32()
	if err != nil {
		return nil, err
	}
	return json.Marshal(s)
}

// UnmarshalJSON accepts the bech32 and the hex forms.
func (a *Address) UnmarshalJSON(src []byte) error {
	var s string
	if err := json.Unmarshal(src, &s); err != nil {
		return errors.Wrapf(errors.ErrInput, "address: %s", err)
	}
	addr, err := ParseAddress(s)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// Validate requires an address of AddressLength bytes.
func (a Address) Validate() error {
	switch n := len(a); {
	case n == 0:
		return errors.Wrap(errors.ErrEmpty, "address")
	case n != AddressLength:
		return errors.Wrapf(errors.ErrInput, "address of %d bytes", n)
	}
	return nil
}

func decodeBech32(s string) ([]byte, error) {
	hrp, data, err := bech32.Decode(s)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "bech32 decode: %s", err)
	}
	if hrp != AddressPrefix {
		return nil, errors.Wrapf(errors.ErrInput, "unexpected address prefix %q", hrp)
	}
	raw, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "convert bits: %s", err)
	}
	return raw, nil
}
