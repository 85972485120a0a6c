package orm

import (
	"github.com/iov-one/kitties/errors"
	amino "github.com/tendermint/go-amino"
)

var testCodec = amino.NewCodec()

// tally is a minimal model used to test buckets.
type tally struct {
	Name  string
	Count int64
}

var _ Model = (*tally)(nil)

func (t *tally) Marshal() ([]byte, error) {
	return testCodec.MarshalBinaryBare(t)
}

func (t *tally) Unmarshal(raw []byte) error {
	return testCodec.UnmarshalBinaryBare(raw, t)
}

func (t *tally) Validate() error {
	if t.Count < 0 {
		return errors.Wrap(errors.ErrState, "negative count")
	}
	return nil
}

func (t *tally) Copy() CloneableData {
	cpy := *t
	return &cpy
}

// label is a model with a different wire format than tally.
type label struct {
	Level int64
}

func (l *label) Marshal() ([]byte, error) {
	return testCodec.MarshalBinaryBare(l)
}

func (l *label) Unmarshal(raw []byte) error {
	return testCodec.UnmarshalBinaryBare(raw, l)
}

func (l *label) Validate() error {
	if l.Level <= 0 {
		return errors.Wrap(errors.ErrEmpty, "level")
	}
	return nil
}

func (l *label) Copy() CloneableData {
	cpy := *l
	return &cpy
}
