package orm

import (
	"encoding/binary"
	"math"

	"github.com/iov-one/kitties/errors"
	"github.com/iov-one/kitties/weave"
)

// Counter maintains a single unsigned value. All arithmetic is checked, a
// value never wraps around.
type Counter struct {
	id []byte
}

// NewCounter returns a counter. Counter is using following pattern
// to construct a key:
//
//	_s.<bucket>:<name>
func NewCounter(bucket, name string) Counter {
	return Counter{
		id: []byte("_s." + bucket + ":" + name),
	}
}

// Key returns the database key the counter is stored under.
func (c Counter) Key() []byte {
	return c.id
}

// Value returns the current state. A counter that was never written is zero.
func (c Counter) Value(db weave.ReadOnlyKVStore) (uint64, error) {
	raw, err := db.Get(c.id)
	if err != nil {
		return 0, err
	}
	return decodeCounter(raw)
}

// Next returns the value following the current one, without writing it.
// ErrOverflow is returned if the value cannot grow any more.
func (c Counter) Next(db weave.ReadOnlyKVStore) (uint64, error) {
	val, err := c.Value(db)
	if err != nil {
		return 0, err
	}
	if val == math.MaxUint64 {
		return 0, errors.Wrapf(errors.ErrOverflow, "counter %s", c.id)
	}
	return val + 1, nil
}

// Set stores the given value.
func (c Counter) Set(db weave.KVStore, val uint64) error {
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, val)
	return db.Set(c.id, raw)
}

func decodeCounter(raw []byte) (uint64, error) {
	if raw == nil {
		return 0, nil
	}
	if len(raw) != 8 {
		return 0, errors.Wrapf(errors.ErrState, "counter value of %d bytes", len(raw))
	}
	return binary.BigEndian.Uint64(raw), nil
}
