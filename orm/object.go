package orm

import (
	"github.com/iov-one/kitties/errors"
	"github.com/iov-one/kitties/weave"
)

// SimpleObj pairs a key with a value. Buckets use it as their prototype.
type SimpleObj struct {
	key   []byte
	value CloneableData
}

var _ Object = (*SimpleObj)(nil)

func NewSimpleObj(key []byte, value CloneableData) *SimpleObj {
	return &SimpleObj{key: key, value: value}
}

func (o *SimpleObj) Key() []byte {
	return o.key
}

func (o *SimpleObj) SetKey(key []byte) {
	o.key = key
}

func (o *SimpleObj) Value() weave.Persistent {
	return o.value
}

// Validate requires a key and a valid value.
func (o *SimpleObj) Validate() error {
	switch {
	case len(o.key) == 0:
		return errors.Field("Key", errors.ErrEmpty, "required")
	case o.value == nil:
		return errors.Field("Value", errors.ErrEmpty, "required")
	}
	return errors.Field("Value", o.value.Validate(), "invalid")
}

// Clone deep copies the value. The key is copied too, if set.
func (o *SimpleObj) Clone() Object {
	c := &SimpleObj{value: o.value.Copy()}
	if len(o.key) != 0 {
		c.key = append([]byte{}, o.key...)
	}
	return c
}
