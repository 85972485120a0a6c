package orm

import (
	"reflect"

	"github.com/iov-one/kitties/errors"
	"github.com/iov-one/kitties/weave"
)

// ModelBucket stores models by primary key.
type ModelBucket interface {
	// One loads the model stored under key into dest. It fails with
	// ErrNotFound for a missing key and with ErrType if dest is not of
	// the stored type.
	One(db weave.ReadOnlyKVStore, key []byte, dest Model) error

	// Has returns ErrNotFound if nothing is stored under key.
	Has(db weave.ReadOnlyKVStore, key []byte) error

	// Put validates and writes m.
	Put(db weave.KVStore, key []byte, m Model) error

	// Delete fails with ErrNotFound for a missing key.
	Delete(db weave.KVStore, key []byte) error

	Register(path string, qr weave.QueryRouter)
	Counter(name string) Counter
}

func NewModelBucket(b Bucket) ModelBucket {
	return modelBucket{Bucket: b}
}

type modelBucket struct {
	Bucket
}

var _ ModelBucket = modelBucket{}

func (mb modelBucket) One(db weave.ReadOnlyKVStore, key []byte, dest Model) error {
	obj, err := mb.Get(db, key)
	if err != nil {
		return err
	}
	if obj == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s %X", mb.name, key)
	}
	src := reflect.ValueOf(obj.Value())
	dst := reflect.ValueOf(dest)
	if src.Type() != dst.Type() {
		return errors.Wrapf(errors.ErrType, "cannot load %s into %T", src.Type(), dest)
	}
	dst.Elem().Set(src.Elem())
	return nil
}

func (mb modelBucket) Has(db weave.ReadOnlyKVStore, key []byte) error {
	switch ok, err := mb.Bucket.Has(db, key); {
	case err != nil:
		return err
	case !ok:
		return errors.Wrapf(errors.ErrNotFound, "%s %X", mb.name, key)
	}
	return nil
}

func (mb modelBucket) Put(db weave.KVStore, key []byte, m Model) error {
	if err := m.Validate(); err != nil {
		return errors.Wrapf(err, "invalid %s", mb.name)
	}
	return errors.Wrapf(mb.Save(db, NewSimpleObj(key, m)), "save %s", mb.name)
}

func (mb modelBucket) Delete(db weave.KVStore, key []byte) error {
	if err := mb.Has(db, key); err != nil {
		return err
	}
	return mb.Bucket.Delete(db, key)
}
