/*
Package orm stores typed models in named, prefixed sections of a KVStore.

A bucket holds a single type of model, keyed by its primary key. The raw
database key of an entry is "<bucket>:<key>". Counters are kept beside the
bucket they belong to, under "_s.<bucket>:<name>".
*/
package orm

import (
	"fmt"
	"regexp"

	"github.com/iov-one/kitties/errors"
	"github.com/iov-one/kitties/weave"
)

var validBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// Bucket reads and writes objects of the prototype type under a prefix. It
// is usually wrapped by NewModelBucket.
type Bucket struct {
	name   string
	prefix []byte
	proto  Cloneable
}

var _ weave.QueryHandler = Bucket{}

// NewBucket panics if the name is not 3 to 10 lower case letters or
// underscores.
func NewBucket(name string, proto Cloneable) Bucket {
	if !validBucketName(name) {
		panic(fmt.Sprintf("invalid bucket name %q", name))
	}
	return Bucket{
		name:   name,
		prefix: []byte(name + ":"),
		proto:  proto,
	}
}

func (b Bucket) Name() string {
	return b.name
}

// DBKey returns the prefixed database key. Every call returns a new slice.
func (b Bucket) DBKey(key []byte) []byte {
	out := make([]byte, 0, len(b.prefix)+len(key))
	return append(append(out, b.prefix...), key...)
}

// Register serves the bucket content at "/<path>". An empty path uses the
// bucket name.
func (b Bucket) Register(path string, qr weave.QueryRouter) {
	if path == "" {
		path = b.name
	}
	qr.Register("/"+path, b)
}

// Query looks up a single key or, with the prefix modifier, all keys
// starting with data. Returned keys carry the bucket prefix.
func (b Bucket) Query(db weave.ReadOnlyKVStore, mod string, data []byte) ([]weave.Model, error) {
	return query(db, mod, b.DBKey(data))
}

// Get returns the object stored under key, or nil.
func (b Bucket) Get(db weave.ReadOnlyKVStore, key []byte) (Object, error) {
	raw, err := db.Get(b.DBKey(key))
	if err != nil || raw == nil {
		return nil, err
	}
	obj := b.proto.Clone()
	if err := obj.Value().Unmarshal(raw); err != nil {
		return nil, errors.Wrapf(errors.ErrState, "%s %X: %s", b.name, key, err)
	}
	obj.SetKey(key)
	return obj, nil
}

func (b Bucket) Has(db weave.ReadOnlyKVStore, key []byte) (bool, error) {
	return db.Has(b.DBKey(key))
}

// Save validates and writes the object.
func (b Bucket) Save(db weave.KVStore, obj Object) error {
	if err := obj.Validate(); err != nil {
		return err
	}
	raw, err := obj.Value().Marshal()
	if err != nil {
		return errors.Wrapf(err, "marshal %s", b.name)
	}
	if raw == nil {
		// An empty model is still stored.
		raw = []byte{}
	}
	return db.Set(b.DBKey(obj.Key()), raw)
}

func (b Bucket) Delete(db weave.KVStore, key []byte) error {
	return db.Delete(b.DBKey(key))
}

// Counter returns the named counter of this bucket.
func (b Bucket) Counter(name string) Counter {
	return NewCounter(b.name, name)
}
