package gconf

import (
	"github.com/iov-one/kitties/errors"
	"github.com/iov-one/kitties/weave"
)

// ReadStore is the part of weave.ReadOnlyKVStore Load needs.
type ReadStore interface {
	Get([]byte) ([]byte, error)
}

// Store is the part of weave.KVStore Save needs.
type Store interface {
	ReadStore
	Set([]byte, []byte) error
}

// ValidMarshaler is a configuration that can be saved.
type ValidMarshaler interface {
	Marshal() ([]byte, error)
	Validate() error
}

// Unmarshaler is a configuration that can be loaded.
type Unmarshaler interface {
	Unmarshal([]byte) error
}

// Configuration can be both saved and loaded.
type Configuration interface {
	ValidMarshaler
	Unmarshaler
}

// Key returns the database key of the configuration of pkg.
func Key(pkg string) []byte {
	return []byte("_c:" + pkg)
}

// Save writes the configuration of pkg if it is valid.
func Save(db Store, pkg string, conf ValidMarshaler) error {
	if err := conf.Validate(); err != nil {
		return errors.Wrapf(err, "%s configuration", pkg)
	}
	raw, err := conf.Marshal()
	if err != nil {
		return errors.Wrapf(err, "marshal %s configuration", pkg)
	}
	return db.Set(Key(pkg), raw)
}

// Load reads the configuration of pkg into dst. It fails with ErrNotFound
// if the configuration was never saved.
func Load(db ReadStore, pkg string, dst Unmarshaler) error {
	raw, err := db.Get(Key(pkg))
	switch {
	case err != nil:
		return errors.Wrapf(err, "load %s configuration", pkg)
	case raw == nil:
		return errors.Wrapf(errors.ErrNotFound, "%s configuration", pkg)
	}
	return errors.Wrapf(dst.Unmarshal(raw), "unmarshal %s configuration", pkg)
}

// InitConfig reads the "conf.<pkg>" genesis section into conf and saves it.
// A missing section is an ErrNotFound.
func InitConfig(db Store, opts weave.Options, pkg string, conf Configuration) error {
	var sections weave.Options
	if err := opts.ReadOptions("conf", &sections); err != nil {
		return errors.Wrap(err, "genesis conf")
	}
	if _, ok := sections[pkg]; !ok {
		return errors.Wrapf(errors.ErrNotFound, "genesis conf.%s", pkg)
	}
	if err := sections.ReadOptions(pkg, conf); err != nil {
		return errors.Wrapf(err, "genesis conf.%s", pkg)
	}
	return Save(db, pkg, conf)
}
