package app

import (
	"github.com/iov-one/kitties/errors"
	"github.com/iov-one/kitties/weave"
)

// ChainInitializers returns an initializer running all the given ones in
// order. The first failure stops the genesis.
func ChainInitializers(inits ...weave.Initializer) weave.Initializer {
	return initializers(inits)
}

type initializers []weave.Initializer

func (all initializers) FromGenesis(ctx weave.Context, opts weave.Options, db weave.KVStore) error {
	for _, init := range all {
		if err := init.FromGenesis(ctx, opts, db); err != nil {
			return err
		}
	}
	return nil
}

// chainIDKey lives under the "_wv:" prefix used for framework data, apart
// from any bucket.
var chainIDKey = []byte("_wv:chainID")

// loadChainID returns the stored chain id or an empty string.
func loadChainID(db weave.ReadOnlyKVStore) (string, error) {
	raw, err := db.Get(chainIDKey)
	if err != nil {
		return "", errors.Wrap(err, "load chain id")
	}
	return string(raw), nil
}

// saveChainID writes the chain id. It can be written only once.
func saveChainID(db weave.KVStore, chainID string) error {
	if !weave.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id %q", chainID)
	}
	switch ok, err := db.Has(chainIDKey); {
	case err != nil:
		return errors.Wrap(err, "load chain id")
	case ok:
		return errors.Wrap(errors.ErrImmutable, "chain id")
	}
	return errors.Wrap(db.Set(chainIDKey, []byte(chainID)), "save chain id")
}
