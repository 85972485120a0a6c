package weave

import (
	"encoding/json"

	"github.com/iov-one/kitties/errors"
)

// Checker decides whether a transaction may enter the mempool. It must not
// leave any trace in the store that outlives the check.
type Checker interface {
	Check(ctx Context, store KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer executes a transaction included in a block.
type Deliverer interface {
	Deliver(ctx Context, store KVStore, tx Tx) (*DeliverResult, error)
}

// Handler processes the messages of a single path, such as kitties/create.
type Handler interface {
	Checker
	Deliverer
}

// Decorator runs around every handler of the stack, for example to recover
// panics or to authenticate the caller. It calls next to continue.
type Decorator interface {
	Check(ctx Context, store KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx Context, store KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// Registry binds handlers to message paths.
type Registry interface {
	Handle(path string, h Handler)
}

// Options is the app_state of the genesis file, split by extension.
type Options map[string]json.RawMessage

// ReadOptions decodes the section stored under key into obj. A missing
// section leaves obj untouched.
func (o Options) ReadOptions(key string, obj interface{}) error {
	raw, ok := o[key]
	if !ok || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, obj); err != nil {
		return errors.Wrapf(errors.ErrInput, "genesis %q: %s", key, err)
	}
	return nil
}

// Initializer loads the genesis section of an extension into the store.
type Initializer interface {
	FromGenesis(ctx Context, opts Options, kv KVStore) error
}

// GenesisInitializer adapts a function to the Initializer interface.
type GenesisInitializer func(Context, Options, KVStore) error

func (fn GenesisInitializer) FromGenesis(ctx Context, opts Options, kv KVStore) error {
	return fn(ctx, opts, kv)
}
