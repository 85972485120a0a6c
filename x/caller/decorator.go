/*
Package caller trusts the caller address carried by a transaction envelope.

Signature verification happens before a transaction reaches the node, so the
address is taken as is. The Decorator only checks that it is well formed and
exposes it through Authenticate.
*/
package caller

import (
	"github.com/iov-one/kitties/errors"
	"github.com/iov-one/kitties/weave"
)

// CallerTx is implemented by transactions that declare who sent them.
type CallerTx interface {
	weave.Tx
	GetCaller() weave.Address
}

// Decorator adds the transaction caller to the context. Transactions
// without a caller are rejected.
type Decorator struct{}

var _ weave.Decorator = Decorator{}

// NewDecorator returns a caller decorator.
func NewDecorator() Decorator {
	return Decorator{}
}

// Check authenticates the caller before calling down the stack.
func (d Decorator) Check(ctx weave.Context, store weave.KVStore, tx weave.Tx, next weave.Checker) (*weave.CheckResult, error) {
	ctx, err := d.authenticate(ctx, tx)
	if err != nil {
		return nil, err
	}
	return next.Check(ctx, store, tx)
}

// Deliver authenticates the caller before calling down the stack.
func (d Decorator) Deliver(ctx weave.Context, store weave.KVStore, tx weave.Tx, next weave.Deliverer) (*weave.DeliverResult, error) {
	ctx, err := d.authenticate(ctx, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(ctx, store, tx)
}

func (d Decorator) authenticate(ctx weave.Context, tx weave.Tx) (weave.Context, error) {
	var caller weave.Address
	if ctc, ok := tx.(CallerTx); ok {
		caller = ctc.GetCaller()
	}
	if caller == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "missing caller")
	}
	if err := caller.Validate(); err != nil {
		return nil, errors.Wrap(err, "caller")
	}
	return withCaller(ctx, caller), nil
}
