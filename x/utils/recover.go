package utils

import (
	"github.com/iov-one/kitties/errors"
	"github.com/iov-one/kitties/weave"
)

// Recovery turns a panic in the wrapped handler into an ErrPanic and logs
// it.
type Recovery struct{}

var _ weave.Decorator = Recovery{}

func NewRecovery() Recovery {
	return Recovery{}
}

func (Recovery) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Checker) (_ *weave.CheckResult, err error) {
	defer recovered(ctx, &err)
	return next.Check(ctx, db, tx)
}

func (Recovery) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Deliverer) (_ *weave.DeliverResult, err error) {
	defer recovered(ctx, &err)
	return next.Deliver(ctx, db, tx)
}

// recovered must be deferred directly, recover only works there.
func recovered(ctx weave.Context, err *error) {
	if r := recover(); r != nil {
		*err = errors.Wrapf(errors.ErrPanic, "%v", r)
		weave.GetLogger(ctx).Error("recovered from panic", "err", *err)
	}
}
