package app

import (
	"reflect"

	"github.com/iov-one/kitties/weave"
)

// Decorators is a stack of decorators waiting for the handler they wrap.
type Decorators []weave.Decorator

// ChainDecorators returns the stack of the given decorators. The first one
// is the outermost, so it runs first:
//
//	app.ChainDecorators(
//		utils.NewLogging(),
//		utils.NewRecovery(),
//		caller.NewDecorator(),
//	).WithHandler(router)
//
// Nil decorators, typed nil pointers included, are skipped, so optional
// decorators can be listed unconditionally.
func ChainDecorators(ds ...weave.Decorator) Decorators {
	stack := make(Decorators, 0, len(ds))
	for _, d := range ds {
		if !isNilDecorator(d) {
			stack = append(stack, d)
		}
	}
	return stack
}

func isNilDecorator(d weave.Decorator) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// WithHandler returns a handler running h inside every decorator of the
// stack.
func (ds Decorators) WithHandler(h weave.Handler) weave.Handler {
	for i := len(ds) - 1; i >= 0; i-- {
		h = decorated{decorator: ds[i], next: h}
	}
	return h
}

// decorated is a handler calling its decorator with the rest of the stack.
type decorated struct {
	decorator weave.Decorator
	next      weave.Handler
}

func (d decorated) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	return d.decorator.Check(ctx, db, tx, d.next)
}

func (d decorated) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	return d.decorator.Deliver(ctx, db, tx, d.next)
}
