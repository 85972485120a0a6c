package caller

import (
	"context"

	"github.com/iov-one/kitties/weave"
	"github.com/iov-one/kitties/x"
)

type contextKey int // local to the caller module

const (
	contextKeyCaller contextKey = iota
)

// withCaller is a private method, as only this module
// can add a caller
func withCaller(ctx weave.Context, caller weave.Address) weave.Context {
	return context.WithValue(ctx, contextKeyCaller, caller)
}

// Authenticate exposes the caller that the Decorator placed in the context.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetAddresses returns the caller of the current Context. May be empty.
func (Authenticate) GetAddresses(ctx weave.Context) []weave.Address {
	// (val, ok) form to return nil instead of panic if unset
	val, _ := ctx.Value(contextKeyCaller).(weave.Address)
	if val == nil {
		return nil
	}
	return []weave.Address{val}
}

// HasAddress returns true if the given address is the caller.
func (a Authenticate) HasAddress(ctx weave.Context, addr weave.Address) bool {
	for _, c := range a.GetAddresses(ctx) {
		if addr.Equals(c) {
			return true
		}
	}
	return false
}
