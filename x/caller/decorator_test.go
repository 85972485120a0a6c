package caller

import (
	"context"
	"testing"

	"github.com/iov-one/kitties/errors"
	"github.com/iov-one/kitties/store"
	"github.com/iov-one/kitties/weave"
	"github.com/iov-one/kitties/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type callerTx struct {
	weavetest.Tx
	caller weave.Address
}

func (tx *callerTx) GetCaller() weave.Address {
	return tx.caller
}

// authCheck is a handler that asserts the expected caller is authenticated.
type authCheck struct {
	weavetest.Handler
	t    *testing.T
	want weave.Address
}

func (h *authCheck) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	var auth Authenticate
	if h.want == nil {
		assert.Empty(h.t, auth.GetAddresses(ctx))
	} else {
		assert.Equal(h.t, []weave.Address{h.want}, auth.GetAddresses(ctx))
		assert.True(h.t, auth.HasAddress(ctx, h.want))
	}
	return h.Handler.Deliver(ctx, db, tx)
}

func TestDecorator(t *testing.T) {
	alice := weavetest.NewAddress()

	cases := map[string]struct {
		dec     Decorator
		tx      weave.Tx
		want    weave.Address
		wantErr *errors.Error
	}{
		"caller is authenticated": {
			dec:  NewDecorator(),
			tx:   &callerTx{caller: alice},
			want: alice,
		},
		"missing caller": {
			dec:     NewDecorator(),
			tx:      &callerTx{},
			wantErr: errors.ErrUnauthorized,
		},
		"tx without caller support": {
			dec:     NewDecorator(),
			tx:      &weavetest.Tx{},
			wantErr: errors.ErrUnauthorized,
		},
		"malformed caller": {
			dec:     NewDecorator(),
			tx:      &callerTx{caller: weave.Address{1, 2, 3}},
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			h := &authCheck{t: t, want: tc.want}
			stack := weavetest.Decorate(h, tc.dec)
			db := store.MemStore()

			_, err := stack.Check(context.Background(), db, tc.tx)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected check error: %+v", err)
			}
			_, err = stack.Deliver(context.Background(), db, tc.tx)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected deliver error: %+v", err)
			}
			if tc.wantErr == nil {
				require.Equal(t, 1, h.DeliverCallCount())
			}
		})
	}
}

func TestAuthenticateEmptyContext(t *testing.T) {
	var auth Authenticate
	ctx := context.Background()
	assert.Nil(t, auth.GetAddresses(ctx))
	assert.False(t, auth.HasAddress(ctx, weavetest.NewAddress()))
}
