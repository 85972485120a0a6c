package app

import (
	"context"
	"testing"

	"github.com/iov-one/kitties/errors"
	"github.com/iov-one/kitties/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouter(t *testing.T) {
	r := NewRouter()

	good := &weavetest.Handler{}
	bad := &weavetest.Handler{
		CheckErr:   errors.ErrUnauthorized,
		DeliverErr: errors.ErrUnauthorized,
	}
	r.Handle("kitties/good", good)
	r.Handle("kitties/bad", bad)

	// make sure invalid registrations panic
	assert.Panics(t, func() { r.Handle("kitties/good", good) })
	assert.Panics(t, func() { r.Handle("l:7", good) })

	ctx := context.Background()
	tx := func(path string) *weavetest.Tx {
		return &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: path}}
	}

	_, err := r.Check(ctx, nil, tx("kitties/good"))
	require.NoError(t, err)
	_, err = r.Deliver(ctx, nil, tx("kitties/good"))
	require.NoError(t, err)
	assert.Equal(t, 2, good.CallCount())

	_, err = r.Deliver(ctx, nil, tx("kitties/bad"))
	assert.True(t, errors.ErrUnauthorized.Is(err))
	assert.Equal(t, 1, bad.CallCount())

	_, err = r.Check(ctx, nil, tx("kitties/missing"))
	assert.True(t, errors.ErrNotFound.Is(err))
	_, err = r.Deliver(ctx, nil, tx("kitties/missing"))
	assert.True(t, errors.ErrNotFound.Is(err))

	// a message that cannot be loaded never reaches a handler
	_, err = r.Deliver(ctx, nil, &weavetest.Tx{Err: errors.ErrInput})
	assert.True(t, errors.ErrInput.Is(err))
	assert.Equal(t, 2, good.CallCount())
	assert.Equal(t, 1, bad.CallCount())
}
