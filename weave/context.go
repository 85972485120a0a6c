package weave

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/iov-one/kitties/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// Context carries the block and transaction information to the handlers.
type Context = context.Context

type ctxKey int

const (
	headerKey ctxKey = iota
	heightKey
	chainIDKey
	loggerKey
	txIndexKey
)

var (
	// DefaultLogger is returned by GetLogger when no logger was set.
	DefaultLogger = log.NewNopLogger()

	// IsValidChainID reports whether s can be used as a chain id.
	IsValidChainID = regexp.MustCompile(`^[a-zA-Z0-9_\-]{6,20}$`).MatchString
)

// withOnce stores a value that no lower layer may overwrite. It panics when
// the key is already set.
func withOnce(ctx Context, key ctxKey, name string, val interface{}) Context {
	if ctx.Value(key) != nil {
		panic(fmt.Sprintf("%s already set in the context", name))
	}
	return context.WithValue(ctx, key, val)
}

// WithHeader sets the header of the current block. It can be set only once.
func WithHeader(ctx Context, header abci.Header) Context {
	return withOnce(ctx, headerKey, "block header", header)
}

// GetHeader returns the header of the current block.
func GetHeader(ctx Context) (abci.Header, bool) {
	h, ok := ctx.Value(headerKey).(abci.Header)
	return h, ok
}

// WithHeight sets the height of the current block. It can be set only once.
func WithHeight(ctx Context, height int64) Context {
	return withOnce(ctx, heightKey, "block height", height)
}

// GetHeight returns the height of the current block.
func GetHeight(ctx Context) (int64, bool) {
	h, ok := ctx.Value(heightKey).(int64)
	return h, ok
}

// WithChainID sets the chain id. It can be set only once and panics on an
// invalid id, so check it with IsValidChainID first.
func WithChainID(ctx Context, chainID string) Context {
	if !IsValidChainID(chainID) {
		panic(fmt.Sprintf("invalid chain id %q", chainID))
	}
	return withOnce(ctx, chainIDKey, "chain id", chainID)
}

// GetChainID returns the chain id. The application sets it for every
// block, so a missing one panics.
func GetChainID(ctx Context) string {
	id, ok := ctx.Value(chainIDKey).(string)
	if !ok {
		panic("chain id not set in the context")
	}
	return id
}

// WithTxIndex sets the position of the transaction in its block. Each
// transaction gets its own context derived from the block one, so unlike
// the height it may be replaced.
func WithTxIndex(ctx Context, index uint32) Context {
	return context.WithValue(ctx, txIndexKey, index)
}

// GetTxIndex returns the position of the transaction in its block.
func GetTxIndex(ctx Context) (uint32, bool) {
	i, ok := ctx.Value(txIndexKey).(uint32)
	return i, ok
}

// WithLogger sets the logger used by GetLogger.
func WithLogger(ctx Context, logger log.Logger) Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// WithLogInfo adds the key value pairs to every line logged with the
// returned context.
func WithLogInfo(ctx Context, keyvals ...interface{}) Context {
	return WithLogger(ctx, GetLogger(ctx).With(keyvals...))
}

// GetLogger returns the logger of the context or DefaultLogger.
func GetLogger(ctx Context) log.Logger {
	if l, ok := ctx.Value(loggerKey).(log.Logger); ok {
		return l
	}
	return DefaultLogger
}

// BlockTime returns the time of the current block. A missing header or a
// zero time is a programming error, only possible in badly set up tests.
func BlockTime(ctx Context) (time.Time, error) {
	header, ok := GetHeader(ctx)
	switch {
	case !ok:
		return time.Time{}, errors.Wrap(errors.ErrHuman, "no block header in the context")
	case header.Time.IsZero():
		return time.Time{}, errors.Wrap(errors.ErrHuman, "zero block time in the context")
	}
	return header.Time, nil
}
