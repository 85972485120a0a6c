package utils

import (
	"time"

	"github.com/iov-one/kitties/weave"
)

// Logging writes one line per transaction with its path, its position in
// the block and how long it took. Failures are logged as errors, deliveries
// as info and checks as debug.
type Logging struct{}

var _ weave.Decorator = Logging{}

func NewLogging() Logging {
	return Logging{}
}

func (Logging) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Checker) (*weave.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, db, tx)
	var msg string
	if err == nil {
		msg = res.Log
	}
	logTx(ctx, tx, time.Since(start), msg, err, false)
	return res, err
}

func (Logging) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Deliverer) (*weave.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, db, tx)
	var msg string
	if err == nil {
		msg = res.Log
	}
	logTx(ctx, tx, time.Since(start), msg, err, true)
	return res, err
}

func logTx(ctx weave.Context, tx weave.Tx, took time.Duration, msg string, err error, deliver bool) {
	logger := weave.GetLogger(ctx).With(
		"path", weave.GetPath(tx),
		"duration", took/time.Microsecond,
	)
	if idx, ok := weave.GetTxIndex(ctx); ok {
		logger = logger.With("tx", idx)
	}
	// msg may be empty, the line is still written for its fields.
	switch {
	case err != nil:
		logger.Error(msg, "err", err)
	case deliver:
		logger.Info(msg)
	default:
		logger.Debug(msg)
	}
}
