package app

import (
	"github.com/iov-one/kitties/errors"
	"github.com/iov-one/kitties/weave"
	abci "github.com/tendermint/tendermint/abci/types"
)

// BaseApp is a complete ABCI application. It decodes every transaction and
// passes it to the handler, with the check cache for CheckTx and the
// deliver cache for DeliverTx.
type BaseApp struct {
	*StoreApp
	decode  weave.TxDecoder
	handler weave.Handler
	debug   bool
}

var _ abci.Application = BaseApp{}

func NewBaseApp(store *StoreApp, decode weave.TxDecoder, handler weave.Handler, debug bool) BaseApp {
	return BaseApp{
		StoreApp: store.WithDebug(debug),
		decode:   decode,
		handler:  handler,
		debug:    debug,
	}
}

// DeliverTx executes a transaction of the current block.
func (b BaseApp) DeliverTx(raw []byte) abci.ResponseDeliverTx {
	// An undecodable transaction still takes its position in the block.
	ctx := weave.WithTxIndex(b.BlockContext(), b.nextTxIndex())
	tx, err := b.decodeTx(raw)
	if err != nil {
		return weave.DeliverResponse(nil, err, b.debug)
	}
	ctx = weave.WithLogInfo(ctx, "call", "deliver_tx", "path", weave.GetPath(tx))
	res, err := b.handler.Deliver(ctx, b.DeliverStore(), tx)
	return weave.DeliverResponse(res, err, b.debug)
}

// CheckTx validates a transaction for the mempool.
func (b BaseApp) CheckTx(raw []byte) abci.ResponseCheckTx {
	tx, err := b.decodeTx(raw)
	if err != nil {
		return weave.CheckResponse(nil, err, b.debug)
	}
	ctx := weave.WithLogInfo(b.BlockContext(), "call", "check_tx", "path", weave.GetPath(tx))
	res, err := b.handler.Check(ctx, b.CheckStore(), tx)
	return weave.CheckResponse(res, err, b.debug)
}

// decodeTx reports every decoding failure, a panic included, as bad input.
func (b BaseApp) decodeTx(raw []byte) (tx weave.Tx, err error) {
	defer errors.Recover(&err)
	if tx, err = b.decode(raw); err == nil {
		return tx, nil
	}
	if errors.IsInternal(err) {
		err = errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil, err
}
