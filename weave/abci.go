package weave

import (
	"github.com/iov-one/kitties/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/common"
)

// DeliverResult is the outcome of a successfully delivered transaction.
type DeliverResult struct {
	// Data is returned to the client, for example the DNA of a new kitty.
	Data []byte
	Log  string
	// Tags are indexed by tendermint and make the transaction searchable.
	Tags []common.KVPair
}

// CheckResult is the outcome of a transaction that may enter the mempool.
type CheckResult struct {
	Data []byte
	Log  string
	// GasAllocated is the cost of the transaction reported as gas wanted.
	GasAllocated int64
}

// DeliverResponse builds the ABCI response of a DeliverTx call.
func DeliverResponse(res *DeliverResult, err error, debug bool) abci.ResponseDeliverTx {
	if err != nil {
		code, log := errors.ABCIInfo(err, debug)
		return abci.ResponseDeliverTx{Code: code, Log: "cannot deliver tx: " + log}
	}
	return abci.ResponseDeliverTx{
		Data: res.Data,
		Log:  res.Log,
		Tags: res.Tags,
	}
}

// CheckResponse builds the ABCI response of a CheckTx call.
func CheckResponse(res *CheckResult, err error, debug bool) abci.ResponseCheckTx {
	if err != nil {
		code, log := errors.ABCIInfo(err, debug)
		return abci.ResponseCheckTx{Code: code, Log: "cannot check tx: " + log}
	}
	return abci.ResponseCheckTx{
		Data:      res.Data,
		Log:       res.Log,
		GasWanted: res.GasAllocated,
	}
}
