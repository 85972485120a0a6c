package app

import (
	"github.com/iov-one/kitties/errors"
	"github.com/iov-one/kitties/weave"
	"github.com/iov-one/kitties/x/caller"
	"github.com/iov-one/kitties/x/kitties"
	amino "github.com/tendermint/go-amino"
)

var codec = amino.NewCodec()

func init() {
	codec.RegisterInterface((*weave.Msg)(nil), nil)
	codec.RegisterConcrete(&kitties.CreateMsg{}, "kitties/CreateMsg", nil)
	codec.RegisterConcrete(&kitties.TransferMsg{}, "kitties/TransferMsg", nil)
}

// Tx is the transaction envelope accepted by kittyd. The caller is trusted
// as is, signatures are verified before a transaction reaches the node.
type Tx struct {
	Caller weave.Address
	Msg    weave.Msg
}

// make sure tx fulfills all interfaces
var _ weave.Tx = (*Tx)(nil)
var _ caller.CallerTx = (*Tx)(nil)

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (weave.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, err
	}
	return tx, nil
}

func (tx *Tx) GetMsg() (weave.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrMsg, "no message")
	}
	return tx.Msg, nil
}

func (tx *Tx) GetCaller() weave.Address {
	return tx.Caller
}

func (tx *Tx) Marshal() ([]byte, error) {
	return codec.MarshalBinaryBare(tx)
}

func (tx *Tx) Unmarshal(raw []byte) error {
	if err := codec.UnmarshalBinaryBare(raw, tx); err != nil {
		return errors.Wrapf(errors.ErrInput, "tx: %s", err)
	}
	return nil
}
