package kitties

import (
	"github.com/iov-one/kitties/errors"
	"github.com/iov-one/kitties/weave"
)

// Message paths, used for routing and the action tag.
const (
	PathCreateMsg   = "kitties/create"
	PathTransferMsg = "kitties/transfer"
)

// CreateMsg mints a new kitty owned by the caller.
type CreateMsg struct{}

var _ weave.Msg = (*CreateMsg)(nil)

func (CreateMsg) Path() string {
	return PathCreateMsg
}

func (m *CreateMsg) Marshal() ([]byte, error) {
	return codec.MarshalBinaryBare(m)
}

func (m *CreateMsg) Unmarshal(raw []byte) error {
	return codec.UnmarshalBinaryBare(raw, m)
}

func (CreateMsg) Validate() error {
	return nil
}

// TransferMsg moves a kitty owned by the caller to the destination account.
type TransferMsg struct {
	DNA         []byte
	Destination weave.Address
}

var _ weave.Msg = (*TransferMsg)(nil)

func (TransferMsg) Path() string {
	return PathTransferMsg
}

func (m *TransferMsg) Marshal() ([]byte, error) {
	return codec.MarshalBinaryBare(m)
}

func (m *TransferMsg) Unmarshal(raw []byte) error {
	return codec.UnmarshalBinaryBare(raw, m)
}

func (m *TransferMsg) Validate() error {
	var errs error
	if len(m.DNA) == 0 {
		errs = errors.AppendField(errs, "DNA", errors.ErrEmpty)
	}
	errs = errors.AppendField(errs, "Destination", m.Destination.Validate())
	return errs
}
