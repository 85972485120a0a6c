package weave

import (
	"reflect"

	"github.com/iov-one/kitties/errors"
)

// Persistent is implemented by everything that is stored or sent in binary
// form.
type Persistent interface {
	Marshal() ([]byte, error)
	Unmarshal([]byte) error
}

// Msg is the state change requested by a transaction.
type Msg interface {
	Persistent
	// Path routes the message to its handler. It must match
	// [0-9A-Za-z_\-/]+, for example kitties/create.
	Path() string
	// Validate checks the message on its own, without looking at the state.
	Validate() error
}

// Tx is the envelope of a message, carrying what the decorators need, for
// example the caller.
type Tx interface {
	Persistent
	GetMsg() (Msg, error)
}

// TxDecoder parses the bytes of a transaction.
type TxDecoder func(txBytes []byte) (Tx, error)

// GetPath returns the path of the message of tx, used in logs.
func GetPath(tx Tx) string {
	if msg, err := tx.GetMsg(); err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// LoadMsg copies the message of tx into dest, which must be a pointer to the
// message type, and validates it:
//
//	var msg kitties.TransferMsg
//	if err := weave.LoadMsg(tx, &msg); err != nil {
//		return nil, err
//	}
func LoadMsg(tx Tx, dest interface{}) error {
	msg, err := tx.GetMsg()
	switch {
	case err != nil:
		return errors.Wrap(err, "cannot get transaction message")
	case msg == nil:
		return errors.Wrap(errors.ErrMsg, "no message")
	}

	ptr := reflect.ValueOf(dest)
	if ptr.Kind() != reflect.Ptr || ptr.IsNil() {
		return errors.Wrapf(errors.ErrHuman, "destination must be a pointer, got %T", dest)
	}
	val := reflect.Indirect(reflect.ValueOf(msg))
	if want := ptr.Elem().Type(); val.Type() != want {
		return errors.Wrapf(errors.ErrType, "want %s message, got %T", want, msg)
	}
	ptr.Elem().Set(val)

	return errors.Wrap(msg.Validate(), "invalid message")
}
