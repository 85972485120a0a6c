package weavetest

import "github.com/iov-one/kitties/weave"

// Tx carries a single message. GetMsg returns Err when set.
type Tx struct {
	Msg weave.Msg
	Err error
}

var _ weave.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (weave.Msg, error) {
	return tx.Msg, tx.Err
}

// Marshal and Unmarshal are never called by the handlers under test.
func (tx *Tx) Marshal() ([]byte, error) { panic("weavetest: Tx is not serializable") }
func (tx *Tx) Unmarshal([]byte) error   { panic("weavetest: Tx is not serializable") }

// Msg is routed by RoutePath. Validate returns Err.
type Msg struct {
	RoutePath string
	Err       error
}

var _ weave.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.Err
}

func (m *Msg) Marshal() ([]byte, error) { return nil, m.Err }
func (m *Msg) Unmarshal([]byte) error   { return m.Err }
