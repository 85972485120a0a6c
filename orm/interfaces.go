package orm

import (
	"github.com/iov-one/kitties/weave"
	"github.com/iov-one/kitties/x"
)

// Object is a value together with the key it is stored under.
type Object interface {
	Cloneable
	x.Validater
	Key() []byte
	SetKey([]byte)
	Value() weave.Persistent
}

// Cloneable returns an independent copy to load data into.
type Cloneable interface {
	Clone() Object
}

// CloneableData is a value that an Object can carry.
type CloneableData interface {
	x.Validater
	weave.Persistent
	Copy() CloneableData
}

// Model is what a ModelBucket stores. It is the same set of methods as
// CloneableData.
type Model interface {
	weave.Persistent
	Validate() error
	Copy() CloneableData
}
