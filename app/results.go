package app

import (
	"github.com/iov-one/kitties/errors"
	"github.com/iov-one/kitties/weave"
	amino "github.com/tendermint/go-amino"
)

var codec = amino.NewCodec()

// ResultSet carries either the keys or the values of a query response. The
// two sets of a response always have the same length, the n-th key belongs
// to the n-th value.
type ResultSet struct {
	Results [][]byte
}

var _ weave.Persistent = (*ResultSet)(nil)

func (r *ResultSet) Marshal() ([]byte, error) {
	return codec.MarshalBinaryBare(r)
}

func (r *ResultSet) Unmarshal(raw []byte) error {
	return codec.UnmarshalBinaryBare(raw, r)
}

// splitResults returns the key and the value sets of the models.
func splitResults(models []weave.Model) (keys, values *ResultSet) {
	keys = &ResultSet{Results: make([][]byte, len(models))}
	values = &ResultSet{Results: make([][]byte, len(models))}
	for i, m := range models {
		keys.Results[i] = m.Key
		values.Results[i] = m.Value
	}
	return keys, values
}

// JoinResults pairs the keys and the values of a query response.
func JoinResults(keys, values *ResultSet) ([]weave.Model, error) {
	if len(keys.Results) != len(values.Results) {
		return nil, errors.Wrapf(errors.ErrState, "%d keys and %d values",
			len(keys.Results), len(values.Results))
	}
	models := make([]weave.Model, len(keys.Results))
	for i, key := range keys.Results {
		models[i] = weave.Pair(key, values.Results[i])
	}
	return models, nil
}
