package orm

import (
	"github.com/iov-one/kitties/errors"
	"github.com/iov-one/kitties/weave"
)

// ConsumeIterator reads all the remaining models and closes the iterator.
func ConsumeIterator(it weave.Iterator) ([]weave.Model, error) {
	defer it.Close()

	var res []weave.Model
	for it.Valid() {
		res = append(res, weave.Pair(it.Key(), it.Value()))
		if err := it.Next(); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// RegisterQuery serves the raw database content at "/". Query data is a
// full database key, or a key prefix with the prefix modifier.
func RegisterQuery(qr weave.QueryRouter) {
	qr.Register("/", rawQuery{})
}

type rawQuery struct{}

func (rawQuery) Query(db weave.ReadOnlyKVStore, mod string, data []byte) ([]weave.Model, error) {
	return query(db, mod, data)
}

func query(db weave.ReadOnlyKVStore, mod string, key []byte) ([]weave.Model, error) {
	switch mod {
	case weave.KeyQueryMod:
		value, err := db.Get(key)
		if err != nil || value == nil {
			return nil, err
		}
		return []weave.Model{weave.Pair(key, value)}, nil
	case weave.PrefixQueryMod:
		return queryPrefix(db, key)
	default:
		return nil, errors.Wrapf(errors.ErrInput, "query modifier %q", mod)
	}
}

func queryPrefix(db weave.ReadOnlyKVStore, prefix []byte) ([]weave.Model, error) {
	start, end := prefixRange(prefix)
	it, err := db.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	return ConsumeIterator(it)
}

// prefixRange returns the iteration bounds covering all keys starting with
// prefix. The end is nil when no key past the prefix exists, as for an
// empty or all 0xFF prefix.
func prefixRange(prefix []byte) (start, end []byte) {
	if len(prefix) == 0 {
		return nil, nil
	}
	end = append([]byte{}, prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return prefix, end
		}
	}
	return prefix, nil
}
