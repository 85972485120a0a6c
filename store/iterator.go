package store

import "bytes"

// mergeIter walks the cached entries and the parent iterator side by side.
// When both hold the same key the cached entry wins and deleted entries are
// never returned.
type mergeIter struct {
	cached []entry
	parent Iterator
	desc   bool
}

var _ Iterator = (*mergeIter)(nil)

func newMergeIter(cached []entry, parent Iterator, desc bool) (*mergeIter, error) {
	it := &mergeIter{cached: cached, parent: parent, desc: desc}
	if err := it.settle(); err != nil {
		it.Close()
		return nil, err
	}
	return it, nil
}

func (it *mergeIter) Valid() bool {
	return len(it.cached) > 0 || it.parentValid()
}

func (it *mergeIter) Next() error {
	switch {
	case it.fromCache():
		it.cached = it.cached[1:]
	case it.parentValid():
		if err := it.parent.Next(); err != nil {
			return err
		}
	default:
		panic("iterator is exhausted")
	}
	return it.settle()
}

func (it *mergeIter) Key() []byte {
	if it.fromCache() {
		return it.cached[0].key
	}
	if !it.parentValid() {
		panic("iterator is exhausted")
	}
	return it.parent.Key()
}

func (it *mergeIter) Value() []byte {
	if it.fromCache() {
		return it.cached[0].value
	}
	if !it.parentValid() {
		panic("iterator is exhausted")
	}
	return it.parent.Value()
}

func (it *mergeIter) Close() {
	if it.parent != nil {
		it.parent.Close()
	}
	it.cached = nil
}

// settle moves both sides until the cursor is on a live value. Parent
// entries overwritten or deleted in the cache are skipped.
func (it *mergeIter) settle() error {
	for len(it.cached) > 0 {
		head := it.cached[0]
		if it.parentValid() {
			key := it.parent.Key()
			if it.before(key, head.key) {
				return nil
			}
			if bytes.Equal(key, head.key) {
				if err := it.parent.Next(); err != nil {
					return err
				}
				continue
			}
		}
		if !head.deleted {
			return nil
		}
		it.cached = it.cached[1:]
	}
	return nil
}

// fromCache is true if the cursor is on a cached entry. Once settled, the
// two sides never share a key.
func (it *mergeIter) fromCache() bool {
	if len(it.cached) == 0 {
		return false
	}
	return !it.parentValid() || !it.before(it.parent.Key(), it.cached[0].key)
}

// before is true if a comes before b in the iteration order.
func (it *mergeIter) before(a, b []byte) bool {
	if it.desc {
		return bytes.Compare(a, b) > 0
	}
	return bytes.Compare(a, b) < 0
}

func (it *mergeIter) parentValid() bool {
	return it.parent != nil && it.parent.Valid()
}
