package store

import (
	"bytes"

	"github.com/google/btree"
)

// freeListSize is shared by all the cache layers built on top of each
// other, so that discarded nodes are reused.
const freeListSize = btree.DefaultFreeListSize

// BTreeCacheable gives any KVStore a btree cache.
type BTreeCacheable struct {
	KVStore
}

var _ CacheableKVStore = BTreeCacheable{}

func (b BTreeCacheable) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b.KVStore, b.NewBatch(), nil)
}

// MemStore returns an in memory store without persistence.
func MemStore() CacheableKVStore {
	return NewBTreeCacheWrap(EmptyKVStore{}, NewNonAtomicBatch(EmptyKVStore{}), nil)
}

// ShowOpser lists the operations written to a store, in order.
type ShowOpser interface {
	ShowOps() []Op
}

// LogableStore returns an in memory store that records every write. Writes
// done on a cache of the store show up once the cache is written.
func LogableStore() (CacheableKVStore, ShowOpser) {
	batch := NewNonAtomicBatch(EmptyKVStore{})
	return NewBTreeCacheWrap(EmptyKVStore{}, batch, nil), batch
}

// BTreeCacheWrap keeps the changes made on top of a read only store in a
// btree and mirrors them into a batch. Write flushes the batch.
type BTreeCacheWrap struct {
	tree  *btree.BTree
	free  *btree.FreeList
	back  ReadOnlyKVStore
	batch Batch
}

var _ KVCacheWrap = BTreeCacheWrap{}

// NewBTreeCacheWrap returns a cache over back. All writes go to the batch.
// free may be nil, pass the list of a parent layer to share it.
func NewBTreeCacheWrap(back ReadOnlyKVStore, batch Batch, free *btree.FreeList) BTreeCacheWrap {
	if free == nil {
		free = btree.NewFreeList(freeListSize)
	}
	return BTreeCacheWrap{
		tree:  btree.NewWithFreeList(2, free),
		free:  free,
		back:  back,
		batch: batch,
	}
}

func (b BTreeCacheWrap) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b, b.NewBatch(), b.free)
}

func (b BTreeCacheWrap) NewBatch() Batch {
	return NewNonAtomicBatch(b)
}

// Write flushes the changes to the parent store and empties the cache.
func (b BTreeCacheWrap) Write() error {
	err := b.batch.Write()
	b.Discard()
	return err
}

// Discard drops all the changes.
func (b BTreeCacheWrap) Discard() {
	for b.tree.DeleteMin() != nil {
	}
}

func (b BTreeCacheWrap) Set(key, value []byte) error {
	b.tree.ReplaceOrInsert(entry{key: key, value: value})
	return b.batch.Set(key, value)
}

func (b BTreeCacheWrap) Delete(key []byte) error {
	b.tree.ReplaceOrInsert(entry{key: key, deleted: true})
	return b.batch.Delete(key)
}

func (b BTreeCacheWrap) Get(key []byte) ([]byte, error) {
	e, ok := b.lookup(key)
	if !ok {
		return b.back.Get(key)
	}
	if e.deleted {
		return nil, nil
	}
	return e.value, nil
}

func (b BTreeCacheWrap) Has(key []byte) (bool, error) {
	e, ok := b.lookup(key)
	if !ok {
		return b.back.Has(key)
	}
	return !e.deleted, nil
}

func (b BTreeCacheWrap) lookup(key []byte) (entry, bool) {
	item := b.tree.Get(entry{key: key})
	if item == nil {
		return entry{}, false
	}
	return item.(entry), true
}

// Iterator merges the cached changes with the parent store, ascending.
func (b BTreeCacheWrap) Iterator(start, end []byte) (Iterator, error) {
	parent, err := b.back.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	return newMergeIter(b.entries(start, end, false), parent, false)
}

// ReverseIterator merges the cached changes with the parent store,
// descending.
func (b BTreeCacheWrap) ReverseIterator(start, end []byte) (Iterator, error) {
	parent, err := b.back.ReverseIterator(start, end)
	if err != nil {
		return nil, err
	}
	return newMergeIter(b.entries(start, end, true), parent, true)
}

// entries returns the cached entries with start <= key < end. A nil bound
// leaves that side open.
func (b BTreeCacheWrap) entries(start, end []byte, desc bool) []entry {
	var res []entry
	collect := func(i btree.Item) bool {
		res = append(res, i.(entry))
		return true
	}
	switch {
	case start == nil && end == nil:
		b.tree.Ascend(collect)
	case start == nil:
		b.tree.AscendLessThan(entry{key: end}, collect)
	case end == nil:
		b.tree.AscendGreaterOrEqual(entry{key: start}, collect)
	default:
		b.tree.AscendRange(entry{key: start}, entry{key: end}, collect)
	}
	if desc {
		for i, j := 0, len(res)-1; i < j; i, j = i+1, j-1 {
			res[i], res[j] = res[j], res[i]
		}
	}
	return res
}

// entry is a change held by the cache. A deleted entry hides the parent
// value.
type entry struct {
	key     []byte
	value   []byte
	deleted bool
}

func (e entry) Less(than btree.Item) bool {
	return bytes.Compare(e.key, than.(entry).key) < 0
}
