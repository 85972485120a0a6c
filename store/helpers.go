package store

// SliceIterator iterates over models held in memory.
type SliceIterator struct {
	models []Model
}

var _ Iterator = (*SliceIterator)(nil)

func NewSliceIterator(models []Model) *SliceIterator {
	return &SliceIterator{models: models}
}

func (s *SliceIterator) Valid() bool {
	return len(s.models) > 0
}

func (s *SliceIterator) Next() error {
	s.head()
	s.models = s.models[1:]
	return nil
}

func (s *SliceIterator) Key() []byte {
	return s.head().Key
}

func (s *SliceIterator) Value() []byte {
	return s.head().Value
}

func (s *SliceIterator) Close() {
	s.models = nil
}

func (s *SliceIterator) head() Model {
	if len(s.models) == 0 {
		panic("iterator is exhausted")
	}
	return s.models[0]
}

// EmptyKVStore holds nothing and ignores all writes. It is the bottom layer
// of the in memory stores.
type EmptyKVStore struct{}

var _ KVStore = EmptyKVStore{}

func (EmptyKVStore) Get([]byte) ([]byte, error) { return nil, nil }
func (EmptyKVStore) Has([]byte) (bool, error)   { return false, nil }
func (EmptyKVStore) Set(_, _ []byte) error      { return nil }
func (EmptyKVStore) Delete([]byte) error        { return nil }

func (EmptyKVStore) Iterator(_, _ []byte) (Iterator, error) {
	return NewSliceIterator(nil), nil
}

func (EmptyKVStore) ReverseIterator(_, _ []byte) (Iterator, error) {
	return NewSliceIterator(nil), nil
}

func (e EmptyKVStore) NewBatch() Batch {
	return NewNonAtomicBatch(e)
}

// Op is a single write, either a set or a delete.
type Op struct {
	key    []byte
	value  []byte
	delete bool
}

func SetOp(key, value []byte) Op {
	return Op{key: key, value: value}
}

func DelOp(key []byte) Op {
	return Op{key: key, delete: true}
}

// Apply writes the operation to out.
func (o Op) Apply(out SetDeleter) error {
	if o.delete {
		return out.Delete(o.key)
	}
	return out.Set(o.key, o.value)
}

func (o Op) IsSetOp() bool {
	return !o.delete
}

func (o Op) Key() []byte {
	return o.key
}

// NonAtomicBatch queues writes and applies them one by one on Write. A
// failure in the middle leaves the first writes applied, so it only serves
// in memory stores.
type NonAtomicBatch struct {
	out SetDeleter
	ops []Op
}

var _ Batch = (*NonAtomicBatch)(nil)

func NewNonAtomicBatch(out SetDeleter) *NonAtomicBatch {
	return &NonAtomicBatch{out: out}
}

func (b *NonAtomicBatch) Set(key, value []byte) error {
	b.ops = append(b.ops, SetOp(key, value))
	return nil
}

func (b *NonAtomicBatch) Delete(key []byte) error {
	b.ops = append(b.ops, DelOp(key))
	return nil
}

// Write applies the queued operations and empties the batch.
func (b *NonAtomicBatch) Write() error {
	for _, op := range b.ops {
		if err := op.Apply(b.out); err != nil {
			return err
		}
	}
	b.ops = nil
	return nil
}

// ShowOps returns the queued operations.
func (b *NonAtomicBatch) ShowOps() []Op {
	return b.ops
}
