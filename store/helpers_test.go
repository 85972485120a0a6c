package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSliceIterator makes sure the basic slice iterator works.
func TestSliceIterator(t *testing.T) {
	models := []Model{
		Pair([]byte("one"), []byte("1")),
		Pair([]byte("two"), []byte("2")),
		Pair([]byte("three"), []byte("3")),
	}

	assert.Equal(t, models, readAll(t, NewSliceIterator(models)))

	it := NewSliceIterator(models)
	require.True(t, it.Valid())
	it.Close()
	assert.False(t, it.Valid())
	assert.Panics(t, func() { _ = it.Next() })
}

func TestNonAtomicBatch(t *testing.T) {
	kv := MemStore()
	require.NoError(t, kv.Set([]byte("gone"), []byte("soon")))

	batch := kv.NewBatch()
	require.NoError(t, batch.Set([]byte("new"), []byte("value")))
	require.NoError(t, batch.Delete([]byte("gone")))

	// nothing is visible before write
	assertGetHas(t, kv, []byte("new"), nil, false)
	assertGetHas(t, kv, []byte("gone"), []byte("soon"), true)

	require.NoError(t, batch.Write())
	assertGetHas(t, kv, []byte("new"), []byte("value"), true)
	assertGetHas(t, kv, []byte("gone"), nil, false)
}
