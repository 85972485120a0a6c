package orm

import (
	"testing"

	"github.com/iov-one/kitties/errors"
	"github.com/iov-one/kitties/store"
	"github.com/iov-one/kitties/weave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucketName(t *testing.T) {
	proto := NewSimpleObj(nil, &tally{})
	for _, name := range []string{"ab", "l33t", "Kitty", "kitties:x", "toolongname"} {
		assert.Panics(t, func() { NewBucket(name, proto) }, name)
	}
	assert.NotPanics(t, func() { NewBucket("owned_by", proto) })
}

func TestBucketSharedPrefix(t *testing.T) {
	key := []byte("ca")
	tallies := NewBucket("kitty", NewSimpleObj(nil, &tally{}))
	labels := NewBucket("kitty", NewSimpleObj(nil, &label{}))

	db := store.MemStore()
	require.NoError(t, tallies.Save(db, NewSimpleObj(key, &tally{Name: "ginger", Count: 1})))
	// same prefix and key, the second write replaces the first
	require.NoError(t, labels.Save(db, NewSimpleObj(key, &label{Level: 42})))

	_, err := tallies.Get(db, key)
	assert.True(t, errors.ErrState.Is(err), "got %+v", err)
}

func TestBucketSaveInvalid(t *testing.T) {
	b := NewBucket("tally", NewSimpleObj(nil, &tally{}))
	db := store.MemStore()

	err := b.Save(db, NewSimpleObj([]byte("ca"), &tally{Count: -1}))
	assert.True(t, errors.ErrState.Is(err), "got %+v", err)
	ok, err := b.Has(db, []byte("ca"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBucketGetSaveDelete(t *testing.T) {
	b := NewBucket("tally", NewSimpleObj(nil, &tally{}))
	db := store.MemStore()

	key := []byte("a")
	obj, err := b.Get(db, key)
	require.NoError(t, err)
	assert.Nil(t, obj)

	require.NoError(t, b.Save(db, NewSimpleObj(key, &tally{Name: "x", Count: 7})))
	obj, err = b.Get(db, key)
	require.NoError(t, err)
	require.NotNil(t, obj)
	assert.Equal(t, key, obj.Key())
	assert.Equal(t, &tally{Name: "x", Count: 7}, obj.Value())

	// the stored key carries the bucket prefix
	raw, err := db.Get([]byte("tally:a"))
	require.NoError(t, err)
	assert.NotNil(t, raw)

	require.NoError(t, b.Delete(db, key))
	obj, err = b.Get(db, key)
	require.NoError(t, err)
	assert.Nil(t, obj)
}

func TestBucketDBKeyNoAliasing(t *testing.T) {
	b := NewBucket("abcd", NewSimpleObj(nil, &tally{}))
	k1 := b.DBKey([]byte("ABC"))
	k2 := b.DBKey([]byte("LED"))
	assert.Equal(t, []byte("abcd:ABC"), k1)
	assert.Equal(t, []byte("abcd:LED"), k2)
}

func TestBucketQuery(t *testing.T) {
	b := NewBucket("tally", NewSimpleObj(nil, &tally{}))
	db := store.MemStore()
	for _, name := range []string{"aa", "ab", "b"} {
		require.NoError(t, b.Save(db, NewSimpleObj([]byte(name), &tally{Name: name})))
	}

	qr := weave.NewQueryRouter()
	b.Register("", qr)
	h := qr.Handler("/tally")
	require.NotNil(t, h)

	res, err := h.Query(db, weave.KeyQueryMod, []byte("ab"))
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, []byte("tally:ab"), res[0].Key)

	res, err = h.Query(db, weave.KeyQueryMod, []byte("zz"))
	require.NoError(t, err)
	assert.Len(t, res, 0)

	res, err = h.Query(db, weave.PrefixQueryMod, []byte("a"))
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, []byte("tally:aa"), res[0].Key)
	assert.Equal(t, []byte("tally:ab"), res[1].Key)

	res, err = h.Query(db, weave.PrefixQueryMod, nil)
	require.NoError(t, err)
	assert.Len(t, res, 3)

	_, err = h.Query(db, "range", nil)
	assert.True(t, errors.ErrInput.Is(err))
}
