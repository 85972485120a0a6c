package iavl

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/iov-one/kitties/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeCommitStore(t *testing.T) (*CommitStore, string, func()) {
	t.Helper()
	tmpDir, err := ioutil.TempDir("", "iavl-adapter-")
	require.NoError(t, err)
	commit, err := NewCommitStore(tmpDir, "base")
	require.NoError(t, err)
	cleanup := func() {
		commit.Close()
		os.RemoveAll(tmpDir)
	}
	return commit, tmpDir, cleanup
}

func assertGetHas(t testing.TB, kv store.ReadOnlyKVStore, key, val []byte, has bool) {
	t.Helper()
	got, err := kv.Get(key)
	require.NoError(t, err)
	assert.Equal(t, val, got)
	exists, err := kv.Has(key)
	require.NoError(t, err)
	assert.Equal(t, has, exists)
}

func TestCacheGetSet(t *testing.T) {
	commit := NewMemCommitStore()
	base := commit.Adapter()

	k, v := []byte("french"), []byte("fry")
	assertGetHas(t, base, k, nil, false)
	require.NoError(t, base.Set(k, v))
	assertGetHas(t, base, k, v, true)

	cache := base.CacheWrap()
	assertGetHas(t, cache, k, v, true)

	k2, v2 := []byte("LA"), []byte("Dodgers")
	require.NoError(t, cache.Set(k2, v2))
	assertGetHas(t, cache, k2, v2, true)
	assertGetHas(t, base, k2, nil, false)

	require.NoError(t, cache.Write())
	assertGetHas(t, base, k2, v2, true)

	c2 := base.CacheWrap()
	require.NoError(t, c2.Delete(k))
	c2.Discard()
	assertGetHas(t, base, k, v, true)
}

func TestCommitAndReload(t *testing.T) {
	commit, dir, cleanup := makeCommitStore(t)
	defer cleanup()

	id, err := commit.LatestVersion()
	require.NoError(t, err)
	assert.Equal(t, int64(0), id.Version)

	cache := commit.CacheWrap()
	require.NoError(t, cache.Set([]byte("kitty"), []byte("meow")))
	require.NoError(t, cache.Write())

	// not committed yet
	got, err := commit.Get([]byte("kitty"))
	require.NoError(t, err)
	assert.Nil(t, got)

	first, err := commit.Commit()
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.Version)
	assert.NotEmpty(t, first.Hash)

	got, err = commit.Get([]byte("kitty"))
	require.NoError(t, err)
	assert.Equal(t, []byte("meow"), got)

	cache = commit.CacheWrap()
	require.NoError(t, cache.Set([]byte("puppy"), []byte("woof")))
	require.NoError(t, cache.Write())
	second, err := commit.Commit()
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.Version)
	assert.NotEqual(t, first.Hash, second.Hash)

	// a fresh store on the same directory sees the last version
	commit.Close()
	reopened, err := NewCommitStore(dir, "base")
	require.NoError(t, err)
	defer reopened.Close()
	require.NoError(t, reopened.LoadLatestVersion())

	latest, err := reopened.LatestVersion()
	require.NoError(t, err)
	assert.Equal(t, second, latest)
	got, err = reopened.Get([]byte("puppy"))
	require.NoError(t, err)
	assert.Equal(t, []byte("woof"), got)
}

func TestAdapterIterator(t *testing.T) {
	commit := NewMemCommitStore()
	base := commit.Adapter()
	for _, k := range []string{"a", "b", "c", "d"} {
		require.NoError(t, base.Set([]byte(k), []byte(k)))
	}

	cache := base.CacheWrap()
	require.NoError(t, cache.Delete([]byte("b")))
	require.NoError(t, cache.Set([]byte("e"), []byte("e")))

	iter, err := cache.Iterator([]byte("b"), nil)
	require.NoError(t, err)
	var keys []string
	for ; iter.Valid(); require.NoError(t, iter.Next()) {
		keys = append(keys, string(iter.Key()))
	}
	iter.Close()
	assert.Equal(t, []string{"c", "d", "e"}, keys)

	iter, err = cache.ReverseIterator(nil, []byte("d"))
	require.NoError(t, err)
	keys = nil
	for ; iter.Valid(); require.NoError(t, iter.Next()) {
		keys = append(keys, string(iter.Key()))
	}
	iter.Close()
	assert.Equal(t, []string{"c", "a"}, keys)
}
