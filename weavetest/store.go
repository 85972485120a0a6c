package weavetest

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/iov-one/kitties/store/iavl"
	"github.com/iov-one/kitties/weave"
)

// CommitKVStore returns a store instance that is using a filesystem backend
// engine to store the data.
// This implementation should be used instead of MemStore when you want the
// exact same storage implementation as the production instance is using.
func CommitKVStore(t testing.TB) (db weave.CommitKVStore, cleanup func()) {
	dbpath, err := ioutil.TempDir("", "weavetest-")
	if err != nil {
		t.Fatalf("cannot create a temporary directory: %s", err)
	}

	commit, err := iavl.NewCommitStore(dbpath, "db")
	if err != nil {
		t.Fatalf("cannot create commit store: %s", err)
	}
	if err := commit.LoadLatestVersion(); err != nil {
		t.Fatalf("cannot load commit store: %s", err)
	}
	return commit, func() {
		commit.Close()
		os.RemoveAll(dbpath)
	}
}
