package app

import (
	"sync"

	"github.com/iov-one/kitties/errors"
	"github.com/iov-one/kitties/weave"
)

// CommitStore keeps two caches on top of the committed state. Deliver
// collects the block being executed and check the mempool validation.
// Commit writes deliver, drops check and starts both anew from the new
// state.
//
// Tendermint calls the application from several connections, so every
// access takes the lock.
type CommitStore struct {
	mu        sync.RWMutex
	committed weave.CommitKVStore
	deliver   weave.KVCacheWrap
	check     weave.KVCacheWrap
}

func NewCommitStore(db weave.CommitKVStore) (*CommitStore, error) {
	if err := db.LoadLatestVersion(); err != nil {
		return nil, errors.Wrap(err, "load latest version")
	}
	cs := &CommitStore{committed: db}
	cs.resetCaches()
	return cs, nil
}

func (cs *CommitStore) resetCaches() {
	cs.deliver = cs.committed.CacheWrap()
	cs.check = cs.committed.CacheWrap()
}

// CommitInfo returns the version and the hash of the last commit.
func (cs *CommitStore) CommitInfo() (weave.CommitID, error) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.committed.LatestVersion()
}

// Commit persists the deliver cache and returns the new version.
func (cs *CommitStore) Commit() (weave.CommitID, error) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if err := cs.deliver.Write(); err != nil {
		return weave.CommitID{}, errors.Wrap(err, "write deliver cache")
	}
	cs.check.Discard()
	id, err := cs.committed.Commit()
	if err != nil {
		return id, errors.Wrap(err, "commit")
	}
	cs.resetCaches()
	return id, nil
}

func (cs *CommitStore) CheckStore() weave.CacheableKVStore {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.check
}

func (cs *CommitStore) DeliverStore() weave.CacheableKVStore {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.deliver
}

// QueryStore returns a read only view of the last commit.
func (cs *CommitStore) QueryStore() weave.ReadOnlyKVStore {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.committed.CacheWrap()
}
