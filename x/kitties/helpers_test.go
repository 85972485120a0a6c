package kitties

import (
	"context"
	"testing"
	"time"

	"github.com/iov-one/kitties/gconf"
	"github.com/iov-one/kitties/orm"
	"github.com/iov-one/kitties/store"
	"github.com/iov-one/kitties/weave"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
)

var genesisTime = time.Date(2019, time.May, 1, 12, 0, 0, 0, time.UTC)

// newStore returns a store configured with the given ownership limit.
func newStore(t testing.TB, maxOwned int32) weave.CacheableKVStore {
	t.Helper()
	db := store.MemStore()
	require.NoError(t, gconf.Save(db, ConfigPkg, &Configuration{MaxOwned: maxOwned}))
	return db
}

// blockCtx returns a context of the transaction with the given index, in a
// block of the given height.
func blockCtx(height int64, txIndex uint32) weave.Context {
	header := abci.Header{
		Height:  height,
		Time:    genesisTime.Add(time.Duration(height) * time.Minute),
		AppHash: []byte("apphash"),
		LastBlockId: abci.BlockID{
			Hash: []byte{byte(height), 0xca, 0xfe},
		},
	}
	ctx := weave.WithHeader(context.Background(), header)
	ctx = weave.WithHeight(ctx, height)
	return weave.WithTxIndex(ctx, txIndex)
}

// dump returns a copy of the whole store content.
func dump(t testing.TB, db weave.ReadOnlyKVStore) map[string]string {
	t.Helper()
	it, err := db.Iterator(nil, nil)
	require.NoError(t, err)
	models, err := orm.ConsumeIterator(it)
	require.NoError(t, err)
	res := make(map[string]string, len(models))
	for _, m := range models {
		res[string(m.Key)] = string(m.Value)
	}
	return res
}

// recordingSink keeps every event it receives.
type recordingSink struct {
	created     []*CreatedEvent
	transferred []*TransferredEvent
	rejected    []error
	supply      uint64
}

func (r *recordingSink) Created(e *CreatedEvent)         { r.created = append(r.created, e) }
func (r *recordingSink) Transferred(e *TransferredEvent) { r.transferred = append(r.transferred, e) }
func (r *recordingSink) Rejected(op string, err error)   { r.rejected = append(r.rejected, err) }
func (r *recordingSink) Supply(count uint64)             { r.supply = count }

// assertConsistent checks that the kitty bucket, the ownership bucket and the
// counter describe the same set of kitties.
func assertConsistent(t testing.TB, ctrl *Controller, db weave.ReadOnlyKVStore, maxOwned int) {
	t.Helper()

	kitties := NewKittyBucket()
	it, err := db.Iterator([]byte("kitty:"), []byte("kitty;"))
	require.NoError(t, err)
	stored, err := orm.ConsumeIterator(it)
	require.NoError(t, err)

	owners := make(map[string]string)
	for _, m := range stored {
		dna := m.Key[len("kitty:"):]
		var k Kitty
		require.NoError(t, kitties.One(db, dna, &k))
		owners[string(dna)] = string(k.Owner)
	}

	it, err = db.Iterator([]byte("owned:"), []byte("owned;"))
	require.NoError(t, err)
	lists, err := orm.ConsumeIterator(it)
	require.NoError(t, err)

	indexed := make(map[string]string)
	for _, m := range lists {
		owner := m.Key[len("owned:"):]
		dnas, err := ctrl.OwnedBy(db, owner)
		require.NoError(t, err)
		require.NotEmpty(t, dnas, "empty ownership entry stored")
		require.True(t, len(dnas) <= maxOwned, "%d kitties owned", len(dnas))
		for _, dna := range dnas {
			_, dup := indexed[string(dna)]
			require.False(t, dup, "dna %X indexed twice", dna)
			indexed[string(dna)] = string(owner)
		}
	}
	require.Equal(t, owners, indexed)

	count, err := ctrl.Count(db)
	require.NoError(t, err)
	require.Equal(t, uint64(len(owners)), count)
}
