package weave

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/iov-one/kitties/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

func TestBlockValuesAreSetOnce(t *testing.T) {
	ctx := context.Background()

	_, ok := GetHeight(ctx)
	assert.False(t, ok)
	ctx = WithHeight(ctx, 0)
	height, ok := GetHeight(ctx)
	assert.True(t, ok)
	assert.Equal(t, int64(0), height)
	assert.Panics(t, func() { WithHeight(ctx, 1) })

	header := abci.Header{Height: 4, ChainID: "kitties-test"}
	ctx = WithHeader(ctx, header)
	got, ok := GetHeader(ctx)
	assert.True(t, ok)
	assert.Equal(t, header, got)
	assert.Panics(t, func() { WithHeader(ctx, abci.Header{}) })

	assert.Panics(t, func() { GetChainID(ctx) })
	assert.Panics(t, func() { WithChainID(ctx, "cat") })
	ctx = WithChainID(ctx, "kitties-test")
	assert.Equal(t, "kitties-test", GetChainID(ctx))
	assert.Panics(t, func() { WithChainID(ctx, "kitties-other") })
}

func TestTxIndex(t *testing.T) {
	block := WithHeight(context.Background(), 3)
	_, ok := GetTxIndex(block)
	assert.False(t, ok)

	// every transaction derives its own context from the block one
	for i := uint32(0); i < 3; i++ {
		idx, ok := GetTxIndex(WithTxIndex(block, i))
		assert.True(t, ok)
		assert.Equal(t, i, idx)
	}
	idx, _ := GetTxIndex(WithTxIndex(WithTxIndex(block, 1), 2))
	assert.Equal(t, uint32(2), idx)
}

func TestLogger(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, DefaultLogger, GetLogger(ctx))

	var out bytes.Buffer
	ctx = WithLogger(ctx, log.NewTMLogger(&out))
	ctx = WithLogInfo(ctx, "path", "kitties/create")
	GetLogger(ctx).Info("minted")
	assert.Contains(t, out.String(), "minted")
	assert.Contains(t, out.String(), "path=kitties/create")
}

func TestBlockTime(t *testing.T) {
	ctx := context.Background()
	_, err := BlockTime(ctx)
	assert.True(t, errors.ErrHuman.Is(err))

	_, err = BlockTime(WithHeader(ctx, abci.Header{Height: 1}))
	assert.True(t, errors.ErrHuman.Is(err))

	minted := time.Date(2019, time.May, 1, 12, 0, 0, 0, time.UTC)
	got, err := BlockTime(WithHeader(ctx, abci.Header{Height: 1, Time: minted}))
	require.NoError(t, err)
	assert.Equal(t, minted, got)
}

func TestIsValidChainID(t *testing.T) {
	cases := map[string]bool{
		"":                              false,
		"cat":                           false,
		"kitties":                       true,
		"kitties-test_01":               true,
		"kitties;test":                  false,
		"kitties-chain-id-way-too-long": false,
	}
	for chainID, valid := range cases {
		assert.Equal(t, valid, IsValidChainID(chainID), chainID)
	}
}
