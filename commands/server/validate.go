package server

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"time"

	"github.com/iov-one/kitties/errors"
	"github.com/iov-one/kitties/store"
	"github.com/iov-one/kitties/weave"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// ValidateGenesis runs the initializer against the app_state of every given
// genesis file. The resulting state is discarded.
func ValidateGenesis(ini weave.Initializer, logger log.Logger, genesisPaths []string) error {
	if len(genesisPaths) == 0 {
		return errors.Wrap(errors.ErrInput, "usage: cmd validate <genesis.json>...")
	}
	for _, path := range genesisPaths {
		if err := validateGenesis(ini, path); err != nil {
			return errors.Wrap(err, path)
		}
		logger.Info("Genesis is valid", "path", path)
	}
	return nil
}

func validateGenesis(ini weave.Initializer, genesisPath string) error {
	b, err := ioutil.ReadFile(genesisPath)
	if err != nil {
		return errors.Wrap(err, "cannot read genesis file")
	}

	var genesis struct {
		ChainID string        `json:"chain_id"`
		Time    time.Time     `json:"genesis_time"`
		State   weave.Options `json:"app_state"`
	}
	if err := json.Unmarshal(b, &genesis); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot JSON deserialize genesis: %s", err)
	}
	if !weave.IsValidChainID(genesis.ChainID) {
		return errors.Wrapf(errors.ErrInput, "chain id: %q", genesis.ChainID)
	}
	if genesis.Time.IsZero() {
		genesis.Time = time.Now().UTC()
	}

	ctx := weave.WithHeader(context.Background(), abci.Header{
		ChainID: genesis.ChainID,
		Time:    genesis.Time,
	})
	ctx = weave.WithHeight(ctx, 0)
	ctx = weave.WithChainID(ctx, genesis.ChainID)

	// Use in memory store because we want to discard the result.
	db := store.MemStore()
	if err := ini.FromGenesis(ctx, genesis.State, db); err != nil {
		return errors.Wrap(err, "cannot initialize from genesis")
	}
	return nil
}
