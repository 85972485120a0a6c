package app

import (
	"encoding/json"
	"path/filepath"

	"github.com/iov-one/kitties/errors"
	"github.com/iov-one/kitties/weave"
	"github.com/iov-one/kitties/x/kitties"
	"github.com/prometheus/client_golang/prometheus"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// DefaultMaxOwned is the ownership bound written by GenInitOptions.
const DefaultMaxOwned = 16

type genesisOwner struct {
	Owner weave.Address `json:"owner"`
	Count uint32        `json:"count"`
}

// GenInitOptions produces the app_state for a development chain. Every
// argument is an address that receives one kitty at genesis.
func GenInitOptions(args []string) (json.RawMessage, error) {
	preload := make([]genesisOwner, 0, len(args))
	for _, a := range args {
		addr, err := weave.ParseAddress(a)
		if err != nil {
			return nil, errors.Wrapf(err, "owner %q", a)
		}
		preload = append(preload, genesisOwner{Owner: addr, Count: 1})
	}

	state := map[string]interface{}{
		"conf": map[string]interface{}{
			kitties.ConfigPkg: kitties.Configuration{MaxOwned: DefaultMaxOwned},
		},
		"kitties": preload,
	}
	raw, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "cannot serialize app state")
	}
	return raw, nil
}

// NewController returns the controller used by the node. Events are
// reported to the metrics registered with reg, if given.
func NewController(reg prometheus.Registerer) (*kitties.Controller, error) {
	var sink kitties.EventSink = kitties.NopSink{}
	if reg != nil {
		metrics := kitties.NewMetrics()
		if err := metrics.Register(reg); err != nil {
			return nil, err
		}
		sink = metrics
	}
	return kitties.NewController(kitties.NewDNAGenerator(), kitties.GenderOf, sink), nil
}

// GenerateApp is used to create a stub for server/start.go command
func GenerateApp(home string, logger log.Logger, debug bool, reg prometheus.Registerer) (abci.Application, error) {
	// db goes in a subdir, but "" -> "" for memdb
	var dbPath string
	if home != "" {
		dbPath = filepath.Join(home, "kitties.db")
	}
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return nil, err
	}
	return InlineApp(kv, logger, debug, reg)
}

// InlineApp builds the application on top of an opened store.
func InlineApp(kv weave.CommitKVStore, logger log.Logger, debug bool, reg prometheus.Registerer) (abci.Application, error) {
	ctrl, err := NewController(reg)
	if err != nil {
		return nil, err
	}
	application, err := Application("kittyd", ctrl, kv, debug)
	if err != nil {
		return nil, err
	}
	application.WithLogger(logger)
	// Seed the supply from the committed state.
	if err := ctrl.ReportSupply(application.DeliverStore()); err != nil {
		return nil, err
	}
	return application, nil
}
