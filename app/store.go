package app

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/iov-one/kitties/errors"
	"github.com/iov-one/kitties/weave"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// StoreApp is the storage half of an ABCI application. It serves Info,
// Query, InitChain, BeginBlock, EndBlock and Commit. BaseApp embeds it and
// adds the transaction calls.
//
// Info, InitChain, BeginBlock, EndBlock and Commit carry no user input. A
// failure there leaves the node in an unknown state, so they panic.
type StoreApp struct {
	name   string
	logger log.Logger
	debug  bool

	store   *CommitStore
	queries weave.QueryRouter
	genesis weave.Initializer

	// chainID is empty until InitChain, or loaded from the store on restart.
	chainID string
	// base holds the values that never change: logger and chain id.
	base weave.Context

	// block is replaced by BeginBlock on the consensus connection while the
	// mempool connection reads it for CheckTx.
	blockMu sync.RWMutex
	block   weave.Context

	// txIndex counts the transactions delivered in the current block.
	txIndex uint32
}

// NewStoreApp loads the latest committed state of db. The block context
// starts at the last committed height, so a restarted node can serve
// CheckTx before the next BeginBlock.
func NewStoreApp(name string, db weave.CommitKVStore, queries weave.QueryRouter, ctx weave.Context) (*StoreApp, error) {
	cs, err := NewCommitStore(db)
	if err != nil {
		return nil, err
	}
	s := &StoreApp{
		name:    name,
		store:   cs,
		queries: queries,
		base:    ctx,
	}
	s.WithLogger(log.NewNopLogger())

	if s.chainID, err = loadChainID(cs.DeliverStore()); err != nil {
		return nil, err
	}
	if s.chainID != "" {
		s.base = weave.WithChainID(s.base, s.chainID)
	}

	last, err := cs.CommitInfo()
	if err != nil {
		return nil, errors.Wrap(err, "commit info")
	}
	s.block = weave.WithHeight(s.base, last.Version)
	return s, nil
}

// WithInit sets the initializer InitChain runs on the genesis app_state.
func (s *StoreApp) WithInit(init weave.Initializer) *StoreApp {
	s.genesis = init
	return s
}

// WithDebug makes failed queries report the full error.
func (s *StoreApp) WithDebug(debug bool) *StoreApp {
	s.debug = debug
	return s
}

// WithLogger sets the logger of the app and of every context it creates.
func (s *StoreApp) WithLogger(logger log.Logger) *StoreApp {
	s.logger = logger
	s.base = weave.WithLogger(s.base, logger)
	return s
}

func (s *StoreApp) Logger() log.Logger {
	return s.logger
}

// GetChainID returns the chain id, or an empty string before InitChain.
func (s *StoreApp) GetChainID() string {
	return s.chainID
}

// BlockContext returns the context of the block being processed.
func (s *StoreApp) BlockContext() weave.Context {
	s.blockMu.RLock()
	defer s.blockMu.RUnlock()
	return s.block
}

func (s *StoreApp) DeliverStore() weave.CacheableKVStore {
	return s.store.DeliverStore()
}

func (s *StoreApp) CheckStore() weave.CacheableKVStore {
	return s.store.CheckStore()
}

func (s *StoreApp) nextTxIndex() uint32 {
	return atomic.AddUint32(&s.txIndex, 1) - 1
}

// Info returns the name, the version and the last committed block.
func (s *StoreApp) Info(abci.RequestInfo) abci.ResponseInfo {
	last, err := s.store.CommitInfo()
	if err != nil {
		panic(err)
	}
	s.logger.Info("Info synced", "height", last.Version, "hash", fmt.Sprintf("%X", last.Hash))
	return abci.ResponseInfo{
		Data:             s.name,
		Version:          weave.Version(),
		LastBlockHeight:  last.Version,
		LastBlockAppHash: last.Hash,
	}
}

// SetOption is not supported. The genesis file is the only configuration.
func (s *StoreApp) SetOption(abci.RequestSetOption) abci.ResponseSetOption {
	return abci.ResponseSetOption{Log: "Not Implemented"}
}

// Query runs a read against the last committed state.
//
// The path names the handler, optionally followed by a modifier after a
// question mark, for example "/kitties?prefix". Key and Value of the
// response are ResultSets of equal length, see JoinResults.
func (s *StoreApp) Query(req abci.RequestQuery) abci.ResponseQuery {
	path, mod := req.Path, ""
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path, mod = path[:i], path[i+1:]
	}

	h := s.queries.Handler(path)
	if h == nil {
		return s.queryError(errors.Wrapf(errors.ErrNotFound, "query path %q", req.Path))
	}
	last, err := s.store.CommitInfo()
	if err != nil {
		return s.queryError(err)
	}
	models, err := h.Query(s.store.QueryStore(), mod, req.Data)
	if err != nil {
		return s.queryError(err)
	}

	keys, values := splitResults(models)
	res := abci.ResponseQuery{Height: last.Version}
	if res.Key, err = keys.Marshal(); err != nil {
		return s.queryError(err)
	}
	if res.Value, err = values.Marshal(); err != nil {
		return s.queryError(err)
	}
	return res
}

func (s *StoreApp) queryError(err error) abci.ResponseQuery {
	code, log := errors.ABCIInfo(err, s.debug)
	return abci.ResponseQuery{Code: code, Log: log}
}

// InitChain stores the chain id and hands the genesis app_state to the
// initializer. The genesis time is the block time seen by the initializer.
func (s *StoreApp) InitChain(req abci.RequestInitChain) abci.ResponseInitChain {
	if err := s.loadGenesis(req); err != nil {
		panic(err)
	}
	return abci.ResponseInitChain{}
}

func (s *StoreApp) loadGenesis(req abci.RequestInitChain) error {
	if s.chainID != "" {
		return errors.Wrapf(errors.ErrImmutable, "genesis already loaded for chain %q", s.chainID)
	}
	if len(req.AppStateBytes) == 0 {
		return errors.Wrap(errors.ErrEmpty, "app_state missing from the genesis file")
	}
	var state weave.Options
	if err := json.Unmarshal(req.AppStateBytes, &state); err != nil {
		return errors.Wrapf(errors.ErrInput, "app_state: %s", err)
	}

	db := s.DeliverStore()
	if err := saveChainID(db, req.ChainId); err != nil {
		return err
	}
	s.chainID = req.ChainId
	s.base = weave.WithChainID(s.base, s.chainID)

	ctx := weave.WithHeader(s.base, abci.Header{ChainID: req.ChainId, Time: req.Time})
	ctx = weave.WithHeight(ctx, 0)
	return s.genesis.FromGenesis(ctx, state, db)
}

// BeginBlock starts a new block context and resets the transaction index.
func (s *StoreApp) BeginBlock(req abci.RequestBeginBlock) abci.ResponseBeginBlock {
	ctx := weave.WithHeader(s.base, req.Header)
	ctx = weave.WithHeight(ctx, req.Header.GetHeight())

	s.blockMu.Lock()
	s.block = ctx
	s.blockMu.Unlock()
	atomic.StoreUint32(&s.txIndex, 0)
	return abci.ResponseBeginBlock{}
}

// EndBlock never changes the validator set.
func (s *StoreApp) EndBlock(abci.RequestEndBlock) abci.ResponseEndBlock {
	return abci.ResponseEndBlock{}
}

// Commit persists the delivered state and returns the new app hash.
func (s *StoreApp) Commit() abci.ResponseCommit {
	id, err := s.store.Commit()
	if err != nil {
		panic(err)
	}
	s.logger.Debug("Commit synced", "height", id.Version, "hash", fmt.Sprintf("%X", id.Hash))
	return abci.ResponseCommit{Data: id.Hash}
}
