package server

import (
	"bytes"
	"flag"
	"io/ioutil"

	"github.com/iov-one/kitties/errors"
	iavlstore "github.com/iov-one/kitties/store/iavl"
	"github.com/iov-one/kitties/weave"
	"github.com/tendermint/iavl"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
	"github.com/tendermint/tendermint/types"
)

const retryUsage = "retry <abci.db> <block.json> [-debug] [-error] [-max=N]"

type retryArgs struct {
	dbPath     string
	blockPath  string
	debug      bool
	untilError bool
	maxTries   int
}

func parseRetryArgs(args []string) (retryArgs, error) {
	if len(args) < 2 {
		return retryArgs{}, errors.Wrap(errors.ErrInput, "usage: "+retryUsage)
	}
	res := retryArgs{dbPath: args[0], blockPath: args[1]}
	fs := flag.NewFlagSet("retry", flag.ContinueOnError)
	fs.BoolVar(&res.debug, flagDebug, false, "full errors in the logs")
	fs.BoolVar(&res.untilError, "error", false, "run the block until the app hash differs")
	fs.IntVar(&res.maxTries, "max", 10, "runs allowed with -error")
	if err := fs.Parse(args[2:]); err != nil {
		return res, errors.Wrap(errors.ErrInput, err.Error())
	}
	return res, nil
}

// InlineAppGenerator builds the application on an opened store.
type InlineAppGenerator func(weave.CommitKVStore, log.Logger, bool) (abci.Application, error)

// RetryCmd checks that a block is deterministic. The store must be at the
// height of the block. The block is rolled back and executed again, and the
// app hash compared with the stored one. With -error it is run until the
// hash differs, at most -max times.
func RetryCmd(makeApp InlineAppGenerator, logger log.Logger, home string, args []string) error {
	opts, err := parseRetryArgs(args)
	if err != nil {
		return err
	}
	block, err := readBlock(opts.blockPath)
	if err != nil {
		return err
	}

	logger.Info("Loading database", "path", opts.dbPath)
	db, err := openDb(opts.dbPath)
	if err != nil {
		return err
	}
	defer db.Close()
	tree := iavl.NewMutableTree(db, iavlstore.DefaultCacheSize)
	switch version, err := tree.Load(); {
	case err != nil:
		return errors.Wrapf(errors.ErrDatabase, "load tree: %s", err)
	case version == 0:
		return errors.Wrap(errors.ErrState, "empty store")
	case version != block.Height:
		return errors.Wrapf(errors.ErrState, "store at height %d, block at %d", version, block.Height)
	}

	runs := 1
	if opts.untilError {
		runs = opts.maxTries
	}
	replay := &blockReplay{
		logger: logger,
		tree:   tree,
		block:  block,
		build: func(kv weave.CommitKVStore) (abci.Application, error) {
			return makeApp(kv, logger, opts.debug)
		},
	}
	return replay.run(runs)
}

func readBlock(path string) (*types.Block, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read block")
	}
	var block *types.Block
	if err := cdc.UnmarshalJSON(raw, &block); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "block: %s", err)
	}
	return block, nil
}

// blockReplay executes the last block of the tree again.
type blockReplay struct {
	logger log.Logger
	tree   *iavl.MutableTree
	block  *types.Block
	build  func(weave.CommitKVStore) (abci.Application, error)
}

// run replays the block up to runs times and fails on the first app hash
// that differs from the stored one.
func (r *blockReplay) run(runs int) error {
	want := r.tree.Hash()
	r.logger.Info("Stored state", "height", r.block.Height, "hash", weave.HexBytes(want))
	for i := 1; i <= runs; i++ {
		got, err := r.once()
		if err != nil {
			return err
		}
		if !bytes.Equal(want, got) {
			return errors.Wrapf(errors.ErrState, "run %d: app hash %X, stored %X", i, got, want)
		}
	}
	return nil
}

func (r *blockReplay) once() ([]byte, error) {
	height := r.block.Height
	if _, err := r.tree.LoadVersionForOverwriting(height - 1); err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "rollback to %d: %s", height-1, err)
	}
	app, err := r.build(iavlstore.NewCommitStoreFromTree(r.tree))
	if err != nil {
		return nil, err
	}

	app.BeginBlock(abci.RequestBeginBlock{
		Hash:   r.block.Header.Hash(),
		Header: types.TM2PB.Header(&r.block.Header),
	})
	for i, tx := range r.block.Txs {
		res := app.DeliverTx(tx)
		r.logger.Debug("Delivered", "tx", i, "code", res.Code, "log", res.Log)
	}
	app.EndBlock(abci.RequestEndBlock{Height: height})
	hash := app.Commit().Data
	r.logger.Info("Replayed state", "height", height, "hash", weave.HexBytes(hash))
	return hash, nil
}
