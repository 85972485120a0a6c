package server

import (
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/iov-one/kitties/errors"
	amino "github.com/tendermint/go-amino"
	"github.com/tendermint/tendermint/blockchain"
	dbm "github.com/tendermint/tendermint/libs/db"
	ctypes "github.com/tendermint/tendermint/rpc/core/types"
)

const (
	flagHeight = "height"
)

var cdc = amino.NewCodec()

func init() {
	ctypes.RegisterAmino(cdc)
}

func parseGetBlockArgs(args []string) (string, int64, error) {
	if len(args) == 0 {
		return "", 0, errors.Wrap(errors.ErrInput, "usage: cmd getblock <path to blockstore.db> [-height=H]")
	}
	var height int64
	getBlockFlags := flag.NewFlagSet("getblock", flag.ContinueOnError)
	getBlockFlags.Int64Var(&height, flagHeight, 0, "height of the block to extract (default latest)")
	if err := getBlockFlags.Parse(args[1:]); err != nil {
		return "", 0, errors.Wrap(errors.ErrInput, err.Error())
	}
	if height < 0 {
		return "", 0, errors.Wrapf(errors.ErrInput, "negative height %d", height)
	}
	return args[0], height, nil
}

// GetBlockCmd extracts a block from a blockstore.db and writes it as json
// to out. It takes the last block unless -height is explicitly specified.
func GetBlockCmd(out io.Writer, args []string) error {
	dbPath, height, err := parseGetBlockArgs(args)
	if err != nil {
		return err
	}
	db, err := openDb(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	store := blockchain.NewBlockStore(db)
	if height == 0 {
		height = store.Height()
	}
	return printBlock(out, store, height)
}

// openDb opens a goleveldb database given the path of its .db directory.
func openDb(path string) (dbm.DB, error) {
	path = strings.TrimSuffix(path, "/")
	if !strings.HasSuffix(path, ".db") {
		return nil, errors.Wrapf(errors.ErrInput, "database directory must end with .db: %s", path)
	}
	dir, name := filepath.Split(strings.TrimSuffix(path, ".db"))
	if name == "" {
		return nil, errors.Wrapf(errors.ErrInput, "no database name in %s", path)
	}
	db, err := dbm.NewGoLevelDB(name, filepath.Clean(dir))
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "open %s: %s", path, err)
	}
	return db, nil
}

func printBlock(out io.Writer, store *blockchain.BlockStore, height int64) error {
	block := store.LoadBlock(height)
	if block == nil {
		return errors.Wrapf(errors.ErrNotFound, "no block for height %d", height)
	}
	js, err := cdc.MarshalJSONIndent(block, "", "  ")
	if err != nil {
		return errors.Wrap(err, "cannot serialize block")
	}
	_, err = fmt.Fprintln(out, string(js))
	return err
}
