package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	kittyd "github.com/iov-one/kitties/cmd/kittyd/app"
	"github.com/iov-one/kitties/commands/server"
	"github.com/iov-one/kitties/errors"
	"github.com/iov-one/kitties/weave"
	abci "github.com/tendermint/tendermint/abci/types"
	tmflags "github.com/tendermint/tendermint/libs/cli/flags"
	"github.com/tendermint/tendermint/libs/log"
)

var (
	flagHome     = "home"
	flagLogLevel = "log_level"
	varHome      *string
	varLogLevel  *string
)

func init() {
	defaultHome := filepath.Join(os.ExpandEnv("$HOME"), ".kittyd")
	varHome = flag.String(flagHome, defaultHome, "data and config directory")
	varLogLevel = flag.String(flagLogLevel, "*:info", "log level, for example main:debug,*:error")

	flag.CommandLine.Usage = helpMessage
}

const usage = `kittyd: kitties registry node

Commands:
  help       show this message
  init       write the app_state of the genesis file
  start      run the ABCI server
  validate   check the app_state of genesis files
  getblock   print a block of blockchain.db as JSON
  retry      replay the last block and compare the app hash
  version    print the version

Flags:
  -home string
        data and config directory (default "$HOME/.kittyd")
  -log_level string
        log level (default "*:info")
`

func helpMessage() {
	fmt.Print(usage)
}

func main() {
	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Print("a command is required\n\n", usage)
		os.Exit(1)
	}

	logger, err := tmflags.ParseLogLevel(*varLogLevel, log.NewTMLogger(log.NewSyncWriter(os.Stdout)), "info")
	if err != nil {
		fail(err)
	}
	logger = logger.With("module", "kitties")

	cmd := flag.Arg(0)
	rest := flag.Args()[1:]

	switch cmd {
	case "help":
		helpMessage()
	case "init":
		err = server.InitCmd(kittyd.GenInitOptions, logger, *varHome, rest)
	case "start":
		err = server.StartCmd(kittyd.GenerateApp, logger, *varHome, rest)
	case "validate":
		err = validate(logger, rest)
	case "getblock":
		err = server.GetBlockCmd(os.Stdout, rest)
	case "retry":
		err = server.RetryCmd(inlineApp, logger, *varHome, rest)
	case "version":
		fmt.Println(weave.Version())
	default:
		err = errors.Wrapf(errors.ErrInput, "unknown command: %s", cmd)
	}

	if err != nil {
		fail(err)
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %+v\n\n%s", err, usage)
	os.Exit(1)
}

func inlineApp(kv weave.CommitKVStore, logger log.Logger, debug bool) (abci.Application, error) {
	return kittyd.InlineApp(kv, logger, debug, nil)
}

func validate(logger log.Logger, paths []string) error {
	ctrl, err := kittyd.NewController(nil)
	if err != nil {
		return err
	}
	return server.ValidateGenesis(kittyd.Initializer(ctrl), logger, paths)
}
