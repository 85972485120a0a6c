// Package app assembles the kittyd application: decorators, routes,
// queries, genesis and storage.
package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/iov-one/kitties/app"
	"github.com/iov-one/kitties/errors"
	"github.com/iov-one/kitties/orm"
	"github.com/iov-one/kitties/store/iavl"
	"github.com/iov-one/kitties/weave"
	"github.com/iov-one/kitties/x"
	"github.com/iov-one/kitties/x/caller"
	"github.com/iov-one/kitties/x/kitties"
	"github.com/iov-one/kitties/x/utils"
)

// Authenticator returns the caller based authentication.
func Authenticator() x.Authenticator {
	return x.ChainAuth(caller.Authenticate{})
}

// Chain returns the decorators every transaction passes through. Failed
// checks and deliveries leave no writes behind.
func Chain() app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		utils.NewActionTagger(),
		utils.NewSavepoint().OnCheck(),
		caller.NewDecorator(),
		utils.NewSavepoint().OnDeliver(),
	)
}

// Router returns a router dispatching both kitties messages.
func Router(authFn x.Authenticator, ctrl *kitties.Controller) *app.Router {
	r := app.NewRouter()
	kitties.RegisterRoutes(r, authFn, ctrl)
	return r
}

// QueryRouter serves "/", "/kitties", "/kitties/owned" and
// "/kitties/count".
func QueryRouter() weave.QueryRouter {
	r := weave.NewQueryRouter()
	r.RegisterAll(
		kitties.RegisterQuery,
		orm.RegisterQuery,
	)
	return r
}

// Stack returns the router wrapped by the decorator chain.
func Stack(ctrl *kitties.Controller) weave.Handler {
	return Chain().WithHandler(Router(Authenticator(), ctrl))
}

// Application returns the ABCI application running on kv.
func Application(name string, ctrl *kitties.Controller, kv weave.CommitKVStore, debug bool) (app.BaseApp, error) {
	store, err := app.NewStoreApp(name, kv, QueryRouter(), context.Background())
	if err != nil {
		return app.BaseApp{}, err
	}
	store.WithInit(Initializer(ctrl))
	return app.NewBaseApp(store, TxDecoder, Stack(ctrl), debug), nil
}

// Initializer loads the genesis of all extensions.
func Initializer(ctrl *kitties.Controller) weave.Initializer {
	return app.ChainInitializers(
		&kitties.Initializer{Controller: ctrl},
	)
}

// CommitKVStore opens the iavl store at dbPath. The path names the
// database directory, with or without its ".db" suffix. An empty path
// returns an in memory store.
func CommitKVStore(dbPath string) (weave.CommitKVStore, error) {
	if dbPath == "" {
		return iavl.NewMemCommitStore(), nil
	}
	abs, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "database path %q: %s", dbPath, err)
	}
	abs = strings.TrimSuffix(filepath.Clean(abs), ".db")
	return iavl.NewCommitStore(filepath.Dir(abs), filepath.Base(abs))
}
