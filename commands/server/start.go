package server

import (
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/iov-one/kitties/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tendermint/tendermint/abci/server"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	flagBind    = "bind"
	flagDebug   = "debug"
	flagMetrics = "metrics"
)

type startArgs struct {
	bind    string
	debug   bool
	metrics string
}

func parseStartArgs(args []string) (startArgs, error) {
	var res startArgs
	startFlags := flag.NewFlagSet("start", flag.ContinueOnError)
	startFlags.StringVar(&res.bind, flagBind, "tcp://localhost:26658", "address server listens on")
	startFlags.BoolVar(&res.debug, flagDebug, false, "call stack returned on error")
	startFlags.StringVar(&res.metrics, flagMetrics, "", "address to serve prometheus metrics on, disabled if empty")
	if err := startFlags.Parse(args); err != nil {
		return res, errors.Wrap(errors.ErrInput, err.Error())
	}
	return res, nil
}

// AppGenerator lets us lazily initialize app, using home dir
// and logger potentially initialized with other flags.
// The registerer is nil when metrics are disabled.
type AppGenerator func(home string, logger log.Logger, debug bool, reg prometheus.Registerer) (abci.Application, error)

// StartCmd initializes the application and serves it over the ABCI socket
// until the process is interrupted.
func StartCmd(gen AppGenerator, logger log.Logger, home string, args []string) error {
	flags, err := parseStartArgs(args)
	if err != nil {
		return err
	}

	var reg *prometheus.Registry
	if flags.metrics != "" {
		reg = prometheus.NewRegistry()
	}

	// Generate the app in the proper dir. A nil registry must not reach
	// the generator as a typed nil.
	var app abci.Application
	if reg != nil {
		app, err = gen(home, logger, flags.debug, reg)
	} else {
		app, err = gen(home, logger, flags.debug, nil)
	}
	if err != nil {
		return err
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	return serve(logger, flags, app, reg, stop)
}

// serve runs the ABCI server, and the metrics endpoint if configured, until
// stop receives a value or is closed.
func serve(logger log.Logger, flags startArgs, app abci.Application, reg *prometheus.Registry, stop <-chan os.Signal) error {
	logger.Info("Starting ABCI app", "bind", flags.bind)
	svr, err := server.NewServer(flags.bind, "socket", app)
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot create listener: %s", err)
	}
	svr.SetLogger(logger.With("module", "abci-server"))
	if err := svr.Start(); err != nil {
		return errors.Wrap(err, "cannot start abci server")
	}
	defer svr.Stop()

	if reg != nil {
		metrics := &http.Server{
			Addr:    flags.metrics,
			Handler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		}
		go func() {
			if err := metrics.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("Metrics server failed", "err", err)
			}
		}()
		defer metrics.Close()
		logger.Info("Serving metrics", "addr", flags.metrics)
	}

	sig := <-stop
	logger.Info("Shutting down", "signal", sig)
	return nil
}
