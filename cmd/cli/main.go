package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/costestimator/internal/buildinfo"
	"github.com/dmitrijs2005/costestimator/internal/client/cli"
	"github.com/dmitrijs2005/costestimator/internal/client/client"
	"github.com/dmitrijs2005/costestimator/internal/client/config"
	"github.com/dmitrijs2005/costestimator/internal/client/session"
	"github.com/dmitrijs2005/costestimator/internal/client/store"
	"github.com/dmitrijs2005/costestimator/internal/common"
	"github.com/dmitrijs2005/costestimator/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	logger := logging.New(cfg.LogLevel, os.Stderr)

	st, err := store.Open(ctx, cfg.StorePath)
	if err != nil {
		log.Fatalf("open session store: %v", err)
	}
	defer st.Close()

	transport, err := client.NewHTTPClient(cfg.ServerURL, cfg.APIBasePath,
		client.WithTimeout(cfg.RequestTimeout),
		client.WithLogger(logger),
	)
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctrl := session.New(st, client.NewChannel(transport), logger)
	if _, err := ctrl.Bootstrap(ctx); err != nil {
		switch {
		case errors.Is(err, common.ErrTokenExpired):
			logger.Info(ctx, "saved session expired, please sign in again")
		default:
			logger.Warn(ctx, "could not restore saved session", "error", err)
		}
	}

	cli.NewApp(ctrl, logger).Run(ctx)
}
