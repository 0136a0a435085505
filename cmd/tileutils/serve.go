package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/eak1mov/go-bundletiles/internal/server"
	"github.com/google/subcommands"
)

type serveCmd struct {
	bundleFlags
	listen string
}

func (c *serveCmd) Name() string     { return "serve" }
func (c *serveCmd) Synopsis() string { return "serve tiles of a bundle cache over HTTP" }
func (c *serveCmd) Usage() string {
	return "tileutils serve -root <path> [-listen <addr>] [-config <path>]\n"
}
func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	c.bundleFlags.SetFlags(f)
	f.StringVar(&c.listen, "listen", ":8080", "Listen address")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	reader, cfg, logger, err := c.open(f)
	if err != nil {
		logger.Error("failed to open bundle cache", "err", err)
		return subcommands.ExitFailure
	}
	f.Visit(func(fl *flag.Flag) {
		if fl.Name == "listen" {
			cfg.Listen = c.listen
		}
	})

	httpServer := &http.Server{
		Addr:              cfg.Listen,
		Handler:           server.New(reader, logger, cfg.InFlight).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("serving tiles",
			"addr", cfg.Listen,
			"root", reader.Root(),
			"format", reader.Format(),
			"pack", reader.PackSize())
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err = <-errCh:
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err = httpServer.Shutdown(shutdownCtx)
	}

	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server failed", "err", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
