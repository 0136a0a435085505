package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/eak1mov/go-bundletiles/bundle"
	"github.com/eak1mov/go-bundletiles/internal/config"
	"github.com/lmittmann/tint"
)

// bundleFlags are shared by all subcommands reading a bundle cache.
// Flags given on the command line override values from the config file.
type bundleFlags struct {
	configPath string
	root       string
	packSize   int
	format     string
	logLevel   string
	logFormat  string
}

func (b *bundleFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&b.configPath, "config", "", "Config file path (yaml)")
	f.StringVar(&b.root, "root", "", "Bundle cache root (directory containing _alllayers)")
	f.IntVar(&b.packSize, "pack", 128, "Pack size of the cache")
	f.StringVar(&b.format, "format", "auto", "Bundle format (auto, legacy, compactv2)")
	f.StringVar(&b.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	f.StringVar(&b.logFormat, "log-format", "text", "Log format (text, json)")
}

func (b *bundleFlags) loadConfig(f *flag.FlagSet) (*config.Config, error) {
	cfg, err := config.Load(b.configPath)
	if err != nil {
		return nil, err
	}
	f.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "root":
			cfg.Root = b.root
		case "pack":
			cfg.PackSize = b.packSize
		case "format":
			cfg.Format = b.format
		case "log-level":
			cfg.LogLevel = b.logLevel
		case "log-format":
			cfg.LogFormat = b.logFormat
		}
	})
	return cfg, nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()})
	} else {
		handler = tint.NewHandler(os.Stderr, &tint.Options{Level: cfg.Level()})
	}
	return slog.New(handler)
}

// open loads configuration and opens the bundle cache.
func (b *bundleFlags) open(f *flag.FlagSet, opts ...bundle.ReaderOption) (*bundle.Reader, *config.Config, *slog.Logger, error) {
	cfg, err := b.loadConfig(f)
	if err != nil {
		return nil, nil, slog.Default(), err
	}
	logger := newLogger(cfg)
	readerOpts, err := cfg.ReaderOptions(logger)
	if err != nil {
		return nil, nil, logger, err
	}
	reader, err := bundle.NewReader(cfg.Root, append(readerOpts, opts...)...)
	if err != nil {
		return nil, nil, logger, err
	}
	return reader, cfg, logger, nil
}
