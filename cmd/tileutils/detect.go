package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"

	"github.com/eak1mov/go-bundletiles/bundle"
	"github.com/google/subcommands"
)

type detectCmd struct {
	bundleFlags
}

func (c *detectCmd) Name() string     { return "detect" }
func (c *detectCmd) Synopsis() string { return "print the bundle format of a cache" }
func (c *detectCmd) Usage() string {
	return "tileutils detect -root <path>\n"
}

func (c *detectCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	cfg, err := c.loadConfig(f)
	if err != nil {
		slog.Error("failed to load configuration", "err", err)
		return subcommands.ExitFailure
	}
	logger := newLogger(cfg)

	format, err := bundle.DetectFormat(cfg.Root)
	if err != nil {
		logger.Error("failed to detect format", "root", cfg.Root, "err", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("%v (version %d)\n", format, format.Version())
	return subcommands.ExitSuccess
}
