package main

import (
	"bufio"
	"context"
	"flag"
	"os"

	"github.com/eak1mov/go-bundletiles/index"
	"github.com/google/subcommands"
)

type exportCmd struct {
	bundleFlags
	outputIndexPath string
}

func (c *exportCmd) Name() string     { return "export_index" }
func (c *exportCmd) Synopsis() string { return "export tile locations of a bundle cache" }
func (c *exportCmd) Usage() string {
	return "tileutils export_index -root <path> -o <path>\n"
}
func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	c.bundleFlags.SetFlags(f)
	f.StringVar(&c.outputIndexPath, "o", "", "Output index file path")
}

func (c *exportCmd) writeIndex(items []index.Item) error {
	file, err := os.Create(c.outputIndexPath)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	if err := index.WriteAll(items, writer); err != nil {
		return err
	}
	if err := writer.Flush(); err != nil {
		return err
	}
	return file.Close()
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	reader, _, logger, err := c.open(f)
	if err != nil {
		logger.Error("failed to open bundle cache", "err", err)
		return subcommands.ExitFailure
	}

	items, err := index.Collect(reader)
	if err != nil {
		logger.Error("failed to collect tile locations", "err", err)
		return subcommands.ExitFailure
	}

	if err := c.writeIndex(items); err != nil {
		logger.Error("failed to write index", "path", c.outputIndexPath, "err", err)
		return subcommands.ExitFailure
	}
	logger.Info("index exported", "tiles", len(items), "path", c.outputIndexPath)
	return subcommands.ExitSuccess
}
