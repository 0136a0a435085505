package main

import (
	"context"
	"flag"
	"os"

	"github.com/eak1mov/go-bundletiles/tile"
	"github.com/google/subcommands"
)

type getCmd struct {
	bundleFlags
	x, y, z    uint
	outputPath string
}

func (c *getCmd) Name() string     { return "get" }
func (c *getCmd) Synopsis() string { return "read a single tile from a bundle cache" }
func (c *getCmd) Usage() string {
	return "tileutils get -root <path> -z <z> -x <x> -y <y> [-o <path>]\n"
}
func (c *getCmd) SetFlags(f *flag.FlagSet) {
	c.bundleFlags.SetFlags(f)
	f.UintVar(&c.z, "z", 0, "Tile zoom level")
	f.UintVar(&c.x, "x", 0, "Tile column")
	f.UintVar(&c.y, "y", 0, "Tile row")
	f.StringVar(&c.outputPath, "o", "", "Output file path (stdout if empty)")
}

func (c *getCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	reader, _, logger, err := c.open(f)
	if err != nil {
		logger.Error("failed to open bundle cache", "err", err)
		return subcommands.ExitFailure
	}

	tileID := tile.ID{X: uint32(c.x), Y: uint32(c.y), Z: uint32(c.z)}
	record, err := reader.ReadRecord(tileID)
	if err != nil {
		logger.Error("failed to read tile", "tile", tileID, "err", err)
		return subcommands.ExitFailure
	}
	logger.Info("tile read",
		"tile", tileID,
		"bundle", reader.Locate(tileID).BundlePath(),
		"bytes", len(record.Data),
		"modified", record.LastModified)

	if c.outputPath == "" {
		_, err = os.Stdout.Write(record.Data)
	} else {
		err = os.WriteFile(c.outputPath, record.Data, 0644)
	}
	if err != nil {
		logger.Error("failed to write tile", "err", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
