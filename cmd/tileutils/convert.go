package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/eak1mov/go-bundletiles/bundle"
	"github.com/eak1mov/go-bundletiles/mb"
	"github.com/eak1mov/go-bundletiles/tile"
	"github.com/eak1mov/go-bundletiles/xyz"
	"github.com/google/subcommands"
	"github.com/schollz/progressbar/v3"
)

type convertCmd struct {
	bundleFlags
	outputFormat string
	outputPath   string
	clustered    bool
}

func (c *convertCmd) Name() string     { return "convert" }
func (c *convertCmd) Synopsis() string { return "copy all tiles of a bundle cache to MBTiles or XYZ" }
func (c *convertCmd) Usage() string {
	return "tileutils convert -root <path> -o <path> [-of <format>] [-clustered]\n"
}
func (c *convertCmd) SetFlags(f *flag.FlagSet) {
	c.bundleFlags.SetFlags(f)
	f.StringVar(&c.outputPath, "o", "", "Output path (file for mbtiles, pattern with {z}/{x}/{y} for xyz)")
	f.StringVar(&c.outputFormat, "of", "", "Output format (mbtiles, xyz)")
	f.BoolVar(&c.clustered, "clustered", false, "Visit tiles of each pack in Hilbert order")
}

func deduceFormat(format, filePath string) string {
	if format == "" && strings.HasSuffix(filePath, ".mbtiles") {
		return "mbtiles"
	}
	return format
}

func (c *convertCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	var opts []bundle.ReaderOption
	if c.clustered {
		opts = append(opts, bundle.WithClusteredOrder())
	}
	reader, _, logger, err := c.open(f, opts...)
	if err != nil {
		logger.Error("failed to open bundle cache", "err", err)
		return subcommands.ExitFailure
	}

	bar := progressbar.NewOptions(-1, progressbar.OptionShowIts(), progressbar.OptionShowCount())

	switch deduceFormat(c.outputFormat, c.outputPath) {
	case "mbtiles":
		var writer *mb.Writer
		writer, err = mb.NewWriter(c.outputPath, mb.WithLogger(logger))
		if err != nil {
			break
		}
		defer writer.Close()
		err = reader.VisitTiles(func(tileID tile.ID, tileData []byte) error {
			bar.Add(1)
			return writer.WriteTile(tileID, tileData)
		})
		if err == nil {
			err = writer.Finalize()
		}
	case "xyz", "":
		var writer *xyz.Writer
		writer, err = xyz.NewWriter(c.outputPath)
		if err != nil {
			break
		}
		err = reader.VisitRecords(func(tileID tile.ID, record tile.Record) error {
			bar.Add(1)
			return writer.WriteRecord(tileID, record)
		})
		if err == nil {
			err = writer.Finalize()
		}
	default:
		logger.Error("invalid output format", "format", c.outputFormat)
		return subcommands.ExitFailure
	}

	bar.Finish()
	fmt.Println()

	if err != nil {
		logger.Error("convert failed", "err", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
