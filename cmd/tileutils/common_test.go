package main

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/eak1mov/go-bundletiles/bundle/spec"
	"github.com/eak1mov/go-bundletiles/internal/bundletest"
	"github.com/eak1mov/go-bundletiles/tile"
	"github.com/stretchr/testify/require"
)

func TestFlagsOverrideConfig(t *testing.T) {
	root := t.TempDir()
	tileID := tile.ID{X: 9, Y: 4, Z: 6}
	bundletest.WriteCompact(t, root, 32, map[tile.ID][]byte{tileID: bundletest.PNGTile(tileID)})

	cfgFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("root: /nonexistent\npack_size: 256\nformat: legacy\n"), 0644))

	var flags bundleFlags
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	flags.SetFlags(fs)
	require.NoError(t, fs.Parse([]string{"-config", cfgFile, "-root", root, "-pack", "32", "-format", "compact"}))

	reader, cfg, _, err := flags.open(fs)
	require.NoError(t, err)
	require.Equal(t, root, cfg.Root)
	require.Equal(t, uint32(32), reader.PackSize())
	require.Equal(t, spec.FormatCompactV2, reader.Format())

	data, err := reader.ReadTile(tileID)
	require.NoError(t, err)
	require.Equal(t, bundletest.PNGTile(tileID), data)
}

func TestDeduceFormat(t *testing.T) {
	require.Equal(t, "mbtiles", deduceFormat("", "out/tiles.mbtiles"))
	require.Equal(t, "", deduceFormat("", "out/{z}/{x}/{y}.png"))
	require.Equal(t, "xyz", deduceFormat("xyz", "out/tiles.mbtiles"))
}
