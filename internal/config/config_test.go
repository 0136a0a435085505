package config_test

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/eak1mov/go-bundletiles/bundle/spec"
	"github.com/eak1mov/go-bundletiles/internal/bundletest"
	"github.com/eak1mov/go-bundletiles/internal/config"
	"github.com/eak1mov/go-bundletiles/tile"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	require.Equal(t, spec.DefaultPackSize, cfg.PackSize)
	require.Equal(t, "auto", cfg.Format)
	require.Equal(t, ":8080", cfg.Listen)
	require.Equal(t, 64, cfg.InFlight)
	require.Equal(t, slog.LevelInfo, cfg.Level())

	_, err = cfg.OpenReader(slog.New(slog.DiscardHandler))
	require.True(t, errors.Is(err, config.ErrMissingRoot))
}

func TestLoadFile(t *testing.T) {
	root := t.TempDir()
	tileID := tile.ID{X: 3, Y: 2, Z: 4}
	bundletest.WriteLegacy(t, root, 64, map[tile.ID][]byte{tileID: bundletest.PNGTile(tileID)})

	cfgFile := filepath.Join(t.TempDir(), "bundletiles.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte(
		"root: "+root+"\npack_size: 64\nformat: legacy\nlog_level: debug\n"), 0644))

	cfg, err := config.Load(cfgFile)
	require.NoError(t, err)
	require.Equal(t, root, cfg.Root)
	require.Equal(t, 64, cfg.PackSize)
	require.Equal(t, slog.LevelDebug, cfg.Level())

	reader, err := cfg.OpenReader(slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	require.Equal(t, spec.FormatLegacy, reader.Format())

	data, err := reader.ReadTile(tileID)
	require.NoError(t, err)
	require.Equal(t, bundletest.PNGTile(tileID), data)
}

func TestEnvironment(t *testing.T) {
	t.Setenv("BUNDLETILES_FORMAT", "bogus")
	t.Setenv("BUNDLETILES_ROOT", t.TempDir())

	cfg, err := config.Load("")
	require.NoError(t, err)
	require.Equal(t, "bogus", cfg.Format)

	_, err = cfg.OpenReader(slog.New(slog.DiscardHandler))
	require.True(t, errors.Is(err, spec.ErrInvalidFormat))
}

func TestMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
