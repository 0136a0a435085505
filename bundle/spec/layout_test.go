package spec_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/eak1mov/go-bundletiles/bundle/spec"
	"github.com/eak1mov/go-bundletiles/tile"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	root := filepath.Join("data", "cache")
	location := spec.Resolve(root, 128, tile.ID{X: 130, Y: 420, Z: 5})
	require.Equal(t, spec.Location{
		Level:    "L05",
		RowGroup: 384,
		ColGroup: 128,
		BasePath: filepath.Join(root, "_alllayers", "L05", "R0180C0080"),
		Slot:     128*2 + 36,
	}, location)
	require.Equal(t, location.BasePath+".bundle", location.BundlePath())
	require.Equal(t, location.BasePath+".bundlx", location.IndexPath())
}

func TestNames(t *testing.T) {
	require.Equal(t, "L00", spec.LevelName(0))
	require.Equal(t, "L05", spec.LevelName(5))
	require.Equal(t, "L10", spec.LevelName(10))
	require.Equal(t, "L123", spec.LevelName(123))

	require.Equal(t, "R0000C0000", spec.BundleName(0, 0))
	require.Equal(t, "R01a0C0080", spec.BundleName(416, 128))
	require.Equal(t, "R12345C0000", spec.BundleName(0x12345, 0))

	location := spec.Resolve("root", 32, tile.ID{X: 0, Y: 420, Z: 3})
	require.Equal(t, uint32(416), location.RowGroup)
	require.Equal(t, filepath.Join("root", "_alllayers", "L03", "R01a0C0000"), location.BasePath)
}

func TestSlotRange(t *testing.T) {
	for _, packSize := range []uint32{1, 2, 7, 16, 128, 256} {
		for _, x := range []uint32{0, 1, 5, 127, 128, 129, 1000, 65535} {
			for _, y := range []uint32{0, 3, 64, 255, 256, 4097} {
				tileID := tile.ID{X: x, Y: y, Z: 12}
				location := spec.Resolve("", packSize, tileID)
				require.Less(t, location.Slot, uint64(packSize)*uint64(packSize), "tile %v pack %d", tileID, packSize)
				require.Zero(t, location.RowGroup%packSize)
				require.Zero(t, location.ColGroup%packSize)
				got := spec.SlotTile(packSize, tileID.Z, location.RowGroup, location.ColGroup, location.Slot)
				require.Equal(t, tileID, got)
			}
		}
	}
}

func TestParseNames(t *testing.T) {
	z, err := spec.ParseLevel("L07")
	require.NoError(t, err)
	require.Equal(t, uint32(7), z)

	z, err = spec.ParseLevel("L123")
	require.NoError(t, err)
	require.Equal(t, uint32(123), z)

	for _, name := range []string{"", "L", "L1", "X01", "Lab"} {
		_, err := spec.ParseLevel(name)
		require.Truef(t, errors.Is(err, spec.ErrInvalidName), "%q: %v", name, err)
	}

	row, col, err := spec.ParseBundleName("R01a0C0080")
	require.NoError(t, err)
	require.Equal(t, uint32(416), row)
	require.Equal(t, uint32(128), col)

	row, col, err = spec.ParseBundleName(spec.BundleName(0x12345, 0xabcde))
	require.NoError(t, err)
	require.Equal(t, uint32(0x12345), row)
	require.Equal(t, uint32(0xabcde), col)

	for _, name := range []string{"", "R0000", "R000C0000", "R0000C000", "X0000C0000", "R00g0C0000", "R0000C00z0"} {
		_, _, err := spec.ParseBundleName(name)
		require.Truef(t, errors.Is(err, spec.ErrInvalidName), "%q: %v", name, err)
	}
}
