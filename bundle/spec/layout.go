package spec

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/eak1mov/go-bundletiles/tile"
)

const (
	DefaultPackSize = 128

	LayersDir       = "_alllayers"
	BundleExtension = ".bundle"
	IndexExtension  = ".bundlx"
)

var ErrInvalidName = errors.New("libtiles: invalid bundle name")

// Location describes where a tile lives inside a bundle cache.
type Location struct {
	Level    string // e.g. "L05"
	RowGroup uint32 // first row of the pack
	ColGroup uint32 // first column of the pack
	BasePath string // bundle path without extension
	Slot     uint64 // tile position inside the pack
}

func (l Location) BundlePath() string {
	return l.BasePath + BundleExtension
}

func (l Location) IndexPath() string {
	return l.BasePath + IndexExtension
}

// Resolve computes the bundle file and slot holding tileID. packSize must be positive.
func Resolve(root string, packSize uint32, tileID tile.ID) Location {
	rowGroup := packSize * (tileID.Y / packSize)
	colGroup := packSize * (tileID.X / packSize)
	level := LevelName(tileID.Z)
	return Location{
		Level:    level,
		RowGroup: rowGroup,
		ColGroup: colGroup,
		BasePath: filepath.Join(root, LayersDir, level, BundleName(rowGroup, colGroup)),
		Slot:     uint64(packSize)*uint64(tileID.X-colGroup) + uint64(tileID.Y-rowGroup),
	}
}

// SlotTile is the inverse of Resolve for a single pack.
func SlotTile(packSize uint32, z, rowGroup, colGroup uint32, slot uint64) tile.ID {
	return tile.ID{
		X: colGroup + uint32(slot/uint64(packSize)),
		Y: rowGroup + uint32(slot%uint64(packSize)),
		Z: z,
	}
}

func LevelName(z uint32) string {
	return fmt.Sprintf("L%02d", z)
}

func BundleName(rowGroup, colGroup uint32) string {
	return fmt.Sprintf("R%04xC%04x", rowGroup, colGroup)
}

// ParseLevel parses a level directory name such as "L05".
func ParseLevel(name string) (uint32, error) {
	if len(name) < 3 || name[0] != 'L' {
		return 0, fmt.Errorf("%w: level %q", ErrInvalidName, name)
	}
	z, err := strconv.ParseUint(name[1:], 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: level %q: %w", ErrInvalidName, name, err)
	}
	return uint32(z), nil
}

// ParseBundleName parses a bundle base name such as "R01a0C0080" into its
// row and column groups.
func ParseBundleName(name string) (rowGroup, colGroup uint32, err error) {
	if len(name) < 10 || name[0] != 'R' {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	c := -1
	for i := 1; i < len(name); i++ {
		if name[i] == 'C' {
			c = i
			break
		}
	}
	if c < 5 || len(name)-c-1 < 4 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	row, err := strconv.ParseUint(name[1:c], 16, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q: %w", ErrInvalidName, name, err)
	}
	col, err := strconv.ParseUint(name[c+1:], 16, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q: %w", ErrInvalidName, name, err)
	}
	return uint32(row), uint32(col), nil
}
