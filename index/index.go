// Package index provides a flat binary index of tile locations: fixed-size
// little-endian records mapping tile coordinates to the offset and length of
// the tile data inside its storage file.
package index

import (
	"bytes"
	"cmp"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/eak1mov/go-bundletiles/tile"
)

// Item is a single index record. For bundle caches Offset is relative to the
// bundle file holding the tile, which is derived from X, Y, Z and the pack size.
type Item struct {
	X      uint32
	Y      uint32
	Z      uint32
	Length uint32
	Offset uint64
}

var ErrInvalidIndex = errors.New("libtiles: invalid index data")

func NewItem(tileID tile.ID, location tile.Location) Item {
	return Item{
		X:      tileID.X,
		Y:      tileID.Y,
		Z:      tileID.Z,
		Length: uint32(location.Length),
		Offset: location.Offset,
	}
}

func (i Item) TileID() tile.ID {
	return tile.ID{X: i.X, Y: i.Y, Z: i.Z}
}

func (i Item) TileLocation() tile.Location {
	return tile.Location{Offset: i.Offset, Length: uint64(i.Length)}
}

// Collect visits all tile locations and returns them ordered by zoom, column and row.
func Collect(r tile.LocationVisitor) ([]Item, error) {
	items := make([]Item, 0)
	err := r.VisitLocations(func(tileID tile.ID, location tile.Location) error {
		items = append(items, NewItem(tileID, location))
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.SortFunc(items, func(a, b Item) int {
		return cmp.Or(cmp.Compare(a.Z, b.Z), cmp.Compare(a.X, b.X), cmp.Compare(a.Y, b.Y))
	})
	return items, nil
}

func WriteAll(items []Item, writer io.Writer) error {
	return binary.Write(writer, binary.LittleEndian, items)
}

func ReadAll(indexData []byte) ([]Item, error) {
	itemSize := binary.Size(Item{})
	if len(indexData)%itemSize != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a multiple of %d", ErrInvalidIndex, len(indexData), itemSize)
	}
	items := make([]Item, len(indexData)/itemSize)

	err := binary.Read(bytes.NewReader(indexData), binary.LittleEndian, items)
	if err != nil {
		return nil, err
	}

	return items, nil
}
