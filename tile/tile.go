// Package tile provides common tile interfaces and types.
package tile

import (
	"fmt"
	"time"
)

// ID represents tile coordinates in the XYZ scheme: X is the column, Y is the row
// and Z is the zoom level.
type ID struct {
	X uint32
	Y uint32
	Z uint32
}

// Valid reports whether the tile lies inside the 2^Z x 2^Z web mercator grid.
func (t ID) Valid() bool {
	return t.Z < 32 && t.X < (1<<t.Z) && t.Y < (1<<t.Z)
}

func (t ID) String() string {
	return fmt.Sprintf("%d/%d/%d", t.Z, t.X, t.Y)
}

// Record is a tile payload together with the modification time of the file it
// was read from.
type Record struct {
	LastModified time.Time
	Data         []byte
}

type Reader interface {
	// ReadTile reads a single tile from the tileset.
	// It returns the tile data or an error if the tile cannot be read.
	ReadTile(tileID ID) ([]byte, error)
}

type RecordReader interface {
	ReadRecord(tileID ID) (Record, error)
}

// Writer defines an interface for writing tiles to a tileset.
type Writer interface {
	// WriteTile writes a single tile to the tileset.
	WriteTile(tileID ID, tileData []byte) error

	// Finalize completes the writing process and flushes buffered state.
	// It must be called before closing the Writer.
	Finalize() error
}

type Visitor interface {
	// VisitTiles visits all tiles in the tileset, calling the visitor for each.
	// Order of tiles is implementation-defined.
	VisitTiles(visitor func(ID, []byte) error) error
}

// Location represents the absolute location of tile data inside a tileset file.
type Location struct {
	Offset uint64
	Length uint64
}

type LocationReader interface {
	ReadLocation(tileID ID) (Location, error)
}

type LocationVisitor interface {
	VisitLocations(visitor func(ID, Location) error) error
}
