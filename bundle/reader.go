// Package bundle provides API for reading tiles from tile cache bundles, where
// tiles of a pack (by default 128x128 tiles of one level) are stored in a single
// "_alllayers/Lzz/RrrrrCcccc.bundle" file with an offset table either inside the
// bundle file or in a companion ".bundlx" file.
package bundle

import (
	"fmt"
	"log/slog"

	"github.com/eak1mov/go-bundletiles/bundle/spec"
	"github.com/eak1mov/go-bundletiles/tile"
)

var (
	_ tile.Reader          = (*Reader)(nil)
	_ tile.RecordReader    = (*Reader)(nil)
	_ tile.LocationReader  = (*Reader)(nil)
	_ tile.Visitor         = (*Reader)(nil)
	_ tile.LocationVisitor = (*Reader)(nil)
)

// Reader implements tile.Reader interface for bundle caches.
// It holds no open files and is safe for concurrent use.
type Reader struct {
	root      string
	packSize  uint32
	format    spec.Format
	table     offsetTable
	logger    *slog.Logger
	clustered bool
}

// NewReader creates a new Reader for the cache rooted at root (the directory
// containing "_alllayers"). Unless WithFormat is given, the format is detected
// once with DetectFormat.
func NewReader(root string, opts ...ReaderOption) (*Reader, error) {
	config := readerConfig{
		PackSize: spec.DefaultPackSize,
		Logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&config)
	}

	if config.PackSize <= 0 || config.PackSize > 1<<16 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPackSize, config.PackSize)
	}

	format := config.Format
	if format == spec.FormatUnknown {
		detected, err := DetectFormat(root)
		if err != nil {
			return nil, err
		}
		config.Logger.Info("detected bundle format", "root", root, "format", detected)
		format = detected
	}

	table, err := newOffsetTable(format)
	if err != nil {
		return nil, err
	}

	return &Reader{
		root:      root,
		packSize:  uint32(config.PackSize),
		format:    format,
		table:     table,
		logger:    config.Logger,
		clustered: config.Clustered,
	}, nil
}

func (r *Reader) Root() string        { return r.root }
func (r *Reader) PackSize() uint32    { return r.packSize }
func (r *Reader) Format() spec.Format { return r.format }

// Locate returns the bundle location of tileID without touching the filesystem.
func (r *Reader) Locate(tileID tile.ID) spec.Location {
	return spec.Resolve(r.root, r.packSize, tileID)
}

func (r *Reader) withFiles(tileID tile.ID, fn func(*bundleFiles, uint64) error) error {
	location := r.Locate(tileID)
	files, err := openBundleFiles(location, r.table.hasIndexFile())
	if err != nil {
		return err
	}
	defer files.Close()
	return fn(files, location.Slot)
}

func (r *Reader) prefixOffset(files *bundleFiles, tileID tile.ID, slot uint64) (uint64, error) {
	offset, ok, err := r.table.prefixOffset(files.bundleAccess(), files.indexAccess(), slot)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("%w: empty slot %d for %v", ErrNotFound, slot, tileID)
	}
	return offset, nil
}

// ReadRecord reads tile data together with the modification time of its bundle.
// Missing bundles and empty slots are reported as ErrNotFound.
func (r *Reader) ReadRecord(tileID tile.ID) (tile.Record, error) {
	var record tile.Record
	err := r.withFiles(tileID, func(files *bundleFiles, slot uint64) error {
		prefixOffset, err := r.prefixOffset(files, tileID, slot)
		if err != nil {
			return err
		}
		data, err := readPayload(files.bundleAccess(), prefixOffset)
		if err != nil {
			return err
		}
		if len(data) == 0 {
			return fmt.Errorf("%w: empty tile %v", ErrNotFound, tileID)
		}
		record = tile.Record{LastModified: files.modTime, Data: data}
		return nil
	})
	if err != nil {
		r.logger.Debug("tile lookup failed", "tile", tileID, "err", err)
		return tile.Record{}, err
	}
	return record, nil
}

func (r *Reader) ReadTile(tileID tile.ID) ([]byte, error) {
	record, err := r.ReadRecord(tileID)
	if err != nil {
		return nil, err
	}
	return record.Data, nil
}

// ReadLocation returns the absolute location of tile data inside its bundle file.
// Missing bundles and empty slots are reported as ErrNotFound.
func (r *Reader) ReadLocation(tileID tile.ID) (tile.Location, error) {
	var location tile.Location
	err := r.withFiles(tileID, func(files *bundleFiles, slot uint64) error {
		prefixOffset, err := r.prefixOffset(files, tileID, slot)
		if err != nil {
			return err
		}
		length, err := readLength(files.bundleAccess(), prefixOffset)
		if err != nil {
			return err
		}
		if length == 0 {
			return fmt.Errorf("%w: empty tile %v", ErrNotFound, tileID)
		}
		location = tile.Location{
			Offset: prefixOffset + spec.LengthPrefixLength,
			Length: uint64(length),
		}
		return nil
	})
	return location, err
}
