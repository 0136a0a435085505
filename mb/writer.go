// Package mb provides API for exporting tiles into MBTiles files.
//
// Note: User must properly initialize the sqlite3 library generic driver
// (e.g. import _ "github.com/mattn/go-sqlite3") before using this package.
package mb

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/eak1mov/go-bundletiles/tile"
)

var ErrOutOfRange = errors.New("libtiles: tile outside of web mercator grid")

// Writer implements tile.Writer interface for MBTiles format.
// All tiles are inserted in a single transaction committed by Finalize.
type Writer struct {
	db       *sql.DB
	tx       *sql.Tx
	stmt     *sql.Stmt
	logger   *slog.Logger
	metadata map[string]string
	minZoom  uint32
	maxZoom  uint32
	count    int
}

type writerConfig struct {
	Metadata map[string]string
	Logger   *slog.Logger
}

type WriterOption func(*writerConfig)

func WithMetadata(metadata map[string]string) WriterOption {
	return func(c *writerConfig) { c.Metadata = metadata }
}

func WithLogger(logger *slog.Logger) WriterOption {
	return func(c *writerConfig) { c.Logger = logger }
}

// NewWriter creates a new MBTiles file at filePath.
func NewWriter(filePath string, opts ...WriterOption) (*Writer, error) {
	config := writerConfig{
		Logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&config)
	}

	var err error
	db, err := sql.Open("sqlite3", filePath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			db.Close()
		}
	}()

	_, err = db.Exec(`
		CREATE TABLE metadata (name TEXT, value TEXT);
		CREATE TABLE tiles (
			zoom_level INTEGER,
			tile_column INTEGER,
			tile_row INTEGER,
			tile_data BLOB
		);
	`)
	if err != nil {
		return nil, err
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}

	stmt, err := tx.Prepare("INSERT INTO tiles (zoom_level, tile_column, tile_row, tile_data) VALUES (?, ?, ?, ?)")
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	metadata := make(map[string]string)
	for k, v := range config.Metadata {
		metadata[k] = v
	}

	return &Writer{
		db:       db,
		tx:       tx,
		stmt:     stmt,
		logger:   config.Logger,
		metadata: metadata,
	}, nil
}

func (w *Writer) Close() error {
	var txErr error
	if w.tx != nil {
		txErr = w.tx.Rollback()
	}
	return errors.Join(w.stmt.Close(), txErr, w.db.Close())
}

func (w *Writer) WriteTile(tileID tile.ID, tileData []byte) error {
	if !tileID.Valid() {
		return fmt.Errorf("%w: %v", ErrOutOfRange, tileID)
	}
	x, y, z := tileID.X, tileID.Y, tileID.Z
	y = (1 << z) - 1 - y // XYZ -> TMS

	if _, err := w.stmt.Exec(z, x, y, tileData); err != nil {
		return err
	}

	if w.count == 0 {
		w.minZoom, w.maxZoom = z, z
		if _, found := w.metadata["format"]; !found {
			w.metadata["format"] = detectFormat(tileData)
		}
	}
	w.minZoom = min(w.minZoom, z)
	w.maxZoom = max(w.maxZoom, z)
	w.count++
	return nil
}

// Finalize writes metadata, creates the tile index and commits all tiles.
// Zoom range metadata is derived from written tiles unless set explicitly.
func (w *Writer) Finalize() error {
	if w.count > 0 {
		if _, found := w.metadata["minzoom"]; !found {
			w.metadata["minzoom"] = strconv.FormatUint(uint64(w.minZoom), 10)
		}
		if _, found := w.metadata["maxzoom"]; !found {
			w.metadata["maxzoom"] = strconv.FormatUint(uint64(w.maxZoom), 10)
		}
	}
	for k, v := range w.metadata {
		if _, err := w.tx.Exec("INSERT INTO metadata (name, value) VALUES (?, ?)", k, v); err != nil {
			return err
		}
	}

	w.logger.Debug("creating tile index", "tiles", w.count)
	if _, err := w.tx.Exec("CREATE UNIQUE INDEX tile_index ON tiles (zoom_level, tile_column, tile_row)"); err != nil {
		return err
	}

	err := w.tx.Commit()
	w.tx = nil
	return err
}

func detectFormat(tileData []byte) string {
	switch http.DetectContentType(tileData) {
	case "image/png":
		return "png"
	case "image/jpeg":
		return "jpg"
	case "image/webp":
		return "webp"
	}
	return "pbf"
}
