package xyz

import (
	"os"
	"path/filepath"

	"github.com/eak1mov/go-bundletiles/tile"
)

// Writer implements tile.Writer interface for tiles in XYZ format.
type Writer struct {
	filePattern string
}

// NewWriter creates a new Writer for the given file pattern (e.g. "/home/user/tiles/{z}/{x}/{y}.png").
func NewWriter(filePattern string) (*Writer, error) {
	if err := validatePattern(filePattern); err != nil {
		return nil, err
	}
	return &Writer{filePattern}, nil
}

// Path returns the file path of tileID.
func (w *Writer) Path(tileID tile.ID) string {
	return formatPattern(w.filePattern, tileID)
}

func (w *Writer) WriteTile(tileID tile.ID, tileData []byte) error {
	filePath := w.Path(tileID)

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return err
	}

	return os.WriteFile(filePath, tileData, 0644)
}

// WriteRecord writes the tile and sets the file modification time to
// record.LastModified, so that HTTP caches see the same time as the source.
func (w *Writer) WriteRecord(tileID tile.ID, record tile.Record) error {
	if err := w.WriteTile(tileID, record.Data); err != nil {
		return err
	}
	if record.LastModified.IsZero() {
		return nil
	}
	return os.Chtimes(w.Path(tileID), record.LastModified, record.LastModified)
}

func (w *Writer) Finalize() error {
	return nil
}
