package bundle

import (
	"log/slog"

	"github.com/eak1mov/go-bundletiles/bundle/spec"
)

type readerConfig struct {
	PackSize  int
	Format    spec.Format
	Logger    *slog.Logger
	Clustered bool
}

type ReaderOption func(*readerConfig)

// WithPackSize sets the number of rows and columns grouped into one bundle.
// It must match the pack size the cache was built with.
func WithPackSize(packSize int) ReaderOption {
	return func(c *readerConfig) { c.PackSize = packSize }
}

// WithFormat sets the offset table format and disables format detection.
// FormatUnknown keeps detection enabled.
func WithFormat(format spec.Format) ReaderOption {
	return func(c *readerConfig) { c.Format = format }
}

func WithLogger(logger *slog.Logger) ReaderOption {
	return func(c *readerConfig) { c.Logger = logger }
}

// WithClusteredOrder makes VisitTiles and VisitLocations walk each pack along a
// Hilbert curve instead of offset table order.
func WithClusteredOrder() ReaderOption {
	return func(c *readerConfig) { c.Clustered = true }
}
