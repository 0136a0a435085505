// Package xyz provides API for exporting tiles into XYZ directory format,
// where tiles are stored as individual files with paths like "/z/x/y.ext".
package xyz

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/eak1mov/go-bundletiles/tile"
)

var ErrInvalidPattern = errors.New("libtiles: invalid file pattern")

func validatePattern(pattern string) error {
	for _, p := range []string{"{x}", "{y}", "{z}"} {
		if !strings.Contains(pattern, p) {
			return fmt.Errorf("%w: placeholder %v not found", ErrInvalidPattern, p)
		}
	}
	return nil
}

func formatPattern(pattern string, tileID tile.ID) string {
	return strings.NewReplacer(
		"{x}", strconv.FormatUint(uint64(tileID.X), 10),
		"{y}", strconv.FormatUint(uint64(tileID.Y), 10),
		"{z}", strconv.FormatUint(uint64(tileID.Z), 10),
	).Replace(pattern)
}
