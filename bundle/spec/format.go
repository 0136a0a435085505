// Package spec describes the on-disk layout of tile cache bundles: directory and
// file naming, offset table geometry of both index formats and the length-prefixed
// tile payload encoding. It performs no I/O.
package spec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Format identifies the offset table layout used by a bundle cache.
type Format uint8

const (
	FormatUnknown Format = iota

	// FormatLegacy keeps offsets in a companion ".bundlx" file
	// (historical bundle version 1000).
	FormatLegacy

	// FormatCompactV2 keeps offsets inline at the start of the ".bundle" file
	// (historical bundle version 1003).
	FormatCompactV2
)

var ErrInvalidFormat = errors.New("libtiles: invalid bundle format")

func (f Format) String() string {
	switch f {
	case FormatLegacy:
		return "legacy"
	case FormatCompactV2:
		return "compactv2"
	default:
		return "unknown"
	}
}

// Version returns the historical bundle version number of the format.
func (f Format) Version() int {
	switch f {
	case FormatLegacy:
		return 1000
	case FormatCompactV2:
		return 1003
	default:
		return 0
	}
}

// ParseFormat parses a format name or historical version number.
// Empty string, "auto" and version 0 yield FormatUnknown, meaning "detect".
// Versions below 1003 are legacy, later ones compact.
func ParseFormat(value string) (Format, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	switch value {
	case "", "auto":
		return FormatUnknown, nil
	case "legacy":
		return FormatLegacy, nil
	case "compact", "compactv2":
		return FormatCompactV2, nil
	}
	version, err := strconv.Atoi(value)
	if err != nil || version < 0 {
		return FormatUnknown, fmt.Errorf("%w: %q", ErrInvalidFormat, value)
	}
	return FormatFromVersion(version), nil
}

// FormatFromVersion maps a historical bundle version number to a format.
func FormatFromVersion(version int) Format {
	switch {
	case version <= 0:
		return FormatUnknown
	case version < FormatCompactV2.Version():
		return FormatLegacy
	default:
		return FormatCompactV2
	}
}
