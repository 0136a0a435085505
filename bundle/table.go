package bundle

import (
	"fmt"

	"github.com/eak1mov/go-bundletiles/bundle/spec"
)

// offsetTable maps a slot to the position of its length prefix in the bundle file.
// ok is false when the slot holds no tile.
type offsetTable interface {
	prefixOffset(bundle, index FileAccessFunc, slot uint64) (offset uint64, ok bool, err error)
	hasIndexFile() bool
}

func newOffsetTable(format spec.Format) (offsetTable, error) {
	switch format {
	case spec.FormatLegacy:
		return legacyTable{}, nil
	case spec.FormatCompactV2:
		return compactTable{}, nil
	}
	return nil, fmt.Errorf("%w: %v", spec.ErrInvalidFormat, format)
}

// legacyTable reads offsets from the companion ".bundlx" file.
type legacyTable struct{}

func (legacyTable) hasIndexFile() bool { return true }

func (legacyTable) prefixOffset(_, index FileAccessFunc, slot uint64) (uint64, bool, error) {
	entry, err := index(spec.LegacyEntryOffset(slot), spec.LegacyEntryLength)
	if err != nil {
		return 0, false, err
	}
	return spec.DecodeLegacyEntry(entry), true, nil
}

// compactTable reads offsets from the header of the ".bundle" file itself.
type compactTable struct{}

func (compactTable) hasIndexFile() bool { return false }

func (compactTable) prefixOffset(bundle, _ FileAccessFunc, slot uint64) (uint64, bool, error) {
	entry, err := bundle(spec.CompactEntryOffset(slot), spec.CompactOffsetLength)
	if err != nil {
		return 0, false, err
	}
	offset, ok := spec.CompactPrefixOffset(spec.DecodeCompactEntry(entry))
	return offset, ok, nil
}
