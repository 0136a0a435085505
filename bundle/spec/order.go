package spec

import (
	"iter"

	"github.com/google/hilbert"
)

// FileSlots yields slots of a pack in the order their entries are stored.
func FileSlots(packSize uint32) iter.Seq[uint64] {
	return func(yield func(uint64) bool) {
		count := uint64(packSize) * uint64(packSize)
		for slot := range count {
			if !yield(slot) {
				return
			}
		}
	}
}

// ClusteredSlots yields slots of a pack along a Hilbert curve over the pack's
// column/row grid, so that consecutive slots are spatially adjacent tiles.
// Pack sizes that are not a power of two fall back to FileSlots.
func ClusteredSlots(packSize uint32) iter.Seq[uint64] {
	h, err := hilbert.NewHilbert(int(packSize))
	if err != nil {
		return FileSlots(packSize)
	}
	return func(yield func(uint64) bool) {
		count := int(packSize) * int(packSize)
		for t := range count {
			col, row, err := h.Map(t)
			if err != nil {
				return
			}
			if !yield(uint64(packSize)*uint64(col) + uint64(row)) {
				return
			}
		}
	}
}
