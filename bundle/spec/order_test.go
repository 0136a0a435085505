package spec_test

import (
	"iter"
	"slices"
	"testing"

	"github.com/eak1mov/go-bundletiles/bundle/spec"
	"github.com/google/go-cmp/cmp"
)

func TestClusteredSlots(t *testing.T) {
	for _, packSize := range []uint32{1, 2, 4, 16, 128} {
		clustered := slices.Collect(spec.ClusteredSlots(packSize))
		sorted := slices.Sorted(slices.Values(clustered))
		if diff := cmp.Diff(slices.Collect(spec.FileSlots(packSize)), sorted); diff != "" {
			t.Fatalf("ClusteredSlots(%d) is not a permutation (-want+got):\n%v", packSize, diff)
		}
		for i := 1; i < len(clustered); i++ {
			prevCol, prevRow := clustered[i-1]/uint64(packSize), clustered[i-1]%uint64(packSize)
			col, row := clustered[i]/uint64(packSize), clustered[i]%uint64(packSize)
			if dist := absDiff(prevCol, col) + absDiff(prevRow, row); dist != 1 {
				t.Fatalf("ClusteredSlots(%d): slots %d and %d are not adjacent", packSize, clustered[i-1], clustered[i])
			}
		}
	}
}

func TestClusteredSlotsFallback(t *testing.T) {
	if diff := cmp.Diff(slices.Collect(spec.FileSlots(6)), slices.Collect(spec.ClusteredSlots(6))); diff != "" {
		t.Errorf("ClusteredSlots(6) mismatch (-want+got):\n%v", diff)
	}
}

func TestSlotsLargePack(t *testing.T) {
	// 65536x65536 slots must be produced on demand, never materialized.
	const packSize = 1 << 16
	for name, slots := range map[string]func(uint32) iter.Seq[uint64]{
		"file":      spec.FileSlots,
		"clustered": spec.ClusteredSlots,
	} {
		var got []uint64
		for slot := range slots(packSize) {
			got = append(got, slot)
			if len(got) == 4 {
				break
			}
		}
		if len(got) != 4 {
			t.Fatalf("%s: got %d slots, want 4", name, len(got))
		}
		if got[0] != 0 {
			t.Errorf("%s: first slot = %d, want 0", name, got[0])
		}
	}
}

func absDiff(a, b uint64) uint64 {
	if a > b {
		return a - b
	}
	return b - a
}
