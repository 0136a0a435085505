package index_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/eak1mov/go-bundletiles/bundle"
	"github.com/eak1mov/go-bundletiles/bundle/spec"
	"github.com/eak1mov/go-bundletiles/index"
	"github.com/eak1mov/go-bundletiles/internal/bundletest"
	"github.com/eak1mov/go-bundletiles/tile"
	"github.com/google/go-cmp/cmp"
)

func TestCollect(t *testing.T) {
	tiles := map[tile.ID][]byte{
		{X: 3, Y: 1, Z: 2}:  []byte("tile-312"),
		{X: 0, Y: 0, Z: 0}:  []byte("tile-000"),
		{X: 1, Y: 2, Z: 2}:  []byte("tile-122-longer"),
		{X: 9, Y: 40, Z: 7}: []byte("tile-9-40-7"),
	}
	root := t.TempDir()
	bundletest.WriteCompact(t, root, spec.DefaultPackSize, tiles)

	reader, err := bundle.NewReader(root)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}

	items, err := index.Collect(reader)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	wantOrder := []tile.ID{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 2, Z: 2}, {X: 3, Y: 1, Z: 2}, {X: 9, Y: 40, Z: 7}}
	gotOrder := make([]tile.ID, 0, len(items))
	for _, item := range items {
		gotOrder = append(gotOrder, item.TileID())
		if got, want := item.Length, uint32(len(tiles[item.TileID()])); got != want {
			t.Errorf("item %v length = %v, want = %v", item.TileID(), got, want)
		}
		location, err := reader.ReadLocation(item.TileID())
		if err != nil {
			t.Fatalf("ReadLocation(%v) failed: %v", item.TileID(), err)
		}
		if diff := cmp.Diff(location, item.TileLocation()); diff != "" {
			t.Errorf("item %v location mismatch (-want+got):\n%v", item.TileID(), diff)
		}
	}
	if diff := cmp.Diff(wantOrder, gotOrder); diff != "" {
		t.Errorf("Collect order mismatch (-want+got):\n%v", diff)
	}

	var buffer bytes.Buffer
	if err := index.WriteAll(items, &buffer); err != nil {
		t.Fatalf("WriteAll failed: %v", err)
	}
	readItems, err := index.ReadAll(buffer.Bytes())
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if diff := cmp.Diff(items, readItems); diff != "" {
		t.Errorf("ReadAll mismatch (-want+got):\n%v", diff)
	}
}

func TestReadAllInvalid(t *testing.T) {
	if _, err := index.ReadAll(make([]byte, 23)); !errors.Is(err, index.ErrInvalidIndex) {
		t.Errorf("ReadAll(23 bytes) error = %v, want ErrInvalidIndex", err)
	}
	items, err := index.ReadAll(nil)
	if err != nil || len(items) != 0 {
		t.Errorf("ReadAll(nil) = %v, %v, want empty", items, err)
	}
}
