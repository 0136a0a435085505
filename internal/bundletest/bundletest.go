// Package bundletest builds bundle caches on disk for tests.
package bundletest

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/eak1mov/go-bundletiles/bundle/spec"
	"github.com/eak1mov/go-bundletiles/tile"
	"github.com/stretchr/testify/require"
)

// PNGSignature is the 8-byte magic every PNG file starts with.
var PNGSignature = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

// legacyBundleHeader is the size of the (unused) header of a legacy bundle file.
const legacyBundleHeader = 60

// PNGTile returns a fake PNG payload unique to tileID.
func PNGTile(tileID tile.ID) []byte {
	buf := bytes.NewBuffer(bytes.Clone(PNGSignature))
	buf.WriteString(tileID.String())
	return buf.Bytes()
}

type pack struct {
	location spec.Location
	slots    map[uint64][]byte
}

func groupTiles(root string, packSize uint32, tiles map[tile.ID][]byte) map[string]*pack {
	packs := make(map[string]*pack)
	for tileID, tileData := range tiles {
		location := spec.Resolve(root, packSize, tileID)
		p, found := packs[location.BasePath]
		if !found {
			p = &pack{location: location, slots: make(map[uint64][]byte)}
			packs[location.BasePath] = p
		}
		p.slots[location.Slot] = tileData
	}
	return packs
}

func writeFile(t testing.TB, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, data, 0644))
}

// WriteCompact writes tiles into CompactV2 bundles under root.
func WriteCompact(t testing.TB, root string, packSize uint32, tiles map[tile.ID][]byte) {
	t.Helper()
	for _, p := range groupTiles(root, packSize, tiles) {
		count := uint64(packSize) * uint64(packSize)
		table := make([]byte, spec.CompactEntryOffset(count))
		var payloads bytes.Buffer
		for slot := range count {
			tileData, found := p.slots[slot]
			if !found {
				continue
			}
			prefixOffset := uint64(len(table)) + uint64(payloads.Len())
			payloads.Write(spec.EncodeLength(int32(len(tileData))))
			payloads.Write(tileData)
			entry := spec.EncodeCompactEntry(int32(prefixOffset + spec.LengthPrefixLength))
			copy(table[spec.CompactEntryOffset(slot):], entry)
		}
		writeFile(t, p.location.BundlePath(), append(table, payloads.Bytes()...))
	}
}

// WriteLegacy writes tiles into legacy bundle and ".bundlx" index pairs under root.
// Empty slots point at a shared zero-length record.
func WriteLegacy(t testing.TB, root string, packSize uint32, tiles map[tile.ID][]byte) {
	t.Helper()
	for _, p := range groupTiles(root, packSize, tiles) {
		count := uint64(packSize) * uint64(packSize)
		index := make([]byte, spec.LegacyEntryOffset(count))
		data := make([]byte, legacyBundleHeader)
		emptyOffset := uint64(len(data))
		data = append(data, spec.EncodeLength(0)...)
		for slot := range count {
			offset := emptyOffset
			if tileData, found := p.slots[slot]; found {
				offset = uint64(len(data))
				data = append(data, spec.EncodeLength(int32(len(tileData)))...)
				data = append(data, tileData...)
			}
			copy(index[spec.LegacyEntryOffset(slot):], spec.EncodeLegacyEntry(offset))
		}
		writeFile(t, p.location.BundlePath(), data)
		writeFile(t, p.location.IndexPath(), index)
	}
}

// Touch sets the modification time of every bundle file under root.
func Touch(t testing.TB, root string, modTime time.Time) {
	t.Helper()
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		return os.Chtimes(path, modTime, modTime)
	})
	require.NoError(t, err)
}
