package spec

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	LegacyHeaderLength = 16
	LegacyEntryLength  = 5

	CompactHeaderLength = 64
	CompactEntryLength  = 8
	// only the low 4 bytes of a compact entry hold the offset
	CompactOffsetLength = 4

	LengthPrefixLength = 4

	// MaxTileLength bounds a decoded payload length.
	MaxTileLength = 16 << 20
)

var ErrInvalidLength = errors.New("libtiles: invalid tile length")

// LegacyEntryOffset returns the position of the slot entry in a ".bundlx" file.
func LegacyEntryOffset(slot uint64) uint64 {
	return LegacyHeaderLength + LegacyEntryLength*slot
}

// DecodeLegacyEntry decodes a 5-byte little-endian unsigned offset. The result
// points at the length prefix of the payload in the ".bundle" file.
func DecodeLegacyEntry(entry []byte) uint64 {
	_ = entry[LegacyEntryLength-1]
	return uint64(entry[0]) |
		uint64(entry[1])<<8 |
		uint64(entry[2])<<16 |
		uint64(entry[3])<<24 |
		uint64(entry[4])<<32
}

func EncodeLegacyEntry(offset uint64) []byte {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], offset)
	return buf[:LegacyEntryLength]
}

// CompactEntryOffset returns the position of the slot entry in a ".bundle" file.
func CompactEntryOffset(slot uint64) uint64 {
	return CompactHeaderLength + CompactEntryLength*slot
}

// DecodeCompactEntry decodes the signed 32-bit offset stored in the low bytes of
// a compact entry. The result points just past the length prefix.
func DecodeCompactEntry(entry []byte) int32 {
	return int32(binary.LittleEndian.Uint32(entry[:CompactOffsetLength]))
}

func EncodeCompactEntry(dataOffset int32) []byte {
	buf := make([]byte, CompactEntryLength)
	binary.LittleEndian.PutUint32(buf, uint32(dataOffset))
	return buf
}

// CompactPrefixOffset converts a decoded compact entry into the position of the
// length prefix. ok is false for empty slots.
func CompactPrefixOffset(dataOffset int32) (prefixOffset uint64, ok bool) {
	if dataOffset < LengthPrefixLength {
		return 0, false
	}
	return uint64(dataOffset) - LengthPrefixLength, true
}

// DecodeLength decodes a 4-byte little-endian signed length prefix.
func DecodeLength(prefix []byte) (int, error) {
	length := int32(binary.LittleEndian.Uint32(prefix[:LengthPrefixLength]))
	if length < 0 || length > MaxTileLength {
		return 0, fmt.Errorf("%w: %d", ErrInvalidLength, length)
	}
	return int(length), nil
}

func EncodeLength(length int32) []byte {
	return binary.LittleEndian.AppendUint32(nil, uint32(length))
}
