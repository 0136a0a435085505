package bundle

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
)

var (
	ErrNotFound        = errors.New("libtiles: tile not found")
	ErrIO              = errors.New("libtiles: bundle i/o error")
	// short reads match both ErrTruncated and ErrIO
	ErrTruncated       = errors.New("libtiles: truncated bundle")
	ErrInvalidPackSize = errors.New("libtiles: invalid pack size")
)

func wrapFileError(err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return fmt.Errorf("%w: %w", ErrIO, err)
}

// FileAccessFunc reads exactly length bytes at offset.
type FileAccessFunc = func(offset, length uint64) ([]byte, error)

func fileAccess(r io.ReaderAt) FileAccessFunc {
	return func(offset, length uint64) ([]byte, error) {
		buffer := make([]byte, length)
		n, err := r.ReadAt(buffer, int64(offset))
		if uint64(n) == length {
			return buffer, nil
		}
		if err == nil || errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %w: read %d of %d bytes at offset %d", ErrIO, ErrTruncated, n, length, offset)
		}
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
}
