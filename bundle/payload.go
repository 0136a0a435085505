package bundle

import "github.com/eak1mov/go-bundletiles/bundle/spec"

// readLength reads the length prefix at prefixOffset.
func readLength(bundle FileAccessFunc, prefixOffset uint64) (int, error) {
	prefix, err := bundle(prefixOffset, spec.LengthPrefixLength)
	if err != nil {
		return 0, err
	}
	return spec.DecodeLength(prefix)
}

// readPayload reads the length-prefixed tile data at prefixOffset.
func readPayload(bundle FileAccessFunc, prefixOffset uint64) ([]byte, error) {
	length, err := readLength(bundle, prefixOffset)
	if err != nil {
		return nil, err
	}
	if length == 0 {
		return make([]byte, 0), nil
	}
	return bundle(prefixOffset+spec.LengthPrefixLength, uint64(length))
}
