package bundle

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/eak1mov/go-bundletiles/bundle/spec"
)

// DetectFormat guesses the format of the cache at root by looking for ".bundlx"
// index files in the level directories. Trees without any index file, including
// empty ones, are reported as FormatCompactV2.
func DetectFormat(root string) (spec.Format, error) {
	layersDir := filepath.Join(root, spec.LayersDir)
	levels, err := os.ReadDir(layersDir)
	if err != nil {
		return spec.FormatUnknown, wrapFileError(err)
	}
	for _, level := range levels {
		if !level.IsDir() {
			continue
		}
		entries, err := os.ReadDir(filepath.Join(layersDir, level.Name()))
		if err != nil {
			return spec.FormatUnknown, wrapFileError(err)
		}
		for _, entry := range entries {
			if entry.Type().IsRegular() && strings.HasSuffix(entry.Name(), spec.IndexExtension) {
				return spec.FormatLegacy, nil
			}
		}
	}
	return spec.FormatCompactV2, nil
}
