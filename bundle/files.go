package bundle

import (
	"errors"
	"os"
	"time"

	"github.com/eak1mov/go-bundletiles/bundle/spec"
)

// bundleFiles holds the open files of one bundle for the duration of a lookup.
type bundleFiles struct {
	bundle  *os.File
	index   *os.File
	modTime time.Time
}

func openBundleFiles(location spec.Location, withIndex bool) (_ *bundleFiles, err error) {
	bundle, err := os.Open(location.BundlePath())
	if err != nil {
		return nil, wrapFileError(err)
	}
	defer func() {
		if err != nil {
			bundle.Close()
		}
	}()

	stat, err := bundle.Stat()
	if err != nil {
		return nil, wrapFileError(err)
	}

	files := &bundleFiles{bundle: bundle, modTime: stat.ModTime()}
	if withIndex {
		files.index, err = os.Open(location.IndexPath())
		if err != nil {
			return nil, wrapFileError(err)
		}
	}
	return files, nil
}

func (f *bundleFiles) Close() error {
	var indexErr error
	if f.index != nil {
		indexErr = f.index.Close()
	}
	return errors.Join(f.bundle.Close(), indexErr)
}

func (f *bundleFiles) bundleAccess() FileAccessFunc {
	return fileAccess(f.bundle)
}

func (f *bundleFiles) indexAccess() FileAccessFunc {
	if f.index == nil {
		return nil
	}
	return fileAccess(f.index)
}
