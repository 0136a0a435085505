package bundle

import (
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/eak1mov/go-bundletiles/bundle/spec"
	"github.com/eak1mov/go-bundletiles/tile"
)

type bundleRef struct {
	z        uint32
	rowGroup uint32
	colGroup uint32
	basePath string
}

// listBundles returns all bundles of the cache, ordered by level and file name.
// Directories and files not following the naming scheme are skipped.
func (r *Reader) listBundles() ([]bundleRef, error) {
	layersDir := filepath.Join(r.root, spec.LayersDir)
	levels, err := os.ReadDir(layersDir)
	if err != nil {
		return nil, wrapFileError(err)
	}

	var refs []bundleRef
	for _, level := range levels {
		if !level.IsDir() {
			continue
		}
		z, err := spec.ParseLevel(level.Name())
		if err != nil {
			r.logger.Debug("skipping directory", "name", level.Name(), "err", err)
			continue
		}
		levelDir := filepath.Join(layersDir, level.Name())
		entries, err := os.ReadDir(levelDir)
		if err != nil {
			return nil, wrapFileError(err)
		}
		for _, entry := range entries {
			name, found := strings.CutSuffix(entry.Name(), spec.BundleExtension)
			if !found || !entry.Type().IsRegular() {
				continue
			}
			rowGroup, colGroup, err := spec.ParseBundleName(name)
			if err != nil {
				r.logger.Debug("skipping file", "name", entry.Name(), "err", err)
				continue
			}
			refs = append(refs, bundleRef{
				z:        z,
				rowGroup: rowGroup,
				colGroup: colGroup,
				basePath: filepath.Join(levelDir, name),
			})
		}
	}
	return refs, nil
}

func (r *Reader) slotOrder() iter.Seq[uint64] {
	if r.clustered {
		return spec.ClusteredSlots(r.packSize)
	}
	return spec.FileSlots(r.packSize)
}

func (r *Reader) visitBundle(ref bundleRef, slots iter.Seq[uint64], visitor func(tile.ID, *bundleFiles, uint64, int) error) error {
	files, err := openBundleFiles(spec.Location{BasePath: ref.basePath}, r.table.hasIndexFile())
	if err != nil {
		return err
	}
	defer files.Close()

	r.logger.Debug("visiting bundle", "path", ref.basePath, "level", ref.z)

	bundleAccess, indexAccess := files.bundleAccess(), files.indexAccess()
	for slot := range slots {
		prefixOffset, ok, err := r.table.prefixOffset(bundleAccess, indexAccess, slot)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		length, err := readLength(bundleAccess, prefixOffset)
		if err != nil {
			return err
		}
		if length == 0 {
			continue
		}
		tileID := spec.SlotTile(r.packSize, ref.z, ref.rowGroup, ref.colGroup, slot)
		if err := visitor(tileID, files, prefixOffset, length); err != nil {
			return err
		}
	}
	return nil
}

func (r *Reader) visit(visitor func(tile.ID, *bundleFiles, uint64, int) error) error {
	refs, err := r.listBundles()
	if err != nil {
		return err
	}
	slots := r.slotOrder()
	for _, ref := range refs {
		if err := r.visitBundle(ref, slots, visitor); err != nil {
			return err
		}
	}
	return nil
}

// VisitLocations visits every non-empty tile of the cache.
// Offsets are relative to the bundle file holding the tile.
func (r *Reader) VisitLocations(visitor func(tile.ID, tile.Location) error) error {
	return r.visit(func(tileID tile.ID, _ *bundleFiles, prefixOffset uint64, length int) error {
		return visitor(tileID, tile.Location{
			Offset: prefixOffset + spec.LengthPrefixLength,
			Length: uint64(length),
		})
	})
}

func (r *Reader) VisitTiles(visitor func(tile.ID, []byte) error) error {
	return r.visit(func(tileID tile.ID, files *bundleFiles, prefixOffset uint64, length int) error {
		tileData, err := files.bundleAccess()(prefixOffset+spec.LengthPrefixLength, uint64(length))
		if err != nil {
			return err
		}
		return visitor(tileID, tileData)
	})
}

// VisitRecords is like VisitTiles but also reports the modification time of
// the bundle each tile was read from.
func (r *Reader) VisitRecords(visitor func(tile.ID, tile.Record) error) error {
	return r.visit(func(tileID tile.ID, files *bundleFiles, prefixOffset uint64, length int) error {
		tileData, err := files.bundleAccess()(prefixOffset+spec.LengthPrefixLength, uint64(length))
		if err != nil {
			return err
		}
		return visitor(tileID, tile.Record{LastModified: files.modTime, Data: tileData})
	})
}
