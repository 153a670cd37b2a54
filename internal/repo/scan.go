package repo

import (
	"fmt"
	"io/fs"
	"path/filepath"
)

// Object is one regular file selected for packing.
type Object struct {
	// RelPath is the slash-separated path relative to the scan root.
	// It is the name recorded in the pack index.
	RelPath string
	// AbsPath locates the file on disk.
	AbsPath string
	// Size is the file size at scan time.
	Size int64
}

// Scan walks the tree under root and returns the regular files to
// pack, excluding anything matched by rules. filepath.WalkDir visits
// entries in lexical order, so the returned list is deterministic for
// a given tree; that order defines the pack's content order.
func Scan(root string, rules *RuleSet) ([]Object, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	var objects []Object
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == root {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() && d.Name() == DirName {
			return filepath.SkipDir
		}
		if rules.Excluded(rel) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return fmt.Errorf("stat %s: %w", p, err)
		}
		objects = append(objects, Object{
			RelPath: rel,
			AbsPath: p,
			Size:    info.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	return objects, nil
}
