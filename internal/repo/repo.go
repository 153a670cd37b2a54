// Package repo implements the on-disk repository: a .binstash
// directory holding packs and their indexes, plus the operations that
// create and inspect them.
package repo

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/binstash/binstash/internal/packidx"
)

// DirName is the repository directory created at the repository root.
const DirName = ".binstash"

const (
	packsSubdir = "packs"
	packExt     = ".pack"
	indexExt    = ".pack.idx"
)

// Repository is an open binstash repository.
type Repository struct {
	root string
}

// Init creates a repository at dir. It fails if one already exists.
func Init(dir string) (*Repository, error) {
	repoDir := filepath.Join(dir, DirName)
	if _, err := os.Stat(repoDir); err == nil {
		return nil, fmt.Errorf("repository already exists at %s", repoDir)
	}
	if err := os.MkdirAll(filepath.Join(repoDir, packsSubdir), 0755); err != nil {
		return nil, fmt.Errorf("create repository: %w", err)
	}
	return &Repository{root: dir}, nil
}

// Find walks up from start looking for a repository directory.
func Find(start string) (*Repository, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return nil, err
	}
	for {
		info, err := os.Stat(filepath.Join(dir, DirName))
		if err == nil && info.IsDir() {
			return &Repository{root: dir}, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, fmt.Errorf("no %s repository found in %s or any parent", DirName, start)
		}
		dir = parent
	}
}

// Root returns the directory containing the repository.
func (r *Repository) Root() string {
	return r.root
}

func (r *Repository) packsDir() string {
	return filepath.Join(r.root, DirName, packsSubdir)
}

// PackPath returns the path of the named pack's data file.
func (r *Repository) PackPath(name string) string {
	return filepath.Join(r.packsDir(), name+packExt)
}

// IndexPath returns the path of the named pack's index file.
func (r *Repository) IndexPath(name string) string {
	return filepath.Join(r.packsDir(), name+indexExt)
}

// Packs returns the names of all packs in the repository, sorted.
func (r *Repository) Packs() ([]string, error) {
	entries, err := os.ReadDir(r.packsDir())
	if err != nil {
		return nil, fmt.Errorf("list packs: %w", err)
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.Type().IsRegular() && strings.HasSuffix(name, packExt) && !strings.HasSuffix(name, indexExt) {
			names = append(names, strings.TrimSuffix(name, packExt))
		}
	}
	sort.Strings(names)
	return names, nil
}

// LoadIndex reads the index of the named pack.
func (r *Repository) LoadIndex(name string) (*packidx.Index, error) {
	return packidx.ReadFile(r.IndexPath(name))
}
