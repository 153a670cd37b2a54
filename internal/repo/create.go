package repo

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/binstash/binstash/internal/batch"
	"github.com/binstash/binstash/internal/packidx"
	"github.com/binstash/binstash/internal/progress"
	"github.com/binstash/binstash/internal/stats"
)

// CreateOptions describe one pack creation run.
type CreateOptions struct {
	// Snapshot is the snapshot tag recorded in the index. It also
	// names the pack file.
	Snapshot string
	// SourceDir is the tree to ingest.
	SourceDir string
	// Compression configures the pack encoder.
	Compression batch.CompressionOptions
	// Rules optionally excludes files from the scan.
	Rules *RuleSet
	// Reporter receives per-file checkpoints. Defaults to
	// progress.Discard.
	Reporter progress.Reporter
	// Stats optionally collects ingest counters.
	Stats *stats.Collector
}

// CreateResult summarizes a successful pack creation.
type CreateResult struct {
	Pack         string
	FileCount    int
	BytesPacked  uint64 // decompressed bytes
	BytesWritten int64  // compressed pack size
}

// CreatePack ingests the tree at opts.SourceDir into a new pack: it
// scans for an ordered object list, fingerprints every file, streams
// their contents into one compressed pack file, and writes the index
// mapping the snapshot tag to its entries. The pack and index are
// written through temp files and renamed into place, so a failure at
// any point leaves no partial artifacts behind.
func (r *Repository) CreatePack(opts CreateOptions) (CreateResult, error) {
	if opts.Snapshot == "" {
		return CreateResult{}, fmt.Errorf("snapshot tag must not be empty")
	}
	if opts.Reporter == nil {
		opts.Reporter = progress.Discard
	}
	if opts.Stats == nil {
		opts.Stats = stats.NewCollector()
	}

	packPath := r.PackPath(opts.Snapshot)
	if _, err := os.Stat(packPath); err == nil {
		return CreateResult{}, fmt.Errorf("pack %s already exists", opts.Snapshot)
	}

	objects, err := Scan(opts.SourceDir, opts.Rules)
	if err != nil {
		return CreateResult{}, err
	}
	slog.Debug("scan complete", "dir", opts.SourceDir, "files", len(objects))

	paths := make([]string, len(objects))
	for i, obj := range objects {
		paths[i] = obj.AbsPath
	}

	checksums, err := batch.ComputeChecksums(paths)
	if err != nil {
		return CreateResult{}, fmt.Errorf("checksum objects: %w", err)
	}
	opts.Stats.AddFilesHashed(int64(len(checksums)))

	entries := make([]packidx.Entry, len(objects))
	var offset uint64
	for i, obj := range objects {
		entries[i] = packidx.Entry{
			Path:     obj.RelPath,
			Checksum: checksums[i],
			Offset:   offset,
			Size:     uint64(obj.Size),
		}
		offset += uint64(obj.Size)
	}

	processed, written, err := r.writePack(packPath, paths, opts)
	if err != nil {
		return CreateResult{}, err
	}
	opts.Stats.AddFilesPacked(int64(len(paths)))
	opts.Stats.AddBytesPacked(int64(processed))
	opts.Stats.AddBytesWritten(written)

	idx := packidx.NewIndex()
	idx.AddSnapshot(opts.Snapshot, entries)
	if err := r.writeIndex(opts.Snapshot, idx); err != nil {
		// The pack without its index is unusable; remove it.
		_ = os.Remove(packPath)
		return CreateResult{}, err
	}

	slog.Debug("pack created",
		"pack", opts.Snapshot, "files", len(paths),
		"bytes", processed, "compressed", written)

	return CreateResult{
		Pack:         opts.Snapshot,
		FileCount:    len(paths),
		BytesPacked:  processed,
		BytesWritten: written,
	}, nil
}

// writePack streams the pack into a temp file and renames it into
// place on success. On failure the temp file is removed: a partially
// written pack is not decodable and must not be left where it could be
// mistaken for a valid one.
func (r *Repository) writePack(packPath string, paths []string, opts CreateOptions) (uint64, int64, error) {
	tmpPath := tmpSibling(packPath)
	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return 0, 0, fmt.Errorf("create pack temp: %w", err)
	}
	defer func() {
		_ = os.Remove(tmpPath) // no-op once renamed
	}()

	counted := &countingWriter{w: f}
	processed, err := batch.CompressFiles(counted, paths, opts.Compression, opts.Reporter)
	if err != nil {
		f.Close()
		return 0, 0, err
	}
	if err := f.Close(); err != nil {
		return 0, 0, fmt.Errorf("close pack temp: %w", err)
	}

	if err := os.Rename(tmpPath, packPath); err != nil {
		return 0, 0, fmt.Errorf("rename pack into place: %w", err)
	}
	return processed, counted.n, nil
}

func (r *Repository) writeIndex(name string, idx *packidx.Index) error {
	idxPath := r.IndexPath(name)
	tmpPath := tmpSibling(idxPath)

	if err := packidx.WriteFile(tmpPath, idx); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, idxPath); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename index into place: %w", err)
	}
	return nil
}

// tmpSibling returns a unique temp path in the same directory as
// target, so the final rename stays on one filesystem.
func tmpSibling(target string) string {
	dir := filepath.Dir(target)
	base := filepath.Base(target)
	return filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", base, uuid.New().String()[:8]))
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
