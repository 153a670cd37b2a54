package repo

import (
	"sort"
	"strconv"
	"strings"

	"github.com/binstash/binstash/internal/packidx"
	"github.com/binstash/binstash/internal/ui"
)

// SnapshotInfo summarizes one snapshot for listing.
type SnapshotInfo struct {
	Pack      string
	Tag       string
	Size      uint64 // total decompressed size of the snapshot's objects
	FileCount int
}

// Snapshots loads the given packs' indexes and returns a row per
// snapshot. An empty packs list means all packs in the repository.
func (r *Repository) Snapshots(packs []string) ([]SnapshotInfo, error) {
	if len(packs) == 0 {
		var err error
		packs, err = r.Packs()
		if err != nil {
			return nil, err
		}
	}

	var rows []SnapshotInfo
	for _, pack := range packs {
		idx, err := r.LoadIndex(pack)
		if err != nil {
			return nil, err
		}

		err = idx.ForEachSnapshot(func(tag string, entries []packidx.Entry) error {
			var size uint64
			for _, entry := range entries {
				size += entry.Size
			}
			rows = append(rows, SnapshotInfo{
				Pack:      pack,
				Tag:       tag,
				Size:      size,
				FileCount: len(entries),
			})
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Pack != rows[j].Pack {
			return rows[i].Pack < rows[j].Pack
		}
		return rows[i].Tag < rows[j].Tag
	})
	return rows, nil
}

// FormatSnapshot renders a snapshot row using a format string with the
// following placeholders:
//
//	%s - fully-qualified snapshot (pack:tag)
//	%t - snapshot tag
//	%h - human-readable size
//	%b - size in bytes
//	%n - number of files
func FormatSnapshot(format string, info SnapshotInfo) string {
	row := format
	row = strings.ReplaceAll(row, "%s", info.Pack+":"+info.Tag)
	row = strings.ReplaceAll(row, "%t", info.Tag)
	row = strings.ReplaceAll(row, "%h", ui.FormatBytes(int64(info.Size)))
	row = strings.ReplaceAll(row, "%b", strconv.FormatUint(info.Size, 10))
	row = strings.ReplaceAll(row, "%n", strconv.Itoa(info.FileCount))
	return row
}
