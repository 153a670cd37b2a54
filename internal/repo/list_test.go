package repo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatSnapshot(t *testing.T) {
	info := SnapshotInfo{Pack: "nightly", Tag: "build-7", Size: 2048, FileCount: 12}

	assert.Equal(t, "nightly:build-7", FormatSnapshot("%s", info))
	assert.Equal(t, "build-7", FormatSnapshot("%t", info))
	assert.Equal(t, "2048", FormatSnapshot("%b", info))
	assert.Equal(t, "12", FormatSnapshot("%n", info))
	assert.Equal(t, "2.0 KiB", FormatSnapshot("%h", info))
	assert.Equal(t, "build-7 12 files, 2048 bytes", FormatSnapshot("%t %n files, %b bytes", info))
}

func TestSnapshots(t *testing.T) {
	r := initTestRepo(t)

	srcA := t.TempDir()
	writeTree(t, srcA, map[string][]byte{"a": []byte("12345"), "b": []byte("678")})
	srcB := t.TempDir()
	writeTree(t, srcB, map[string][]byte{"c": []byte("xy")})

	for snapshot, src := range map[string]string{"beta": srcB, "alpha": srcA} {
		_, err := r.CreatePack(CreateOptions{
			Snapshot:    snapshot,
			SourceDir:   src,
			Compression: testCompression(),
		})
		require.NoError(t, err)
	}

	packs, err := r.Packs()
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, packs)

	rows, err := r.Snapshots(nil)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "alpha", rows[0].Pack)
	assert.Equal(t, uint64(8), rows[0].Size)
	assert.Equal(t, 2, rows[0].FileCount)

	assert.Equal(t, "beta", rows[1].Pack)
	assert.Equal(t, uint64(2), rows[1].Size)
	assert.Equal(t, 1, rows[1].FileCount)

	// Explicit pack selection.
	rows, err = r.Snapshots([]string{"beta"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "beta", rows[0].Tag)

	// Unknown pack fails.
	_, err = r.Snapshots([]string{"missing"})
	assert.Error(t, err)
}

func TestFind(t *testing.T) {
	root := t.TempDir()
	_, err := Init(root)
	require.NoError(t, err)

	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0755))

	r, err := Find(nested)
	require.NoError(t, err)
	assert.Equal(t, root, r.Root())

	_, err = Find(t.TempDir())
	assert.Error(t, err)
}
