package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestComputeChecksums_OrderAndLength(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeTestFile(t, dir, "a", []byte("first file")),
		writeTestFile(t, dir, "b", []byte("second file, longer")),
		writeTestFile(t, dir, "c", []byte("third file, longer still")),
	}

	sums, err := ComputeChecksums(paths)
	require.NoError(t, err)
	require.Len(t, sums, len(paths))

	// All contents differ, so all checksums must differ.
	assert.NotEqual(t, sums[0], sums[1])
	assert.NotEqual(t, sums[1], sums[2])
	assert.NotEqual(t, sums[0], sums[2])

	// Positional correspondence: hashing each file alone must give
	// the checksum at its index.
	for i, path := range paths {
		solo, err := ComputeChecksums([]string{path})
		require.NoError(t, err)
		assert.Equal(t, sums[i], solo[0], "checksum at index %d", i)
	}
}

func TestComputeChecksums_ContentOnly(t *testing.T) {
	dir := t.TempDir()
	data := []byte("identical bytes under two names")
	a := writeTestFile(t, dir, "original", data)
	b := writeTestFile(t, dir, "copy-with-other-name", data)

	sums, err := ComputeChecksums([]string{a, b})
	require.NoError(t, err)
	assert.Equal(t, sums[0], sums[1])
}

func TestComputeChecksums_SingleByteChange(t *testing.T) {
	dir := t.TempDir()
	a := writeTestFile(t, dir, "a", []byte("some content here"))
	b := writeTestFile(t, dir, "b", []byte("some content herf"))

	sums, err := ComputeChecksums([]string{a, b})
	require.NoError(t, err)
	assert.NotEqual(t, sums[0], sums[1])
}

func TestComputeChecksums_MissingFile(t *testing.T) {
	dir := t.TempDir()
	a := writeTestFile(t, dir, "a", []byte("exists"))

	sums, err := ComputeChecksums([]string{a, filepath.Join(dir, "missing")})
	assert.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Nil(t, sums)
}

func TestComputeChecksums_Empty(t *testing.T) {
	sums, err := ComputeChecksums(nil)
	require.NoError(t, err)
	assert.Empty(t, sums)
	assert.NotNil(t, sums)
}

func TestComputeChecksums_ManyFilesDeterministic(t *testing.T) {
	dir := t.TempDir()

	// Enough files that every worker processes many and scratch
	// buffers get reused across differently sized contents.
	var paths []string
	for i := 0; i < 200; i++ {
		data := make([]byte, (i*37)%512)
		for j := range data {
			data[j] = byte(i + j)
		}
		paths = append(paths, writeTestFile(t, dir, fmt.Sprintf("f%03d", i), data))
	}

	first, err := ComputeChecksums(paths)
	require.NoError(t, err)
	second, err := ComputeChecksums(paths)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
