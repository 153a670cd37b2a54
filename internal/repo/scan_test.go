package repo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files map[string][]byte) {
	t.Helper()
	for name, data := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, data, 0644))
	}
}

func relPaths(objects []Object) []string {
	paths := make([]string, len(objects))
	for i, obj := range objects {
		paths[i] = obj.RelPath
	}
	return paths
}

func TestScan_LexicalOrder(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string][]byte{
		"zz.txt":        []byte("z"),
		"aa.txt":        []byte("a"),
		"sub/deep/f":    []byte("deep"),
		"sub/shallow.o": []byte("obj"),
	})

	objects, err := Scan(root, nil)
	require.NoError(t, err)

	want := []string{"aa.txt", "sub/deep/f", "sub/shallow.o", "zz.txt"}
	assert.Equal(t, want, relPaths(objects))

	// Sizes recorded at scan time.
	assert.Equal(t, int64(1), objects[0].Size)
	assert.Equal(t, int64(4), objects[1].Size)
}

func TestScan_SkipsNonRegular(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string][]byte{"real": []byte("data")})
	require.NoError(t, os.Symlink(filepath.Join(root, "real"), filepath.Join(root, "link")))

	objects, err := Scan(root, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"real"}, relPaths(objects))
}

func TestScan_SkipsRepositoryDir(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string][]byte{
		"file":                    []byte("keep"),
		DirName + "/packs/x.pack": []byte("never pack the repository itself"),
	})

	objects, err := Scan(root, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"file"}, relPaths(objects))
}

func TestScan_AppliesRules(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string][]byte{
		"main.go":    []byte("go"),
		"main.o":     []byte("obj"),
		"build/out":  []byte("out"),
		"src/lib.o":  []byte("obj2"),
		"src/lib.go": []byte("go2"),
	})

	rules, err := NewRuleSet([]string{"*.o", "build"})
	require.NoError(t, err)

	objects, err := Scan(root, rules)
	require.NoError(t, err)
	assert.Equal(t, []string{"main.go", "src/lib.go"}, relPaths(objects))
}

func TestScan_MissingRoot(t *testing.T) {
	_, err := Scan(filepath.Join(t.TempDir(), "absent"), nil)
	assert.Error(t, err)
}
