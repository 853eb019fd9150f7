package walk

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func relPaths(entries []PathEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.RelPath
	}
	return out
}

func TestFilter_Ignored(t *testing.T) {
	f := Filter{
		IgnorePrefixes: []string{".git", "Library", "build/"},
		IgnoreGlobs:    []string{"**/*.tmp"},
	}

	tests := []struct {
		rel  string
		want bool
	}{
		{".git", true},
		{".git/HEAD", true},
		{".gitignore", false},
		{".github/workflows/ci.yml", false},
		{"Library/cache.bin", true},
		{"LibraryTools/x.cs", false},
		{"build", true},
		{"build/out.dll", true},
		{"Assets/foo.tmp", true},
		{"Assets/foo.cs", false},
	}

	for _, tt := range tests {
		t.Run(tt.rel, func(t *testing.T) {
			assert.Equal(t, tt.want, f.Ignored(tt.rel))
		})
	}
}

func TestFilter_Included(t *testing.T) {
	f := Filter{Extensions: []string{".cs", ".asmdef", ".MD"}}

	assert.True(t, f.Included("Assets/Foo.cs"))
	assert.True(t, f.Included("Packages/x/Runtime/x.asmdef"))
	assert.True(t, f.Included("README.md"))
	assert.False(t, f.Included("Assets/Foo.cs.meta"))
	assert.False(t, f.Included("Assets/texture.png"))

	assert.True(t, Filter{}.Included("anything.bin"), "empty extension list includes all")
}

func TestFilter_Validate(t *testing.T) {
	require.NoError(t, Filter{IgnoreGlobs: []string{"**/*.tmp"}}.Validate())
	err := Filter{IgnoreGlobs: []string{"[bad"}}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid ignore glob")
}

func TestWalk(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"Assets/foo.cs":             "a",
		"Assets/Sub/bar.md":         "b",
		".git/config":               "c",
		"Library/cache/blob":        "d",
		"Packages/pkg/package.json": "e",
	})

	entries, err := Walk(context.Background(), root, Filter{IgnorePrefixes: []string{".git", "Library"}})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Assets",
		"Assets/Sub",
		"Assets/Sub/bar.md",
		"Assets/foo.cs",
		"Packages",
		"Packages/pkg",
		"Packages/pkg/package.json",
	}, relPaths(entries))

	for _, e := range entries {
		assert.True(t, filepath.IsAbs(e.Path))
		if e.RelPath == "Assets/Sub/bar.md" {
			assert.False(t, e.IsDir)
			assert.Equal(t, ".md", e.Ext)
			assert.Equal(t, 3, e.Depth)
			assert.Equal(t, "bar.md", e.Name())
		}
		if e.RelPath == "Assets" {
			assert.True(t, e.IsDir)
			assert.Equal(t, 1, e.Depth)
		}
	}
}

func TestWalk_MissingRoot(t *testing.T) {
	_, err := Walk(context.Background(), filepath.Join(t.TempDir(), "nope"), Filter{})
	require.Error(t, err)
}

func TestSubdirectories(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"b.pkg/package.json": "{}",
		"a.pkg/package.json": "{}",
		"manifest.json":      "{}",
	})

	dirs, err := Subdirectories(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.pkg", "b.pkg"}, relPaths(dirs))
}

func TestUnderAndSortDeepestFirst(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"pkg/Runtime/a.cs":     "",
		"pkg/Runtime/Sub/b.cs": "",
		"pkg/package.json":     "",
		"other/c.cs":           "",
	})

	entries, err := Walk(context.Background(), root, Filter{})
	require.NoError(t, err)

	under := Under(entries, filepath.Join(root, "pkg"))
	assert.Equal(t, []string{
		"pkg/Runtime",
		"pkg/Runtime/Sub",
		"pkg/Runtime/Sub/b.cs",
		"pkg/Runtime/a.cs",
		"pkg/package.json",
	}, relPaths(under))

	SortDeepestFirst(under)
	assert.Equal(t, []string{
		"pkg/Runtime/Sub/b.cs",
		"pkg/Runtime/Sub",
		"pkg/Runtime/a.cs",
		"pkg/Runtime",
		"pkg/package.json",
	}, relPaths(under))
}
