package publish

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDestPath(t *testing.T) {
	tests := []struct {
		name, src, dst, path, want string
	}{
		{"top level", "/tmp/cc", "site/cc", "/tmp/cc/index.html", "site/cc/index.html"},
		{"nested", "/tmp/cc", "/var/www", "/tmp/cc/a/b/c.html", "/var/www/a/b/c.html"},
		{"root recurs in path", "/tmp/cc", "out", "/tmp/cc/tmp/cc/x.html", "out/tmp/cc/x.html"},
		{"relative roots", "cov", "pub", "cov/pkg/x.html", "pub/pkg/x.html"},
		{"dotdot prefixed name", "/tmp/cc", "out", "/tmp/cc/..hidden.html", "out/..hidden.html"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DestPath(tt.src, tt.dst, tt.path)
			require.NoError(t, err)
			assert.Equal(t, filepath.FromSlash(tt.want), got)
		})
	}
}

func TestDestPathOutsideRoot(t *testing.T) {
	for _, path := range []string{"/tmp/other/x.html", "/tmp/ccx/x.html", "/tmp"} {
		_, err := DestPath("/tmp/cc", "out", path)
		assert.ErrorIs(t, err, ErrOutsideRoot, path)
	}

	_, err := DestPath("/tmp/cc", "out", "relative/x.html")
	assert.ErrorIs(t, err, ErrOutsideRoot)
}

func TestEnsureDirIdempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "c")

	require.NoError(t, EnsureDir(dir))
	before, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, before.IsDir())

	require.NoError(t, EnsureDir(dir))
	after, err := os.Stat(dir)
	require.NoError(t, err)
	assert.Equal(t, before.ModTime(), after.ModTime())
	assert.Equal(t, before.Mode(), after.Mode())
}

func TestEnsureDirOverFile(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "taken")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	assert.Error(t, EnsureDir(file))
	assert.Error(t, EnsureDir(filepath.Join(file, "child")))
}

func TestResolveDir(t *testing.T) {
	root := t.TempDir()
	real := filepath.Join(root, "real")
	require.NoError(t, os.Mkdir(real, 0o755))
	link := filepath.Join(root, "link")
	require.NoError(t, os.Symlink(real, link))

	resolvedReal, err := filepath.EvalSymlinks(real)
	require.NoError(t, err)

	got, err := resolveDir(filepath.Join(link, "x", "y"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(resolvedReal, "x", "y"), got)

	got, err = resolveDir(link)
	require.NoError(t, err)
	assert.Equal(t, resolvedReal, got)
}

func TestResolveDirRelativeMissing(t *testing.T) {
	t.Chdir(t.TempDir())

	got, err := resolveDir(filepath.Join("site", "cc", "pkg"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("site", "cc", "pkg"), got)
}
