package publish

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrOutsideRoot is returned by DestPath for paths not under the source root.
var ErrOutsideRoot = errors.New("path is outside source root")

// DestPath maps path, which must live under sourceRoot, to the same
// relative location under destRoot.
func DestPath(sourceRoot, destRoot, path string) (string, error) {
	rel, err := filepath.Rel(sourceRoot, path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrOutsideRoot, path, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s not under %s", ErrOutsideRoot, path, sourceRoot)
	}
	return filepath.Join(destRoot, rel), nil
}

// EnsureDir creates path and any missing parents. An existing directory
// is not an error; an existing non-directory is.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	return nil
}

// resolveDir resolves symlinks in the longest existing prefix of dir and
// re-appends the components that do not exist yet.
func resolveDir(dir string) (string, error) {
	var missing []string
	cur := dir
	for {
		resolved, err := filepath.EvalSymlinks(cur)
		if err == nil {
			return filepath.Join(append([]string{resolved}, missing...)...), nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("failed to resolve %s: %w", dir, err)
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return dir, nil
		}
		missing = append([]string{filepath.Base(cur)}, missing...)
		cur = parent
	}
}
