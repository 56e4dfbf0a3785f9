package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/daryltucker/cc-publish/internal/config"
	"github.com/daryltucker/cc-publish/internal/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTree(t *testing.T) (src, dst string) {
	t.Helper()
	for _, k := range []string{config.EnvSourceDir, config.EnvTargetDir, config.EnvStylesheet} {
		t.Setenv(k, "")
	}
	output.SetLogger(output.Discard())

	base := t.TempDir()
	src = filepath.Join(base, "cc")
	dst = filepath.Join(base, "site", "cc")
	require.NoError(t, os.MkdirAll(filepath.Join(src, ".css"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(src, "pkg"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, ".css", "coverage.css"), []byte(".x{}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "pkg", "a.html"), []byte(`<style>@import "coverage.css";</style>`), 0o644))

	// An empty config file keeps a stray cc-publish.yaml in the working
	// directory from leaking into the test.
	cfgFile := filepath.Join(base, "empty.yaml")
	require.NoError(t, os.WriteFile(cfgFile, nil, 0o644))
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		sourceOverride, targetOverride, manifestOverride = "", "", ""
	})
	require.NoError(t, rootCmd.PersistentFlags().Set("config", cfgFile))
	return src, dst
}

func TestRootPublishes(t *testing.T) {
	src, dst := setupTree(t)

	rootCmd.SetArgs([]string{"--source", src, "--target", dst})
	require.NoError(t, Execute())

	data, err := os.ReadFile(filepath.Join(dst, "pkg", "a.html"))
	require.NoError(t, err)
	assert.Equal(t, "<style>.x{}</style>", string(data))
}

func TestPublishWithManifest(t *testing.T) {
	src, dst := setupTree(t)
	manifest := filepath.Join(t.TempDir(), "out.csv")

	rootCmd.SetArgs([]string{"publish", "-s", src, "-t", dst, "--manifest", manifest})
	require.NoError(t, Execute())

	data, err := os.ReadFile(manifest)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "source,destination"))
}

func TestListPrintsMappings(t *testing.T) {
	src, dst := setupTree(t)
	var out bytes.Buffer

	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"list", "-s", src, "-t", dst})
	require.NoError(t, Execute())

	want := filepath.Join(src, "pkg", "a.html") + " -> " + filepath.Join(dst, "pkg", "a.html") + "\n"
	assert.Equal(t, want, out.String())
	assert.NoDirExists(t, dst)
}

func TestMissingStylesheetFails(t *testing.T) {
	src, dst := setupTree(t)
	require.NoError(t, os.Remove(filepath.Join(src, ".css", "coverage.css")))

	rootCmd.SetArgs([]string{"-s", src, "-t", dst})
	err := Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stylesheet")
	assert.NoDirExists(t, dst)
}

func TestSameRootsRejected(t *testing.T) {
	src, _ := setupTree(t)

	rootCmd.SetArgs([]string{"-s", src, "-t", src})
	err := Execute()
	assert.ErrorIs(t, err, config.ErrInvalid)
}
