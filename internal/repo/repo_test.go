package repo_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/qiwen-lab/papertrack/internal/repo"
	"github.com/qiwen-lab/papertrack/internal/tagcfg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(orig) })
}

func TestInit(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, repo.Init(false, dir))

	assert.FileExists(t, repo.DBPath(dir))
	assert.FileExists(t, filepath.Join(dir, repo.Dir, "tags.yaml"))
	assert.FileExists(t, filepath.Join(dir, repo.Dir, ".gitignore"))

	// Written tag configuration loads and validates.
	cfg, err := tagcfg.Load(filepath.Join(dir, repo.Dir, "tags.yaml"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
}

func TestInit_ExistingRequiresForce(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, repo.Init(false, dir))

	err := repo.Init(false, dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	require.NoError(t, repo.Init(true, dir))
}

func TestInit_ForcePreservesTagConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, repo.Init(false, dir))

	// Customise the tag config, then reinitialise.
	tagPath := filepath.Join(dir, repo.Dir, "tags.yaml")
	custom := tagcfg.Default()
	custom.Version = "custom"
	require.NoError(t, custom.Save(tagPath))

	require.NoError(t, repo.Init(true, dir))

	cfg, err := tagcfg.Load(tagPath)
	require.NoError(t, err)
	assert.Equal(t, "custom", cfg.Version)
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, repo.Init(false, dir))

	nested := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))
	chdir(t, nested)

	got, err := repo.Discover()
	require.NoError(t, err)
	// Compare resolved paths: t.TempDir may sit behind a symlink.
	want, err := filepath.EvalSymlinks(repo.DBPath(dir))
	require.NoError(t, err)
	gotResolved, err := filepath.EvalSymlinks(got)
	require.NoError(t, err)
	assert.Equal(t, want, gotResolved)

	gotDir, err := repo.DiscoverDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Dir(gotResolved), mustResolve(t, gotDir))
}

func mustResolve(t *testing.T, p string) string {
	t.Helper()
	r, err := filepath.EvalSymlinks(p)
	require.NoError(t, err)
	return r
}

func TestDiscover_NotInitialised(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := repo.Discover()
	assert.ErrorIs(t, err, repo.ErrNotInitialised)

	_, err = repo.DiscoverDir()
	assert.ErrorIs(t, err, repo.ErrNotInitialised)
}
