package usecase

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/3-lines-studio/prerender/internal/adapters/fs"
	"github.com/3-lines-studio/prerender/internal/core"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestOutputWriterClean(t *testing.T) {
	dist := filepath.Join(t.TempDir(), "dist")
	writeFile(t, filepath.Join(dist, "stale", "index.html"), "old")

	w := NewOutputWriter(fs.NewOSFileSystem(), dist, nil)
	require.NoError(t, w.Clean(context.Background()))

	assert.NoDirExists(t, dist)

	// Cleaning a missing directory is not an error.
	require.NoError(t, w.Clean(context.Background()))
}

func TestOutputWriterCopyAssets(t *testing.T) {
	root := t.TempDir()
	static := filepath.Join(root, "static")
	built := filepath.Join(root, ".nuxt", "dist")
	dist := filepath.Join(root, "dist")

	writeFile(t, filepath.Join(static, "robots.txt"), "User-agent: *")
	writeFile(t, filepath.Join(static, "img", "logo.svg"), "<svg/>")
	writeFile(t, filepath.Join(built, "app.js"), "console.log(1)")

	w := NewOutputWriter(fs.NewOSFileSystem(), dist, nil)
	require.NoError(t, w.CopyAssets(context.Background(), static, built, "_nuxt"))

	assert.FileExists(t, filepath.Join(dist, "robots.txt"))
	assert.FileExists(t, filepath.Join(dist, "img", "logo.svg"))
	assert.FileExists(t, filepath.Join(dist, "_nuxt", "app.js"))
}

func TestOutputWriterCopyAssetsWithoutStatic(t *testing.T) {
	root := t.TempDir()
	built := filepath.Join(root, "built")
	dist := filepath.Join(root, "dist")
	writeFile(t, filepath.Join(built, "app.js"), "x")

	w := NewOutputWriter(fs.NewOSFileSystem(), dist, nil)
	require.NoError(t, w.CopyAssets(context.Background(), filepath.Join(root, "missing"), built, "assets"))

	assert.FileExists(t, filepath.Join(dist, "assets", "app.js"))
}

func TestOutputWriterCopyAssetsMissingBuild(t *testing.T) {
	root := t.TempDir()

	w := NewOutputWriter(fs.NewOSFileSystem(), filepath.Join(root, "dist"), nil)
	err := w.CopyAssets(context.Background(), "", filepath.Join(root, "nope"), "_nuxt")

	var fsErr *core.FilesystemError
	require.ErrorAs(t, err, &fsErr)
	assert.Equal(t, "copy built assets", fsErr.Op)
}

func TestOutputWriterWritePage(t *testing.T) {
	dist := t.TempDir()
	w := NewOutputWriter(fs.NewOSFileSystem(), dist, nil)
	ctx := context.Background()

	require.NoError(t, w.WritePage(ctx, "/", "<p>home</p>"))
	require.NoError(t, w.WritePage(ctx, "/users/1", "<p>one</p>"))

	home, err := os.ReadFile(filepath.Join(dist, "index.html"))
	require.NoError(t, err)
	assert.Equal(t, "<p>home</p>", string(home))

	user, err := os.ReadFile(filepath.Join(dist, "users", "1", "index.html"))
	require.NoError(t, err)
	assert.Equal(t, "<p>one</p>", string(user))

	var cfgErr *core.ConfigurationError
	require.ErrorAs(t, w.WritePage(ctx, "/../escape", "x"), &cfgErr)
}

func TestOutputWriterWriteMarker(t *testing.T) {
	dist := t.TempDir()
	w := NewOutputWriter(fs.NewOSFileSystem(), dist, nil)

	require.NoError(t, w.WriteMarker(context.Background()))

	info, err := os.Stat(filepath.Join(dist, ".nojekyll"))
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}
