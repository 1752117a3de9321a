package fs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/3-lines-studio/prerender/internal/core"
)

func TestCopyDirMerges(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src")
	dst := filepath.Join(root, "dst")

	require.NoError(t, os.MkdirAll(filepath.Join(src, "img"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "img", "logo.svg"), []byte("<svg/>"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "run.sh"), []byte("#!/bin/sh"), 0755))
	require.NoError(t, os.MkdirAll(dst, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dst, "keep.txt"), []byte("keep"), 0644))

	fsys := NewOSFileSystem()
	require.NoError(t, fsys.CopyDir(src, dst))

	assert.FileExists(t, filepath.Join(dst, "img", "logo.svg"))
	assert.FileExists(t, filepath.Join(dst, "keep.txt"))

	info, err := os.Stat(filepath.Join(dst, "run.sh"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())
}

func TestCopyDirRejectsFiles(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	assert.Error(t, NewOSFileSystem().CopyDir(file, t.TempDir()))
}

func TestLock(t *testing.T) {
	fsys := NewOSFileSystem()
	path := filepath.Join(t.TempDir(), "dist.lock")

	unlock, err := fsys.Lock(path)
	require.NoError(t, err)

	_, err = fsys.Lock(path)
	assert.True(t, errors.Is(err, core.ErrLocked))

	require.NoError(t, unlock())
	assert.NoFileExists(t, path)

	unlock, err = fsys.Lock(path)
	require.NoError(t, err)
	require.NoError(t, unlock())
}
