package fs

import (
	iofs "io/fs"
)

type FileSystem interface {
	Exists(path string) bool
	WriteFile(path string, data []byte, perm iofs.FileMode) error
	MkdirAll(path string, perm iofs.FileMode) error
	RemoveAll(path string) error
	CopyDir(src, dst string) error
	Lock(path string) (unlock func() error, err error)
}
