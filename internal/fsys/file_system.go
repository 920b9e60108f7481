// Package fsys lists directories and reads entry metadata.
package fsys

import (
	"io/fs"
	"os"
	"sort"

	"dircmp/internal/tree"
)

// FileSystem represents the operations the collector performs on a real
// file system, as an interface for mockability.
type FileSystem interface {
	// Return the names of the immediate children of the directory named by
	// the supplied path, sorted by name.
	ReadDir(path string) (names []string, err error)

	// Read the metadata of the entry named by the supplied path. Symbolic
	// links are not followed. A missing path yields an error matching
	// fs.ErrNotExist.
	Stat(path string) (entry tree.Entry, err error)
}

// Return a FileSystem that uses the real file system.
func NewFileSystem() FileSystem {
	return &fileSystem{}
}

type fileSystem struct {
}

func (f *fileSystem) ReadDir(path string) (names []string, err error) {
	d, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer d.Close()

	if names, err = d.Readdirnames(-1); err != nil {
		return nil, err
	}

	sort.Strings(names)
	return names, nil
}

func (f *fileSystem) Stat(path string) (entry tree.Entry, err error) {
	var fi os.FileInfo
	if fi, err = os.Lstat(path); err != nil {
		return
	}

	return convertFileInfo(fi), nil
}

// Anything that is not a directory counts as a file, including symlinks,
// devices and pipes.
func convertFileInfo(fi fs.FileInfo) tree.Entry {
	if fi.IsDir() {
		return tree.Entry{
			ModTime: fi.ModTime(),
			IsDir:   true,
		}
	}

	return tree.Entry{
		Size:    fi.Size(),
		ModTime: fi.ModTime(),
	}
}
