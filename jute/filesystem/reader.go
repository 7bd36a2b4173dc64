package filesystem

import (
	"io/fs"
	"os"
)

// DirReader is the slice of the host filesystem the walker consumes.
// Stat follows symbolic links.
type DirReader interface {
	Stat(name string) (fs.FileInfo, error)
	ReadDir(name string) ([]fs.DirEntry, error)
}

// OSReader reads the host filesystem through package os.
type OSReader struct{}

func (OSReader) Stat(name string) (fs.FileInfo, error) { return os.Stat(name) }

// ReadDir returns entries sorted by filename.
func (OSReader) ReadDir(name string) ([]fs.DirEntry, error) { return os.ReadDir(name) }
