// Package filesystem provides the real filesystem adapter.
package filesystem

import (
	"os"

	"github.com/ThiagoSantosOFC/starship/internal/ports"
)

// RealFileSystem implements ports.FileSystem against the host filesystem.
type RealFileSystem struct{}

// NewRealFileSystem creates a new RealFileSystem.
func NewRealFileSystem() *RealFileSystem {
	return &RealFileSystem{}
}

// ReadFile reads the named file.
func (f *RealFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFile writes data to the named file, creating it if necessary.
func (f *RealFileSystem) WriteFile(path string, data []byte, perm os.FileMode) error {
	return os.WriteFile(path, data, perm)
}

// Exists reports whether the path exists.
func (f *RealFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsDir reports whether the path exists and is a directory.
func (f *RealFileSystem) IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// MkdirAll creates the directory and any missing parents.
func (f *RealFileSystem) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// Remove removes the named file or empty directory.
func (f *RealFileSystem) Remove(path string) error {
	return os.Remove(path)
}

var _ ports.FileSystem = (*RealFileSystem)(nil)
