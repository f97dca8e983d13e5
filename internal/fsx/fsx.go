// Package fsx isolates the filesystem operations the GUI components depend on:
// directory checks, listing, and the path-string conventions shared by the
// browser widgets (trailing-separator-normalized directory paths).
package fsx

import (
	"os"
	"path/filepath"
	"strings"
)

// Entry is a single directory entry as seen by the browser widgets.
type Entry struct {
	Name  string
	IsDir bool
}

// Filesystem is the narrow view of the OS filesystem the GUI consumes.
type Filesystem interface {
	// IsDir reports whether path exists and is a directory.
	IsDir(path string) bool
	// IsFile reports whether path exists and is a regular file.
	IsFile(path string) bool
	// List returns the entries of dir in directory order.
	List(dir string) ([]Entry, error)
	// WorkingDir returns the process working directory.
	WorkingDir() string
}

// OS is the real filesystem implementation.
type OS struct{}

// IsDir reports whether path exists and is a directory.
func (OS) IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// IsFile reports whether path exists and is a regular file.
func (OS) IsFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// List returns the entries of dir. Symlinks are resolved so that links to
// directories can be navigated into.
func (OS) List(dir string) ([]Entry, error) {
	dirents, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(dirents))
	for _, d := range dirents {
		isDir := d.IsDir()
		if d.Type()&os.ModeSymlink != 0 {
			if info, err := os.Stat(filepath.Join(dir, d.Name())); err == nil {
				isDir = info.IsDir()
			}
		}
		entries = append(entries, Entry{Name: d.Name(), IsDir: isDir})
	}
	return entries, nil
}

// WorkingDir returns the process working directory, or the root directory
// if it cannot be determined.
func (OS) WorkingDir() string {
	wd, err := os.Getwd()
	if err != nil {
		return Separator()
	}
	return wd
}

// Separator returns the OS path separator as a string.
func Separator() string {
	return string(filepath.Separator)
}

// EnsureTrailingSeparator normalizes a directory path to end with exactly
// one path separator. Empty input maps to the root directory.
func EnsureTrailingSeparator(path string) string {
	if path == "" {
		return Separator()
	}
	if strings.HasSuffix(path, Separator()) {
		return strings.TrimRight(path, Separator()) + Separator()
	}
	return path + Separator()
}

// Parent returns the parent directory of path, trailing-separator-normalized.
// Parent of the root directory is the root directory.
func Parent(path string) string {
	trimmed := strings.TrimRight(path, Separator())
	if trimmed == "" {
		return Separator()
	}
	return EnsureTrailingSeparator(filepath.Dir(trimmed))
}

// Join joins a normalized directory path and an entry name.
func Join(dir, name string) string {
	return filepath.Join(dir, name)
}
