package fsx

import (
	"os"
	"path/filepath"
	"testing"
)

// TestEnsureTrailingSeparator tests directory path normalization
func TestEnsureTrailingSeparator(t *testing.T) {
	sep := Separator()
	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{"empty", "", sep},
		{"root", sep, sep},
		{"bare dir", filepath.Join(sep, "a", "b"), filepath.Join(sep, "a", "b") + sep},
		{"already normalized", filepath.Join(sep, "a") + sep, filepath.Join(sep, "a") + sep},
		{"double separator collapsed", filepath.Join(sep, "a") + sep + sep, filepath.Join(sep, "a") + sep},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := EnsureTrailingSeparator(tt.path)
			if result != tt.expected {
				t.Errorf("EnsureTrailingSeparator(%q) = %q, want %q", tt.path, result, tt.expected)
			}
		})
	}
}

// TestParent tests parent directory derivation including the root fixpoint
func TestParent(t *testing.T) {
	sep := Separator()
	ab := sep + "a" + sep + "b" + sep

	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{"two levels", ab, sep + "a" + sep},
		{"one level", sep + "a" + sep, sep},
		{"root is fixpoint", sep, sep},
		{"no trailing separator", sep + "a" + sep + "b", sep + "a" + sep},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Parent(tt.path)
			if result != tt.expected {
				t.Errorf("Parent(%q) = %q, want %q", tt.path, result, tt.expected)
			}
		})
	}
}

// TestParentRepeatedReachesRoot walks up from a deep path and verifies the
// walk terminates at the root directory
func TestParentRepeatedReachesRoot(t *testing.T) {
	sep := Separator()
	path := sep + filepath.Join("a", "b", "c", "d") + sep
	for i := 0; i < 10; i++ {
		path = Parent(path)
	}
	if path != sep {
		t.Errorf("repeated Parent did not reach root, got %q", path)
	}
}

// TestOSIsDirAndIsFile tests the stat-based checks against a real temp dir
func TestOSIsDirAndIsFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "cat.yaml")
	if err := os.WriteFile(file, []byte("sources: {}\n"), 0644); err != nil {
		t.Fatal(err)
	}

	var fs OS
	if !fs.IsDir(dir) {
		t.Errorf("IsDir(%q) = false, want true", dir)
	}
	if fs.IsDir(file) {
		t.Errorf("IsDir(%q) = true, want false", file)
	}
	if !fs.IsFile(file) {
		t.Errorf("IsFile(%q) = false, want true", file)
	}
	if fs.IsFile(dir) {
		t.Errorf("IsFile(%q) = true, want false", dir)
	}
	if fs.IsDir(filepath.Join(dir, "missing")) {
		t.Error("IsDir on missing path should be false")
	}
}

// TestOSList tests directory listing with files, dirs and symlinks
func TestOSList(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "a.yml"), []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(filepath.Join(dir, "sub"), filepath.Join(dir, "link")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	var fs OS
	entries, err := fs.List(dir)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	byName := make(map[string]Entry, len(entries))
	for _, e := range entries {
		byName[e.Name] = e
	}

	if e, ok := byName["sub"]; !ok || !e.IsDir {
		t.Errorf("expected directory entry 'sub', got %+v", e)
	}
	if e, ok := byName["a.yml"]; !ok || e.IsDir {
		t.Errorf("expected file entry 'a.yml', got %+v", e)
	}
	if e, ok := byName["link"]; !ok || !e.IsDir {
		t.Errorf("symlink to directory should list as directory, got %+v", e)
	}
}

// TestOSListMissingDir tests that listing a nonexistent directory fails
func TestOSListMissingDir(t *testing.T) {
	var fs OS
	if _, err := fs.List(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("List on missing directory should return an error")
	}
}

// TestWorkingDir tests that WorkingDir returns an existing directory
func TestWorkingDir(t *testing.T) {
	var fs OS
	wd := fs.WorkingDir()
	if wd == "" {
		t.Fatal("WorkingDir returned empty string")
	}
	if !fs.IsDir(wd) {
		t.Errorf("WorkingDir %q is not a directory", wd)
	}
}
