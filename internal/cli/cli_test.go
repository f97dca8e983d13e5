package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/datapantry/pantry-gui/internal/config"
)

const testCatalog = `
description: CLI test sources
sources:
  trips:
    driver: csv
    args:
      urlpath: ./trips.csv
  zones:
    driver: parquet
`

func writeTestCatalog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fleet.yaml")
	if err := os.WriteFile(path, []byte(testCatalog), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	AddCommands(root)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

// TestShowCommand tests printing a local catalog
func TestShowCommand(t *testing.T) {
	path := writeTestCatalog(t)

	out, err := runCommand(t, "show", path)
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}
	if !strings.Contains(out, "Catalog:  fleet") {
		t.Errorf("output missing catalog name:\n%s", out)
	}
	if !strings.Contains(out, "trips") || !strings.Contains(out, "zones") {
		t.Errorf("output missing sources:\n%s", out)
	}
	if !strings.Contains(out, "Sources:  2") {
		t.Errorf("output missing source count:\n%s", out)
	}
}

// TestShowCommandFailure tests the error path for a missing catalog
func TestShowCommandFailure(t *testing.T) {
	_, err := runCommand(t, "show", filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Error("show on a missing catalog should fail")
	}
}

// TestFetchCommand tests mirroring a catalog to a chosen output file
func TestFetchCommand(t *testing.T) {
	path := writeTestCatalog(t)
	output := filepath.Join(t.TempDir(), "mirror.yaml")

	out, err := runCommand(t, "fetch", path, "-o", output)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if !strings.Contains(out, "Wrote "+output) {
		t.Errorf("output missing confirmation:\n%s", out)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != testCatalog {
		t.Error("mirrored document differs from the source")
	}
}

// TestFetchCommandRejectsNonCatalog tests validation before writing
func TestFetchCommandRejectsNonCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.yaml")
	if err := os.WriteFile(path, []byte("just a string"), 0644); err != nil {
		t.Fatal(err)
	}

	output := filepath.Join(t.TempDir(), "out.yaml")
	if _, err := runCommand(t, "fetch", path, "-o", output); err == nil {
		t.Error("fetch of a non-catalog document should fail")
	}
	if _, err := os.Stat(output); err == nil {
		t.Error("no output file should be written for a rejected document")
	}
}

// TestAuthCommand tests storing a token from piped input
func TestAuthCommand(t *testing.T) {
	tokenPath := filepath.Join(t.TempDir(), "token")

	root := NewRootCmd()
	AddCommands(root)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader("sekrit-token\n"))
	root.SetArgs([]string{"auth", "--token-file", tokenPath})

	if err := root.Execute(); err != nil {
		t.Fatalf("auth failed: %v", err)
	}

	token, err := config.ReadTokenFile(tokenPath)
	if err != nil {
		t.Fatal(err)
	}
	if token != "sekrit-token" {
		t.Errorf("stored token = %q, want sekrit-token", token)
	}
}
