package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const sampleCatalog = `
metadata:
  version: 1
description: Example data sources
sources:
  trips:
    driver: csv
    description: Taxi trips
    args:
      urlpath: ./trips.csv
  zones:
    driver: parquet
    args:
      urlpath: ./zones.parquet
`

// TestParse tests decoding a well-formed catalog document
func TestParse(t *testing.T) {
	cat, err := Parse([]byte(sampleCatalog), "/data/nyc.yaml")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cat.Name != "nyc" {
		t.Errorf("Name = %q, want %q (base name without extension)", cat.Name, "nyc")
	}
	if cat.Location != "/data/nyc.yaml" {
		t.Errorf("Location = %q, want %q", cat.Location, "/data/nyc.yaml")
	}
	if cat.Description != "Example data sources" {
		t.Errorf("Description = %q", cat.Description)
	}
	if len(cat.Sources) != 2 {
		t.Fatalf("expected 2 sources, got %d", len(cat.Sources))
	}
	if cat.Sources["trips"].Driver != "csv" {
		t.Errorf("trips driver = %q, want csv", cat.Sources["trips"].Driver)
	}

	names := cat.SourceNames()
	if len(names) != 2 || names[0] != "trips" || names[1] != "zones" {
		t.Errorf("SourceNames = %v, want [trips zones]", names)
	}
}

// TestParseMetadataName tests that an explicit metadata name wins over the
// location-derived fallback
func TestParseMetadataName(t *testing.T) {
	doc := "metadata:\n  name: fleet\nsources: {}\n"
	cat, err := Parse([]byte(doc), "/tmp/whatever.yml")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cat.Name != "fleet" {
		t.Errorf("Name = %q, want fleet", cat.Name)
	}
}

// TestParseErrors tests malformed and non-catalog documents
func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"malformed yaml", "sources: [unterminated"},
		{"missing sources", "metadata:\n  version: 1\n"},
		{"scalar document", "just a string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc), "loc.yaml")
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			var openErr *OpenError
			if !errors.As(err, &openErr) {
				t.Errorf("expected *OpenError, got %T", err)
			}
		})
	}
}

// TestNameFromLocation tests the name fallback derivation
func TestNameFromLocation(t *testing.T) {
	tests := []struct {
		location string
		expected string
	}{
		{"/data/nyc.yaml", "nyc"},
		{"https://example.com/cats/fleet.yml", "fleet"},
		{"s3://bucket/key/cat.yaml", "cat"},
		{"noext", "noext"},
		{"", "catalog"},
		{"/", "catalog"},
	}

	for _, tt := range tests {
		if got := nameFromLocation(tt.location); got != tt.expected {
			t.Errorf("nameFromLocation(%q) = %q, want %q", tt.location, got, tt.expected)
		}
	}
}

// TestOpenLocalFile tests the full open path against a real file
func TestOpenLocalFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "local.yaml")
	if err := os.WriteFile(path, []byte(sampleCatalog), 0644); err != nil {
		t.Fatal(err)
	}

	cat, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if cat.Name != "local" {
		t.Errorf("Name = %q, want local", cat.Name)
	}

	// file:// prefix resolves to the same file
	cat2, err := Open("file://" + path)
	if err != nil {
		t.Fatalf("Open with file:// failed: %v", err)
	}
	if cat2.Name != cat.Name {
		t.Errorf("file:// open differs: %q vs %q", cat2.Name, cat.Name)
	}
}

// TestOpenFailures tests that construction failures surface as OpenError
func TestOpenFailures(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name     string
		location string
	}{
		{"nonexistent file", filepath.Join(dir, "nonexistent.yaml")},
		{"directory not file", dir},
		{"empty location", "   "},
		{"unsupported scheme", "ftp://example.com/cat.yaml"},
		{"s3 missing key", "s3://bucket-only"},
		{"azure without account", "az://container/cat.yaml"},
	}

	opener := NewOpener(Options{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := opener.Open(context.Background(), tt.location)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			var openErr *OpenError
			if !errors.As(err, &openErr) {
				t.Fatalf("expected *OpenError, got %T: %v", err, err)
			}
			if openErr.Unwrap() == nil {
				t.Error("OpenError should carry an underlying cause")
			}
		})
	}
}
