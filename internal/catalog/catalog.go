// Package catalog implements opening Datapantry catalogs from local paths or
// remote locations. A catalog is a YAML document describing a named collection
// of data sources.
package catalog

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Source describes a single data source inside a catalog.
type Source struct {
	Driver      string                 `yaml:"driver"`
	Description string                 `yaml:"description,omitempty"`
	Args        map[string]interface{} `yaml:"args,omitempty"`
	Metadata    map[string]interface{} `yaml:"metadata,omitempty"`
}

// Catalog is an opened catalog handle.
type Catalog struct {
	// Name is the catalog name from metadata, falling back to the
	// location's base name without extension.
	Name string
	// Location is the resolved location string the catalog was opened from.
	Location string
	// Description is the optional catalog-level description.
	Description string
	// Sources maps source name to its description.
	Sources map[string]Source
}

// catalogFile is the on-disk YAML layout.
type catalogFile struct {
	Metadata struct {
		Name        string `yaml:"name"`
		Version     int    `yaml:"version"`
		Description string `yaml:"description"`
	} `yaml:"metadata"`
	Description string            `yaml:"description"`
	Sources     map[string]Source `yaml:"sources"`
}

// Parse decodes catalog YAML fetched from location.
func Parse(data []byte, location string) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, &OpenError{Location: location, Err: fmt.Errorf("invalid catalog YAML: %w", err)}
	}
	if file.Sources == nil {
		return nil, &OpenError{Location: location, Err: fmt.Errorf("not a catalog: missing 'sources' section")}
	}

	name := file.Metadata.Name
	if name == "" {
		name = nameFromLocation(location)
	}
	description := file.Description
	if description == "" {
		description = file.Metadata.Description
	}

	return &Catalog{
		Name:        name,
		Location:    location,
		Description: description,
		Sources:     file.Sources,
	}, nil
}

// SourceNames returns the source names sorted lexicographically for display.
func (c *Catalog) SourceNames() []string {
	names := make([]string, 0, len(c.Sources))
	for name := range c.Sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// nameFromLocation derives a catalog name from the last path segment of a
// location, with any extension stripped.
func nameFromLocation(location string) string {
	trimmed := strings.TrimRight(location, "/\\")
	base := path.Base(strings.ReplaceAll(trimmed, "\\", "/"))
	if ext := path.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	if base == "" || base == "." {
		return "catalog"
	}
	return base
}
