package source

import (
	"path/filepath"
	"strings"
)

// Format is the on-disk encoding of a project document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatOf infers a document format from its file extension.
func FormatOf(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, true
	case ".yaml", ".yml":
		return FormatYAML, true
	}
	return "", false
}

// DiscoveredFile is a project document found during directory scanning.
type DiscoveredFile struct {
	Path   string
	Name   string // file name without extension
	Format Format
}

// NewDiscoveredFile describes a single document path. ok is false when the
// extension is not a supported format.
func NewDiscoveredFile(path string) (df DiscoveredFile, ok bool) {
	format, ok := FormatOf(path)
	if !ok {
		return DiscoveredFile{}, false
	}
	base := filepath.Base(path)
	return DiscoveredFile{
		Path:   path,
		Name:   strings.TrimSuffix(base, filepath.Ext(base)),
		Format: format,
	}, true
}
