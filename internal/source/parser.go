// Package source discovers, decodes and encodes project documents.
package source

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/theirongolddev/costplan/internal/model"
)

// ErrUnsupportedFormat is returned for documents that are neither JSON
// nor YAML.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// ParseResult holds the output of parsing a single project document.
type ParseResult struct {
	File DiscoveredFile
	Data model.ProjectData
	Err  error
}

// ParseFile reads and decodes one project document.
func ParseFile(df DiscoveredFile) ParseResult {
	raw, err := os.ReadFile(df.Path)
	if err != nil {
		return ParseResult{File: df, Err: err}
	}
	data, err := Parse(raw, df.Format)
	if err != nil {
		return ParseResult{File: df, Err: fmt.Errorf("parsing %s: %w", df.Path, err)}
	}
	return ParseResult{File: df, Data: data}
}

// ReadFile decodes the document at path, inferring its format.
func ReadFile(path string) (model.ProjectData, error) {
	df, ok := NewDiscoveredFile(path)
	if !ok {
		return model.ProjectData{}, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
	pr := ParseFile(df)
	return pr.Data, pr.Err
}

// Parse decodes a project document. YAML is normalised to JSON first so
// both formats share the lenient JSON decoding of the model types.
func Parse(raw []byte, format Format) (model.ProjectData, error) {
	var data model.ProjectData
	switch format {
	case FormatJSON:
	case FormatYAML:
		converted, err := yamlToJSON(raw)
		if err != nil {
			return data, err
		}
		raw = converted
	default:
		return data, fmt.Errorf("%q: %w", format, ErrUnsupportedFormat)
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return data, errors.New("empty document")
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return data, fmt.Errorf("decoding project: %w", err)
	}
	return data, nil
}

// Encode serialises a project document in the given format.
func Encode(data model.ProjectData, format Format) ([]byte, error) {
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding project: %w", err)
	}
	switch format {
	case FormatJSON:
		return append(out, '\n'), nil
	case FormatYAML:
		var generic any
		if err := json.Unmarshal(out, &generic); err != nil {
			return nil, fmt.Errorf("encoding project: %w", err)
		}
		return yaml.Marshal(generic)
	}
	return nil, fmt.Errorf("%q: %w", format, ErrUnsupportedFormat)
}

func yamlToJSON(raw []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decoding yaml: %w", err)
	}
	if doc == nil {
		return nil, errors.New("empty document")
	}
	return json.Marshal(jsonCompatible(doc))
}

// jsonCompatible rewrites YAML-decoded values into shapes encoding/json
// accepts: non-string map keys become strings and timestamps become
// plain dates.
func jsonCompatible(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, inner := range t {
			t[k] = jsonCompatible(inner)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, inner := range t {
			out[fmt.Sprint(k)] = jsonCompatible(inner)
		}
		return out
	case []any:
		for i, inner := range t {
			t[i] = jsonCompatible(inner)
		}
		return t
	case time.Time:
		if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
			return t.Format("2006-01-02")
		}
		return t.Format(time.RFC3339)
	}
	return v
}
