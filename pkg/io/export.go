package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/matzehuels/ecoscout/pkg/pipeline"
)

// Format names a serialization format for results.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath infers the format from a file extension. Unknown
// extensions default to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// WriteJSON encodes a result as indented JSON and writes it to w.
// The output can be re-imported with [ReadJSON].
func WriteJSON(res *pipeline.Result, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteYAML encodes a result as YAML and writes it to w.
func WriteYAML(res *pipeline.Result, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return enc.Close()
}

// Write encodes a result in the given format.
func Write(res *pipeline.Result, w io.Writer, format Format) error {
	switch format {
	case FormatJSON, "":
		return WriteJSON(res, w)
	case FormatYAML:
		return WriteYAML(res, w)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// Export writes a result to path, choosing the format from its extension.
func Export(res *pipeline.Result, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(res, f, FormatFromPath(path))
}
