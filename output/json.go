// Package output serializes analysis results to the JSON document format and
// validates emitted documents against the outline schema.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/docsift/docsift/analyze"
)

// outlineSchema is the JSON Schema every emitted document must satisfy:
// a title string plus an outline of {level, text, page} entries with level
// restricted to H1/H2/H3.
const outlineSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["title", "outline"],
  "properties": {
    "title": {"type": "string"},
    "outline": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["level", "text", "page"],
        "properties": {
          "level": {"type": "string", "enum": ["H1", "H2", "H3"]},
          "text": {"type": "string", "minLength": 1},
          "page": {"type": "integer", "minimum": 0}
        },
        "additionalProperties": false
      }
    }
  },
  "additionalProperties": false
}`

var compiledSchema = jsonschema.MustCompileString("outline.schema.json", outlineSchema)

// Marshal renders a result as indented JSON in the output document format.
func Marshal(result *analyze.Result) ([]byte, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return data, nil
}

// Validate checks a serialized result document against the outline schema.
func Validate(data []byte) error {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse output document: %w", err)
	}
	if err := compiledSchema.Validate(doc); err != nil {
		return fmt.Errorf("output document invalid: %w", err)
	}
	return nil
}

// WriteFile serializes a result, validates it, and writes it to path,
// creating parent directories as needed.
func WriteFile(path string, result *analyze.Result) error {
	data, err := Marshal(result)
	if err != nil {
		return err
	}
	if err := Validate(data); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// OutputPath maps an input document path to its JSON output path inside
// outDir: "reports/q3.pdf" becomes "<outDir>/q3.json".
func OutputPath(outDir, inputPath string) string {
	stem := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	return filepath.Join(outDir, stem+".json")
}
