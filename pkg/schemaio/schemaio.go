// Package schemaio serializes compiled schemas to and from textual
// formats. JSON and YAML round-trip every serializable field attribute;
// function-valued attributes (Go conditions, custom generators) are not
// serializable and are silently dropped. Expression conditions set via
// WhenExpr survive, which is the supported way to serialize conditional
// schemas. OpenAPI is export-only.
package schemaio

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	synthex "github.com/nick-vanduijn/synthex"
	"github.com/nick-vanduijn/synthex/pkg/schema"
)

// Format names a serialization format.
type Format string

const (
	FormatUnknown Format = ""
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatOpenAPI Format = "openapi"
)

// ParseFormat parses a format name.
func ParseFormat(s string) Format {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON
	case "yaml", "yml":
		return FormatYAML
	case "openapi":
		return FormatOpenAPI
	default:
		return FormatUnknown
	}
}

// DetectFormat guesses the format from a file name extension.
func DetectFormat(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatUnknown
	}
}

// Export serializes a compiled schema. The schema must be named so that
// imports and references can identify it.
func Export(c *schema.Compiled, format Format) ([]byte, error) {
	if c == nil || c.Name == "" {
		return nil, synthex.NewError(synthex.CodeSchemaNoName, "cannot export schema without a name")
	}
	switch format {
	case FormatJSON:
		return json.MarshalIndent(c, "", "  ")
	case FormatYAML:
		return yaml.Marshal(c)
	case FormatOpenAPI:
		return exportOpenAPI(c)
	default:
		return nil, synthex.SchemaError(synthex.CodeInvalidSchema, c.Name, "unknown export format %q", format)
	}
}

// Import deserializes a compiled schema and checks its structure, so a
// schema that imports cleanly is ready to generate.
func Import(data []byte, format Format) (*schema.Compiled, error) {
	var c schema.Compiled
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, synthex.WrapError(synthex.CodeInvalidSchema, "", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &c); err != nil {
			return nil, synthex.WrapError(synthex.CodeInvalidSchema, "", err)
		}
	default:
		return nil, synthex.NewError(synthex.CodeInvalidSchema, "unknown import format %q", format)
	}
	if c.Name == "" {
		return nil, synthex.NewError(synthex.CodeSchemaNoName, "imported schema has no name")
	}
	if err := schema.Validate(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// ImportFile is Import with format detection from the file name.
func ImportFile(filename string, data []byte) (*schema.Compiled, error) {
	format := DetectFormat(filename)
	if format == FormatUnknown {
		return nil, synthex.NewError(synthex.CodeInvalidSchema, "cannot detect schema format of %q", filename)
	}
	return Import(data, format)
}
