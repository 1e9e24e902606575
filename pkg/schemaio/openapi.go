package schemaio

import (
	"encoding/json"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/nick-vanduijn/synthex/pkg/schema"
)

// exportOpenAPI renders the schema as an OpenAPI 3 document fragment:
// an info block plus a components/schemas entry. Export only; synthex
// schemas carry generation directives OpenAPI cannot express, so there
// is no importer.
func exportOpenAPI(c *schema.Compiled) ([]byte, error) {
	version := c.Version
	if version == "" {
		version = "1.0.0"
	}
	doc := map[string]any{
		"openapi": "3.0.3",
		"info": map[string]any{
			"title":   c.Name,
			"version": version,
		},
		"components": map[string]any{
			"schemas": openapi3.Schemas{
				c.Name: &openapi3.SchemaRef{Value: fieldToOpenAPI(c.Root)},
			},
		},
	}
	return json.MarshalIndent(doc, "", "  ")
}

func typed(name string) *openapi3.Types {
	t := openapi3.Types{name}
	return &t
}

func fieldToOpenAPI(f *schema.Field) *openapi3.Schema {
	if f == nil {
		return &openapi3.Schema{}
	}
	switch f.Kind {
	case schema.KindString:
		s := &openapi3.Schema{Type: typed("string")}
		if f.Min != nil {
			s.MinLength = uint64(*f.Min)
		}
		if f.Max != nil {
			n := uint64(*f.Max)
			s.MaxLength = &n
		}
		if f.Pattern != "" {
			s.Pattern = f.Pattern
		}
		return s
	case schema.KindUUID:
		return &openapi3.Schema{Type: typed("string"), Format: "uuid"}
	case schema.KindEmail:
		return &openapi3.Schema{Type: typed("string"), Format: "email"}
	case schema.KindURL:
		return &openapi3.Schema{Type: typed("string"), Format: "uri"}
	case schema.KindDate:
		format := "date-time"
		if f.DateFormat == schema.DateFormatDate {
			format = "date"
		}
		return &openapi3.Schema{Type: typed("string"), Format: format}
	case schema.KindNumber:
		s := &openapi3.Schema{Type: typed("number")}
		s.Min = f.Min
		s.Max = f.Max
		return s
	case schema.KindBoolean:
		return &openapi3.Schema{Type: typed("boolean")}
	case schema.KindArray:
		s := &openapi3.Schema{
			Type:  typed("array"),
			Items: &openapi3.SchemaRef{Value: fieldToOpenAPI(f.Items)},
		}
		if f.Min != nil {
			s.MinItems = uint64(*f.Min)
		}
		if f.Max != nil {
			n := uint64(*f.Max)
			s.MaxItems = &n
		}
		return s
	case schema.KindObject:
		s := &openapi3.Schema{
			Type:       typed("object"),
			Properties: openapi3.Schemas{},
		}
		for _, p := range f.Properties {
			s.Properties[p.Name] = &openapi3.SchemaRef{Value: fieldToOpenAPI(p.Field)}
			if p.Field.Required {
				s.Required = append(s.Required, p.Name)
			}
		}
		return s
	case schema.KindEnum:
		s := &openapi3.Schema{}
		for _, ev := range f.EnumValues {
			s.Enum = append(s.Enum, ev.Value)
		}
		return s
	case schema.KindUnion:
		s := &openapi3.Schema{}
		for _, m := range f.UnionTypes {
			s.OneOf = append(s.OneOf, &openapi3.SchemaRef{Value: fieldToOpenAPI(m)})
		}
		return s
	case schema.KindIntersection:
		s := &openapi3.Schema{}
		for _, m := range f.IntersectionTypes {
			s.AllOf = append(s.AllOf, &openapi3.SchemaRef{Value: fieldToOpenAPI(m)})
		}
		return s
	case schema.KindNullable:
		s := fieldToOpenAPI(f.Inner)
		s.Nullable = true
		return s
	case schema.KindReference:
		return &openapi3.Schema{Type: typed("object"), Description: "reference to " + f.ReferenceName}
	default:
		return &openapi3.Schema{}
	}
}
