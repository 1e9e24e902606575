package schema

import (
	synthex "github.com/nick-vanduijn/synthex"
)

// Validate checks the structural invariants of a compiled schema: the
// root must be a non-empty object, arrays carry items, objects carry
// properties, enums carry values, and min <= max wherever both are set.
// It runs once at the start of generation, before any values are
// produced; a violation is a structural error, never a partial output.
func Validate(c *Compiled) error {
	if c == nil || c.Root == nil {
		return synthex.NewError(synthex.CodeInvalidSchema, "schema is nil")
	}
	if c.Root.Kind != KindObject {
		return synthex.SchemaError(synthex.CodeInvalidSchema, c.Name, "root must be an object, got %s", c.Root.Kind)
	}
	return validateField(c.Name, "", c.Root)
}

// ValidateField checks one field subtree. Exposed for callers that embed
// fields outside a Compiled root (e.g. the streaming path revalidates the
// root it was handed).
func ValidateField(schemaName, path string, f *Field) error {
	return validateField(schemaName, path, f)
}

func validateField(schemaName, path string, f *Field) error {
	if f == nil {
		return synthex.SchemaError(synthex.CodeInvalidSchema, schemaName, "nil field at %s", pathOrRoot(path))
	}
	if !f.Kind.Valid() {
		return synthex.SchemaError(synthex.CodeInvalidFieldType, schemaName, "unknown field kind %q at %s", f.Kind, pathOrRoot(path))
	}
	if f.Min != nil && f.Max != nil && *f.Min > *f.Max {
		return synthex.SchemaError(synthex.CodeInvalidMinMax, schemaName, "min %v > max %v at %s", *f.Min, *f.Max, pathOrRoot(path))
	}
	if f.Probability != nil && (*f.Probability < 0 || *f.Probability > 1) {
		return synthex.SchemaError(synthex.CodeInvalidProbability, schemaName, "probability %v out of range at %s", *f.Probability, pathOrRoot(path))
	}

	switch f.Kind {
	case KindArray:
		if f.Items == nil {
			return synthex.SchemaError(synthex.CodeMissingItems, schemaName, "array without items at %s", pathOrRoot(path))
		}
		return validateField(schemaName, path+"[]", f.Items)
	case KindObject:
		if len(f.Properties) == 0 {
			return synthex.SchemaError(synthex.CodeMissingProperties, schemaName, "object without properties at %s", pathOrRoot(path))
		}
		for _, p := range f.Properties {
			if err := validateField(schemaName, joinPath(path, p.Name), p.Field); err != nil {
				return err
			}
		}
	case KindEnum:
		if len(f.EnumValues) == 0 {
			return synthex.SchemaError(synthex.CodeMissingEnumValues, schemaName, "enum without values at %s", pathOrRoot(path))
		}
	case KindUnion:
		if len(f.UnionTypes) == 0 {
			return synthex.SchemaError(synthex.CodeInvalidSchema, schemaName, "union without member types at %s", pathOrRoot(path))
		}
		for _, m := range f.UnionTypes {
			if err := validateField(schemaName, joinPath(path, "|"), m); err != nil {
				return err
			}
		}
	case KindIntersection:
		if len(f.IntersectionTypes) == 0 {
			return synthex.SchemaError(synthex.CodeInvalidSchema, schemaName, "intersection without member types at %s", pathOrRoot(path))
		}
		for _, m := range f.IntersectionTypes {
			if err := validateField(schemaName, joinPath(path, "&"), m); err != nil {
				return err
			}
		}
	case KindNullable:
		if f.Inner == nil {
			return synthex.SchemaError(synthex.CodeInvalidSchema, schemaName, "nullable without inner type at %s", pathOrRoot(path))
		}
		return validateField(schemaName, path+"?", f.Inner)
	case KindReference:
		if f.ReferenceName == "" {
			return synthex.SchemaError(synthex.CodeInvalidSchema, schemaName, "reference without name at %s", pathOrRoot(path))
		}
	}
	return nil
}

func joinPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

func pathOrRoot(path string) string {
	if path == "" {
		return "root"
	}
	return path
}
