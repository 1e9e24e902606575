package schema

import (
	"fmt"
	"strings"
)

// Describe renders a compiled schema as a TypeScript-style interface
// description for documentation. A field is marked optional when it is
// not required or has an inclusion probability below 1.
func Describe(c *Compiled) string {
	if c == nil || c.Root == nil {
		return ""
	}
	name := c.Name
	if name == "" {
		name = "Schema"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "interface %s {\n", sanitizeIdent(name))
	writeProperties(&sb, c.Root, 1)
	sb.WriteString("}\n")
	return sb.String()
}

func writeProperties(sb *strings.Builder, f *Field, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, p := range f.Properties {
		marker := ""
		if isOptional(p.Field) {
			marker = "?"
		}
		fmt.Fprintf(sb, "%s%s%s: %s;\n", indent, p.Name, marker, typeString(p.Field, depth))
	}
}

func isOptional(f *Field) bool {
	if !f.Required {
		return true
	}
	return f.Probability != nil && *f.Probability < 1
}

func typeString(f *Field, depth int) string {
	if f == nil {
		return "unknown"
	}
	switch f.Kind {
	case KindString, KindUUID, KindEmail, KindURL, KindDate:
		return "string"
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindArray:
		item := typeString(f.Items, depth)
		if strings.ContainsAny(item, " |{") {
			return "(" + item + ")[]"
		}
		return item + "[]"
	case KindObject:
		var sb strings.Builder
		sb.WriteString("{\n")
		writeProperties(&sb, f, depth+1)
		sb.WriteString(strings.Repeat("  ", depth) + "}")
		return sb.String()
	case KindEnum:
		parts := make([]string, len(f.EnumValues))
		for i, ev := range f.EnumValues {
			parts[i] = literalString(ev.Value)
		}
		return strings.Join(parts, " | ")
	case KindUnion:
		parts := make([]string, len(f.UnionTypes))
		for i, m := range f.UnionTypes {
			parts[i] = typeString(m, depth)
		}
		return strings.Join(parts, " | ")
	case KindIntersection:
		parts := make([]string, len(f.IntersectionTypes))
		for i, m := range f.IntersectionTypes {
			parts[i] = typeString(m, depth)
		}
		return strings.Join(parts, " & ")
	case KindNullable:
		return typeString(f.Inner, depth) + " | null"
	case KindReference:
		return sanitizeIdent(f.ReferenceName)
	default:
		return "unknown"
	}
}

func literalString(v any) string {
	if s, ok := v.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprintf("%v", v)
}

func sanitizeIdent(name string) string {
	var sb strings.Builder
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
			sb.WriteRune(r)
		case r >= '0' && r <= '9' && i > 0:
			sb.WriteRune(r)
		}
	}
	if sb.Len() == 0 {
		return "Schema"
	}
	return sb.String()
}
