package schema

import (
	"reflect"
	"time"
)

// Conforms reports whether data matches the schema's shape: required
// fields present, kinds recursively consistent. It checks type/shape
// only, not length, range, or pattern constraints.
func Conforms(data any, c *Compiled) bool {
	if c == nil || c.Root == nil {
		return false
	}
	return ConformsField(data, c.Root, nil)
}

// ConformsIn is Conforms with a registry for resolving reference fields.
// Without a registry, a reference accepts any object value.
func ConformsIn(data any, c *Compiled, reg *Registry) bool {
	if c == nil || c.Root == nil {
		return false
	}
	return ConformsField(data, c.Root, reg)
}

// ConformsField checks one value against one field subtree.
func ConformsField(v any, f *Field, reg *Registry) bool {
	if f == nil {
		return false
	}
	switch f.Kind {
	case KindString, KindUUID, KindEmail, KindURL:
		_, ok := v.(string)
		return ok
	case KindDate:
		switch v.(type) {
		case string, time.Time:
			return true
		}
		return false
	case KindNumber:
		return isNumeric(v)
	case KindBoolean:
		_, ok := v.(bool)
		return ok
	case KindArray:
		items, ok := v.([]any)
		if !ok {
			return false
		}
		for _, item := range items {
			if !ConformsField(item, f.Items, reg) {
				return false
			}
		}
		return true
	case KindObject:
		obj, ok := v.(map[string]any)
		if !ok {
			return false
		}
		for _, p := range f.Properties {
			val, present := obj[p.Name]
			if !present {
				if p.Field.Required {
					return false
				}
				continue
			}
			if !ConformsField(val, p.Field, reg) {
				return false
			}
		}
		return true
	case KindEnum:
		for _, ev := range f.EnumValues {
			if reflect.DeepEqual(v, ev.Value) {
				return true
			}
		}
		// Numeric enum values survive a JSON round trip as float64.
		if n, ok := toFloat(v); ok {
			for _, ev := range f.EnumValues {
				if m, ok := toFloat(ev.Value); ok && n == m {
					return true
				}
			}
		}
		return false
	case KindUnion:
		for _, m := range f.UnionTypes {
			if ConformsField(v, m, reg) {
				return true
			}
		}
		return false
	case KindIntersection:
		for _, m := range f.IntersectionTypes {
			if !ConformsField(v, m, reg) {
				return false
			}
		}
		return len(f.IntersectionTypes) > 0
	case KindNullable:
		if v == nil {
			return true
		}
		return ConformsField(v, f.Inner, reg)
	case KindReference:
		if reg != nil {
			ref, err := reg.Lookup(f.ReferenceName)
			if err != nil {
				return false
			}
			return ConformsField(v, ref.Root, reg)
		}
		_, ok := v.(map[string]any)
		return ok
	default:
		return false
	}
}

func isNumeric(v any) bool {
	_, ok := toFloat(v)
	return ok
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
