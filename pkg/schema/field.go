// Package schema defines the normalized field tree that describes a data
// shape, the fluent builders that construct it, and utilities that
// inspect it (structural validation, conformance checks, descriptions).
//
// A Field is a tagged variant: Kind selects which of the kind-specific
// attributes are meaningful. The generation engine dispatches on Kind
// exhaustively; unknown kinds are rejected during validation.
package schema

import (
	"time"
)

// Kind identifies a field's type. The set is closed; validation rejects
// anything else before generation starts.
type Kind string

const (
	KindString       Kind = "string"
	KindNumber       Kind = "number"
	KindBoolean      Kind = "boolean"
	KindArray        Kind = "array"
	KindObject       Kind = "object"
	KindEnum         Kind = "enum"
	KindUUID         Kind = "uuid"
	KindEmail        Kind = "email"
	KindURL          Kind = "url"
	KindDate         Kind = "date"
	KindUnion        Kind = "union"
	KindIntersection Kind = "intersection"
	KindNullable     Kind = "nullable"
	KindReference    Kind = "reference"
)

// knownKinds is the closed set of valid kinds.
var knownKinds = map[Kind]bool{
	KindString: true, KindNumber: true, KindBoolean: true,
	KindArray: true, KindObject: true, KindEnum: true,
	KindUUID: true, KindEmail: true, KindURL: true, KindDate: true,
	KindUnion: true, KindIntersection: true, KindNullable: true,
	KindReference: true,
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool { return knownKinds[k] }

// Date format hints for KindDate fields.
const (
	DateFormatDate     = "date"
	DateFormatDateTime = "date-time"
)

// Property is one named field of an object. Order is significant: it is
// generation order, which is what lets later fields' templates and
// conditions see earlier siblings.
type Property struct {
	Name  string `json:"name" yaml:"name"`
	Field *Field `json:"field" yaml:"field"`
}

// EnumValue is a literal enum candidate with an optional weight. A zero
// weight counts as 1 during selection.
type EnumValue struct {
	Value  any     `json:"value" yaml:"value"`
	Weight float64 `json:"weight,omitempty" yaml:"weight,omitempty"`
}

// Condition decides whether an optional field is included, given the
// object data built so far at the current nesting level and the
// caller-supplied global context.
type Condition func(current, global map[string]any) bool

// GeneratorFunc overrides all default generation for a field. It receives
// the current-level data and global context and returns the field value.
type GeneratorFunc func(current, global map[string]any) any

// Field is one node of the compiled schema tree. Kind-specific attributes
// are pointers or slices left zero for other kinds. Function-valued
// attributes (Condition, Generator) are not serializable and are dropped
// by schema IO.
type Field struct {
	Kind     Kind `json:"kind" yaml:"kind"`
	Required bool `json:"required" yaml:"required"`

	// Min and Max bound string/array length or numeric value range.
	Min *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max *float64 `json:"max,omitempty" yaml:"max,omitempty"`

	// Items is the element type for KindArray.
	Items *Field `json:"items,omitempty" yaml:"items,omitempty"`

	// Properties are the ordered fields of a KindObject node.
	Properties []Property `json:"properties,omitempty" yaml:"properties,omitempty"`

	// EnumValues are the candidates for a KindEnum node.
	EnumValues []EnumValue `json:"enumValues,omitempty" yaml:"enumValues,omitempty"`

	// Pattern is a coarse string-shape hint (see pattern.go), not a full
	// regular expression.
	Pattern string `json:"pattern,omitempty" yaml:"pattern,omitempty"`

	// DateFormat is "date" or "date-time" for KindDate nodes.
	DateFormat string `json:"dateFormat,omitempty" yaml:"dateFormat,omitempty"`

	// UnionTypes / IntersectionTypes are the member types for KindUnion
	// and KindIntersection nodes.
	UnionTypes        []*Field `json:"unionTypes,omitempty" yaml:"unionTypes,omitempty"`
	IntersectionTypes []*Field `json:"intersectionTypes,omitempty" yaml:"intersectionTypes,omitempty"`

	// ReferenceName keys into a Registry for KindReference nodes.
	ReferenceName string `json:"referenceName,omitempty" yaml:"referenceName,omitempty"`

	// Inner is the wrapped type for KindNullable nodes.
	Inner *Field `json:"inner,omitempty" yaml:"inner,omitempty"`

	// Probability is the inclusion likelihood in [0,1] for optional
	// fields. Nil means include whenever the condition passes.
	Probability *float64 `json:"probability,omitempty" yaml:"probability,omitempty"`

	// Template, when set on a string field, is interpolated against the
	// current-level data and then the global context using {{key}} syntax.
	Template string `json:"template,omitempty" yaml:"template,omitempty"`

	// SimulateError replaces the generated value with an error marker on
	// half of all attempts. ErrorType names the marker.
	SimulateError bool   `json:"simulateError,omitempty" yaml:"simulateError,omitempty"`
	ErrorType     string `json:"errorType,omitempty" yaml:"errorType,omitempty"`

	// ConditionExpr is an expr-lang source string compiled into the
	// inclusion condition. It survives serialization, unlike Condition.
	ConditionExpr string `json:"conditionExpr,omitempty" yaml:"conditionExpr,omitempty"`

	// DateStart / DateEnd bound KindDate generation when set.
	DateStart time.Time `json:"dateStart,omitempty" yaml:"dateStart,omitempty"`
	DateEnd   time.Time `json:"dateEnd,omitempty" yaml:"dateEnd,omitempty"`

	// Condition and Generator are injected capabilities, never serialized.
	Condition Condition     `json:"-" yaml:"-"`
	Generator GeneratorFunc `json:"-" yaml:"-"`
}

// Property looks up an object field by name. Returns nil when absent.
func (f *Field) Property(name string) *Field {
	for _, p := range f.Properties {
		if p.Name == name {
			return p.Field
		}
	}
	return nil
}

// MinInt returns Min as an int with the given default.
func (f *Field) MinInt(def int) int {
	if f.Min == nil {
		return def
	}
	return int(*f.Min)
}

// MaxInt returns Max as an int with the given default.
func (f *Field) MaxInt(def int) int {
	if f.Max == nil {
		return def
	}
	return int(*f.Max)
}

// Clone returns a deep copy of the field tree. Function-valued attributes
// are shared, not copied.
func (f *Field) Clone() *Field {
	if f == nil {
		return nil
	}
	c := *f
	c.Items = f.Items.Clone()
	c.Inner = f.Inner.Clone()
	if f.Properties != nil {
		c.Properties = make([]Property, len(f.Properties))
		for i, p := range f.Properties {
			c.Properties[i] = Property{Name: p.Name, Field: p.Field.Clone()}
		}
	}
	if f.EnumValues != nil {
		c.EnumValues = append([]EnumValue(nil), f.EnumValues...)
	}
	if f.UnionTypes != nil {
		c.UnionTypes = make([]*Field, len(f.UnionTypes))
		for i, u := range f.UnionTypes {
			c.UnionTypes[i] = u.Clone()
		}
	}
	if f.IntersectionTypes != nil {
		c.IntersectionTypes = make([]*Field, len(f.IntersectionTypes))
		for i, m := range f.IntersectionTypes {
			c.IntersectionTypes[i] = m.Clone()
		}
	}
	if f.Min != nil {
		v := *f.Min
		c.Min = &v
	}
	if f.Max != nil {
		v := *f.Max
		c.Max = &v
	}
	if f.Probability != nil {
		v := *f.Probability
		c.Probability = &v
	}
	return &c
}

// Compiled is a named, versioned object schema: the root handed to the
// generation engine. It is created once by a builder and treated as
// immutable afterwards; generation never mutates it.
type Compiled struct {
	Name    string `json:"name" yaml:"name"`
	Version string `json:"version,omitempty" yaml:"version,omitempty"`
	Root    *Field `json:"schema" yaml:"schema"`
}
