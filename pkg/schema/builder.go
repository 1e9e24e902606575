package schema

import (
	"time"

	synthex "github.com/nick-vanduijn/synthex"
)

// FieldBuilder is anything that can produce a Field: the leaf Builder and
// ObjectBuilder both qualify, so object builders nest directly.
type FieldBuilder interface {
	buildField() (*Field, error)
}

// Builder constructs a single Field through chainable modifiers. Methods
// mutate the node under construction and return the builder; buildField
// freezes it. Shape errors are deferred to generation-time validation,
// except probability range and empty enums, which are builder-local
// invariants and recorded immediately.
type Builder struct {
	field Field
	err   error
}

func newBuilder(kind Kind) *Builder {
	return &Builder{field: Field{Kind: kind, Required: true}}
}

// String declares a string field.
func String() *Builder { return newBuilder(KindString) }

// Number declares a numeric field. Bounds default to [0, 1000] at
// generation time.
func Number() *Builder { return newBuilder(KindNumber) }

// Bool declares a boolean field.
func Bool() *Builder { return newBuilder(KindBoolean) }

// UUID declares an RFC 4122 v4 UUID field.
func UUID() *Builder { return newBuilder(KindUUID) }

// Email declares an email address field.
func Email() *Builder { return newBuilder(KindEmail) }

// URL declares a URL field.
func URL() *Builder { return newBuilder(KindURL) }

// Date declares a date field. Format defaults to date-time.
func Date() *Builder {
	b := newBuilder(KindDate)
	b.field.DateFormat = DateFormatDateTime
	return b
}

// Array declares an array field with the given element type.
func Array(items FieldBuilder) *Builder {
	b := newBuilder(KindArray)
	b.field.Items, b.err = items.buildField()
	return b
}

// Enum declares an enum field over the given literal values. Declaring an
// enum with no values is a builder-local invariant violation and fails
// immediately.
func Enum(values ...any) *Builder {
	b := newBuilder(KindEnum)
	if len(values) == 0 {
		b.err = synthex.NewError(synthex.CodeMissingEnumValues, "enum declared with no values")
		return b
	}
	b.field.EnumValues = make([]EnumValue, len(values))
	for i, v := range values {
		b.field.EnumValues[i] = EnumValue{Value: v}
	}
	return b
}

// WeightedEnum declares an enum field with per-value weights.
func WeightedEnum(values ...EnumValue) *Builder {
	b := newBuilder(KindEnum)
	if len(values) == 0 {
		b.err = synthex.NewError(synthex.CodeMissingEnumValues, "enum declared with no values")
		return b
	}
	b.field.EnumValues = append([]EnumValue(nil), values...)
	return b
}

// Union declares a field generated from one of the member types, chosen
// uniformly.
func Union(members ...FieldBuilder) *Builder {
	b := newBuilder(KindUnion)
	b.field.UnionTypes, b.err = buildMembers(members)
	return b
}

// Intersection declares a field generated by merging every member type
// left to right.
func Intersection(members ...FieldBuilder) *Builder {
	b := newBuilder(KindIntersection)
	b.field.IntersectionTypes, b.err = buildMembers(members)
	return b
}

func buildMembers(members []FieldBuilder) ([]*Field, error) {
	out := make([]*Field, len(members))
	for i, m := range members {
		f, err := m.buildField()
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

// Nullable declares a field that is null half the time and the inner type
// otherwise.
func Nullable(inner FieldBuilder) *Builder {
	b := newBuilder(KindNullable)
	b.field.Inner, b.err = inner.buildField()
	return b
}

// Ref declares a field resolved against a Registry by schema name at
// generation time.
func Ref(name string) *Builder {
	b := newBuilder(KindReference)
	b.field.ReferenceName = name
	return b
}

// Optional marks the field as omittable.
func (b *Builder) Optional() *Builder {
	b.field.Required = false
	return b
}

// Required marks the field as always present. Fields start required, so
// this only matters after Optional.
func (b *Builder) Required() *Builder {
	b.field.Required = true
	return b
}

// Min sets the lower bound (length for string/array, value for number).
func (b *Builder) Min(v float64) *Builder {
	b.field.Min = &v
	return b
}

// Max sets the upper bound.
func (b *Builder) Max(v float64) *Builder {
	b.field.Max = &v
	return b
}

// Length pins string length or array count to exactly n.
func (b *Builder) Length(n int) *Builder {
	v := float64(n)
	b.field.Min = &v
	max := v
	b.field.Max = &max
	return b
}

// Range sets both bounds.
func (b *Builder) Range(min, max float64) *Builder {
	b.field.Min = &min
	b.field.Max = &max
	return b
}

// Pattern sets a coarse string-shape hint. Template and Pattern are
// mutually ranked: a template wins over a pattern.
func (b *Builder) Pattern(p string) *Builder {
	b.field.Pattern = p
	return b
}

// Format sets the date format ("date" or "date-time").
func (b *Builder) Format(f string) *Builder {
	b.field.DateFormat = f
	return b
}

// Between bounds date generation.
func (b *Builder) Between(start, end time.Time) *Builder {
	b.field.DateStart = start
	b.field.DateEnd = end
	return b
}

// Probability sets the inclusion likelihood for an optional field. Values
// outside [0,1] are builder-local invariant violations and fail
// immediately.
func (b *Builder) Probability(p float64) *Builder {
	if p < 0 || p > 1 {
		b.err = synthex.NewError(synthex.CodeInvalidProbability, "probability %v out of range [0,1]", p)
		return b
	}
	b.field.Probability = &p
	return b
}

// When sets a Go predicate controlling inclusion of an optional field.
func (b *Builder) When(cond Condition) *Builder {
	b.field.Condition = cond
	return b
}

// WhenExpr sets an expr-lang inclusion condition evaluated against
// {current, global}. Unlike When, it survives serialization.
func (b *Builder) WhenExpr(src string) *Builder {
	b.field.ConditionExpr = src
	return b
}

// Template sets a {{key}} interpolation template for string generation.
func (b *Builder) Template(t string) *Builder {
	b.field.Template = t
	return b
}

// SimulateError makes half of all generation attempts for this field
// produce an error marker named errType instead of a value.
func (b *Builder) SimulateError(errType string) *Builder {
	b.field.SimulateError = true
	b.field.ErrorType = errType
	return b
}

// Generate installs a custom generator that overrides all default logic
// for this field. Not serializable.
func (b *Builder) Generate(fn GeneratorFunc) *Builder {
	b.field.Generator = fn
	return b
}

func (b *Builder) buildField() (*Field, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.field.Clone(), nil
}

// Build freezes and returns the field.
func (b *Builder) Build() (*Field, error) {
	return b.buildField()
}

// ObjectBuilder constructs an object schema with ordered properties.
// Declaration order is generation order.
type ObjectBuilder struct {
	name    string
	version string
	props   []Property
	err     error
}

// Object starts building a named object schema.
func Object(name string) *ObjectBuilder {
	return &ObjectBuilder{name: name}
}

// Version tags the schema with a version string.
func (b *ObjectBuilder) Version(v string) *ObjectBuilder {
	b.version = v
	return b
}

// Field appends a property. Declaring a name twice replaces the earlier
// definition in place, keeping its position.
func (b *ObjectBuilder) Field(name string, fb FieldBuilder) *ObjectBuilder {
	if b.err != nil {
		return b
	}
	f, err := fb.buildField()
	if err != nil {
		b.err = err
		return b
	}
	for i, p := range b.props {
		if p.Name == name {
			b.props[i].Field = f
			return b
		}
	}
	b.props = append(b.props, Property{Name: name, Field: f})
	return b
}

// Extend returns a new independent builder containing this builder's
// fields followed by other's; same-named fields from other override in
// place. Neither input builder is mutated.
func (b *ObjectBuilder) Extend(other *ObjectBuilder) *ObjectBuilder {
	out := b.cloneBuilder()
	if out.err == nil && other.err != nil {
		out.err = other.err
	}
	for _, p := range other.props {
		replaced := false
		for i, existing := range out.props {
			if existing.Name == p.Name {
				out.props[i].Field = p.Field.Clone()
				replaced = true
				break
			}
		}
		if !replaced {
			out.props = append(out.props, Property{Name: p.Name, Field: p.Field.Clone()})
		}
	}
	return out
}

// Pick returns a new independent builder keeping only the named fields,
// in their original declaration order.
func (b *ObjectBuilder) Pick(names ...string) *ObjectBuilder {
	keep := make(map[string]bool, len(names))
	for _, n := range names {
		keep[n] = true
	}
	out := &ObjectBuilder{name: b.name, version: b.version, err: b.err}
	for _, p := range b.props {
		if keep[p.Name] {
			out.props = append(out.props, Property{Name: p.Name, Field: p.Field.Clone()})
		}
	}
	return out
}

// Omit returns a new independent builder without the named fields.
func (b *ObjectBuilder) Omit(names ...string) *ObjectBuilder {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}
	out := &ObjectBuilder{name: b.name, version: b.version, err: b.err}
	for _, p := range b.props {
		if !drop[p.Name] {
			out.props = append(out.props, Property{Name: p.Name, Field: p.Field.Clone()})
		}
	}
	return out
}

func (b *ObjectBuilder) cloneBuilder() *ObjectBuilder {
	out := &ObjectBuilder{name: b.name, version: b.version, err: b.err}
	out.props = make([]Property, len(b.props))
	for i, p := range b.props {
		out.props[i] = Property{Name: p.Name, Field: p.Field.Clone()}
	}
	return out
}

func (b *ObjectBuilder) buildField() (*Field, error) {
	if b.err != nil {
		return nil, b.err
	}
	f := &Field{Kind: KindObject, Required: true}
	f.Properties = make([]Property, len(b.props))
	for i, p := range b.props {
		f.Properties[i] = Property{Name: p.Name, Field: p.Field.Clone()}
	}
	return f, nil
}

// Build freezes the builder into a Compiled schema. Emptiness and other
// shape problems surface at generation time, not here.
func (b *ObjectBuilder) Build() (*Compiled, error) {
	root, err := b.buildField()
	if err != nil {
		return nil, err
	}
	return &Compiled{Name: b.name, Version: b.version, Root: root}, nil
}

// MustBuild is Build for declarations known to be well formed; it panics
// on builder errors.
func (b *ObjectBuilder) MustBuild() *Compiled {
	c, err := b.Build()
	if err != nil {
		panic(err)
	}
	return c
}
