package schema

import (
	"testing"

	synthex "github.com/nick-vanduijn/synthex"
)

func TestObjectBuild(t *testing.T) {
	c, err := Object("User").
		Version("v2").
		Field("id", UUID()).
		Field("name", String().Min(3).Max(20)).
		Field("age", Number().Range(18, 99)).
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if c.Name != "User" || c.Version != "v2" {
		t.Errorf("Name/Version = %q/%q, want User/v2", c.Name, c.Version)
	}
	if got := len(c.Root.Properties); got != 3 {
		t.Fatalf("property count = %d, want 3", got)
	}
	wantOrder := []string{"id", "name", "age"}
	for i, p := range c.Root.Properties {
		if p.Name != wantOrder[i] {
			t.Errorf("property %d = %q, want %q", i, p.Name, wantOrder[i])
		}
	}
	name := c.Root.Properties[1].Field
	if name.Kind != KindString || *name.Min != 3 || *name.Max != 20 {
		t.Errorf("name field = %+v, want string with bounds [3,20]", name)
	}
}

func TestFieldRedeclareReplacesInPlace(t *testing.T) {
	c := Object("T").
		Field("a", String()).
		Field("b", Number()).
		Field("a", Bool()).
		MustBuild()
	if got := len(c.Root.Properties); got != 2 {
		t.Fatalf("property count = %d, want 2", got)
	}
	if c.Root.Properties[0].Name != "a" || c.Root.Properties[0].Field.Kind != KindBoolean {
		t.Errorf("redeclared field = %s %s, want a boolean in position 0",
			c.Root.Properties[0].Name, c.Root.Properties[0].Field.Kind)
	}
}

func TestBuilderDefaults(t *testing.T) {
	f, err := String().Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if !f.Required {
		t.Error("fields should start required")
	}
	f, _ = String().Optional().Build()
	if f.Required {
		t.Error("Optional() did not clear Required")
	}
	f, _ = String().Optional().Required().Build()
	if !f.Required {
		t.Error("Required() did not restore Required")
	}
}

func TestLength(t *testing.T) {
	f, _ := String().Length(8).Build()
	if f.Min == nil || f.Max == nil || *f.Min != 8 || *f.Max != 8 {
		t.Errorf("Length(8) bounds = %v/%v, want 8/8", f.Min, f.Max)
	}
}

func TestProbabilityOutOfRange(t *testing.T) {
	tests := []struct {
		name string
		p    float64
		ok   bool
	}{
		{"zero", 0, true},
		{"one", 1, true},
		{"half", 0.5, true},
		{"negative", -0.1, false},
		{"above one", 1.5, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Object("T").Field("f", String().Optional().Probability(tt.p)).Build()
			if (err == nil) != tt.ok {
				t.Fatalf("Probability(%v) error = %v, want ok=%v", tt.p, err, tt.ok)
			}
			if err != nil && !synthex.IsCode(err, synthex.CodeInvalidProbability) {
				t.Errorf("error code = %v, want INVALID_PROBABILITY", synthex.CodeOf(err))
			}
		})
	}
}

func TestEnumEmpty(t *testing.T) {
	_, err := Object("T").Field("e", Enum()).Build()
	if !synthex.IsCode(err, synthex.CodeMissingEnumValues) {
		t.Errorf("Enum() with no values error = %v, want MISSING_ENUM_VALUES", err)
	}
	_, err = Object("T").Field("e", WeightedEnum()).Build()
	if !synthex.IsCode(err, synthex.CodeMissingEnumValues) {
		t.Errorf("WeightedEnum() with no values error = %v, want MISSING_ENUM_VALUES", err)
	}
}

func TestNestedObjects(t *testing.T) {
	c := Object("Order").
		Field("customer", Object("").
			Field("id", UUID()).
			Field("email", Email())).
		Field("items", Array(Object("").
			Field("sku", String()).
			Field("qty", Number().Range(1, 10)))).
		MustBuild()

	customer := c.Root.Properties[0].Field
	if customer.Kind != KindObject || len(customer.Properties) != 2 {
		t.Fatalf("customer = %+v, want object with 2 properties", customer)
	}
	items := c.Root.Properties[1].Field
	if items.Kind != KindArray || items.Items.Kind != KindObject {
		t.Fatalf("items = %+v, want array of objects", items)
	}
}

func TestExtend(t *testing.T) {
	base := Object("Base").
		Field("id", UUID()).
		Field("name", String())
	extra := Object("Extra").
		Field("name", Number()).
		Field("tag", String())

	merged := base.Extend(extra).MustBuild()

	if got := len(merged.Root.Properties); got != 3 {
		t.Fatalf("merged property count = %d, want 3", got)
	}
	// name keeps its position but takes extra's type
	if p := merged.Root.Properties[1]; p.Name != "name" || p.Field.Kind != KindNumber {
		t.Errorf("merged[1] = %s %s, want name number", p.Name, p.Field.Kind)
	}

	// inputs stay untouched
	baseC := base.MustBuild()
	if baseC.Root.Properties[1].Field.Kind != KindString {
		t.Error("Extend mutated the receiver")
	}
	extraC := extra.MustBuild()
	if len(extraC.Root.Properties) != 2 {
		t.Error("Extend mutated its argument")
	}
}

func TestPickOmit(t *testing.T) {
	base := Object("Base").
		Field("a", String()).
		Field("b", Number()).
		Field("c", Bool())

	picked := base.Pick("c", "a").MustBuild()
	if got := len(picked.Root.Properties); got != 2 {
		t.Fatalf("Pick property count = %d, want 2", got)
	}
	// declaration order survives Pick regardless of argument order
	if picked.Root.Properties[0].Name != "a" || picked.Root.Properties[1].Name != "c" {
		t.Errorf("Pick order = %s, %s, want a, c",
			picked.Root.Properties[0].Name, picked.Root.Properties[1].Name)
	}

	omitted := base.Omit("b").MustBuild()
	if got := len(omitted.Root.Properties); got != 2 {
		t.Fatalf("Omit property count = %d, want 2", got)
	}
	for _, p := range omitted.Root.Properties {
		if p.Name == "b" {
			t.Error("Omit kept the omitted field")
		}
	}

	// derived builders are independent of the base
	base.Field("d", String())
	if len(picked.Root.Properties) != 2 {
		t.Error("mutating base leaked into picked schema")
	}
}

func TestUnionIntersectionNullable(t *testing.T) {
	c := Object("T").
		Field("u", Union(String(), Number())).
		Field("i", Intersection(
			Object("").Field("a", String()),
			Object("").Field("b", Number()))).
		Field("n", Nullable(String())).
		MustBuild()

	u := c.Root.Properties[0].Field
	if u.Kind != KindUnion || len(u.UnionTypes) != 2 {
		t.Errorf("union = %+v", u)
	}
	i := c.Root.Properties[1].Field
	if i.Kind != KindIntersection || len(i.IntersectionTypes) != 2 {
		t.Errorf("intersection = %+v", i)
	}
	n := c.Root.Properties[2].Field
	if n.Kind != KindNullable || n.Inner == nil || n.Inner.Kind != KindString {
		t.Errorf("nullable = %+v", n)
	}
}

func TestRef(t *testing.T) {
	f, _ := Ref("User").Build()
	if f.Kind != KindReference || f.ReferenceName != "User" {
		t.Errorf("Ref = %+v", f)
	}
}

func TestBuildIsolation(t *testing.T) {
	b := Object("T").Field("a", String())
	first := b.MustBuild()
	first.Root.Properties[0].Field.Kind = KindNumber
	second := b.MustBuild()
	if second.Root.Properties[0].Field.Kind != KindString {
		t.Error("mutating one Build result affected a later Build")
	}
}

func TestMustBuildPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustBuild did not panic on builder error")
		}
	}()
	Object("T").Field("e", Enum()).MustBuild()
}
