package schema

import (
	"strings"
	"testing"
)

func TestDescribe(t *testing.T) {
	c := Object("User").
		Field("id", UUID()).
		Field("age", Number()).
		Field("active", Bool()).
		Field("nickname", String().Optional()).
		Field("plan", Enum("free", "pro")).
		Field("tags", Array(String())).
		MustBuild()

	out := Describe(c)

	for _, want := range []string{
		"interface User {",
		"id: string;",
		"age: number;",
		"active: boolean;",
		"nickname?: string;",
		`plan: "free" | "pro";`,
		"tags: string[];",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Describe() missing %q in:\n%s", want, out)
		}
	}
}

func TestDescribeNested(t *testing.T) {
	c := Object("Order").
		Field("customer", Object("").
			Field("email", Email())).
		Field("maybe", Nullable(Number())).
		Field("either", Union(String(), Number())).
		Field("ref", Ref("Address")).
		MustBuild()

	out := Describe(c)
	for _, want := range []string{
		"customer: {",
		"email: string;",
		"maybe: number | null;",
		"either: string | number;",
		"ref: Address;",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Describe() missing %q in:\n%s", want, out)
		}
	}
}

func TestDescribeProbabilityMarksOptional(t *testing.T) {
	c := Object("T").
		Field("maybe", String().Probability(0.3)).
		MustBuild()
	if !strings.Contains(Describe(c), "maybe?: string;") {
		t.Errorf("field with probability < 1 not marked optional:\n%s", Describe(c))
	}
}

func TestDescribeSanitizesName(t *testing.T) {
	c := Object("user-profile v2").Field("x", String()).MustBuild()
	out := Describe(c)
	if !strings.HasPrefix(out, "interface userprofilev2 {") {
		t.Errorf("Describe() = %q, want sanitized identifier", out)
	}
}

func TestDescribeNil(t *testing.T) {
	if Describe(nil) != "" {
		t.Error("Describe(nil) should be empty")
	}
}
