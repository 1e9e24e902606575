package schema

import (
	"fmt"
	"sync"
	"testing"

	synthex "github.com/nick-vanduijn/synthex"
)

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	user := Object("User").Field("id", UUID()).MustBuild()

	if err := reg.Register(user); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	got, err := reg.Lookup("User")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if got != user {
		t.Error("Lookup returned a different schema")
	}
	if reg.Len() != 1 {
		t.Errorf("Len() = %d, want 1", reg.Len())
	}
}

func TestRegistryLookupMissing(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Lookup("nope")
	if !synthex.IsCode(err, synthex.CodeSchemaNotFound) {
		t.Errorf("Lookup missing error = %v, want SCHEMA_NOT_FOUND", err)
	}
}

func TestRegistryRegisterNameless(t *testing.T) {
	reg := NewRegistry()
	err := reg.Register(&Compiled{Root: &Field{Kind: KindObject}})
	if !synthex.IsCode(err, synthex.CodeSchemaNoName) {
		t.Errorf("Register nameless error = %v, want SCHEMA_NO_NAME", err)
	}
	if err := reg.Register(nil); !synthex.IsCode(err, synthex.CodeSchemaNoName) {
		t.Errorf("Register(nil) error = %v, want SCHEMA_NO_NAME", err)
	}
}

func TestRegistryReplace(t *testing.T) {
	reg := NewRegistry()
	v1 := Object("User").Version("1").Field("id", UUID()).MustBuild()
	v2 := Object("User").Version("2").Field("id", UUID()).MustBuild()
	_ = reg.Register(v1)
	_ = reg.Register(v2)
	got, _ := reg.Lookup("User")
	if got.Version != "2" {
		t.Errorf("replaced schema version = %q, want 2", got.Version)
	}
	if reg.Len() != 1 {
		t.Errorf("Len() after replace = %d, want 1", reg.Len())
	}
}

func TestRegistryNamesSorted(t *testing.T) {
	reg := NewRegistry()
	for _, n := range []string{"Zeta", "Alpha", "Mid"} {
		_ = reg.Register(Object(n).Field("x", String()).MustBuild())
	}
	names := reg.Names()
	want := []string{"Alpha", "Mid", "Zeta"}
	if len(names) != len(want) {
		t.Fatalf("Names() = %v", names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestRegistryConcurrent(t *testing.T) {
	reg := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("S%02d", i)
			_ = reg.Register(Object(name).Field("x", String()).MustBuild())
			_, _ = reg.Lookup(name)
			_ = reg.Names()
		}(i)
	}
	wg.Wait()
	if reg.Len() != 20 {
		t.Errorf("Len() = %d, want 20", reg.Len())
	}
}
