package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nick-vanduijn/synthex/pkg/schema"
	"github.com/nick-vanduijn/synthex/pkg/schemaio"
)

func writeSchemaFile(t *testing.T, dir, name string, format schemaio.Format) string {
	t.Helper()
	c := schema.Object("User").
		Version("1").
		Field("id", schema.UUID()).
		Field("name", schema.String()).
		Field("nickname", schema.String().Optional()).
		MustBuild()
	data, err := schemaio.Export(c, format)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	exportFormat = "" // flag state persists across Execute calls
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestExportJSONToYAML(t *testing.T) {
	dir := t.TempDir()
	in := writeSchemaFile(t, dir, "user.json", schemaio.FormatJSON)
	out := filepath.Join(dir, "user.yaml")

	output, err := runCommand(t, "export", in, out)
	if err != nil {
		t.Fatalf("export error = %v", err)
	}
	if !strings.Contains(output, `exported "User"`) {
		t.Errorf("export output = %q", output)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	restored, err := schemaio.Import(data, schemaio.FormatYAML)
	if err != nil {
		t.Fatalf("converted file does not import: %v", err)
	}
	if restored.Name != "User" || len(restored.Root.Properties) != 3 {
		t.Errorf("restored = %s with %d properties", restored.Name, len(restored.Root.Properties))
	}
}

func TestExportFormatFlag(t *testing.T) {
	dir := t.TempDir()
	in := writeSchemaFile(t, dir, "user.yaml", schemaio.FormatYAML)
	out := filepath.Join(dir, "user.out")

	if _, err := runCommand(t, "export", "--format", "openapi", in, out); err != nil {
		t.Fatalf("export --format openapi error = %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"openapi": "3.0.3"`) {
		t.Errorf("output is not an OpenAPI document:\n%s", data)
	}
}

func TestExportUnknownFormat(t *testing.T) {
	dir := t.TempDir()
	in := writeSchemaFile(t, dir, "user.json", schemaio.FormatJSON)

	if _, err := runCommand(t, "export", in, filepath.Join(dir, "user.out")); err == nil {
		t.Error("expected error when format cannot be determined")
	}
}

func TestExportMissingInput(t *testing.T) {
	dir := t.TempDir()
	if _, err := runCommand(t, "export", filepath.Join(dir, "absent.json"), filepath.Join(dir, "o.yaml")); err == nil {
		t.Error("expected error for missing input file")
	}
}

func TestImportSummary(t *testing.T) {
	dir := t.TempDir()
	in := writeSchemaFile(t, dir, "user.json", schemaio.FormatJSON)

	output, err := runCommand(t, "import", in)
	if err != nil {
		t.Fatalf("import error = %v", err)
	}
	for _, want := range []string{
		"schema:  User",
		"version: 1",
		"fields:  3",
		"interface User {",
		"nickname?: string;",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("import output missing %q:\n%s", want, output)
		}
	}
}

func TestImportInvalidSchema(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(path, []byte(`{"name":"T","schema":{"kind":"object","required":true}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := runCommand(t, "import", path); err == nil {
		t.Error("expected error for structurally invalid schema")
	}
}

func TestCountFields(t *testing.T) {
	c := schema.Object("T").
		Field("a", schema.String()).
		Field("nested", schema.Object("").
			Field("b", schema.Number()).
			Field("c", schema.Array(schema.String()))).
		MustBuild()
	// a, nested, b, c, and the array's item subtree contributes nothing
	if got := countFields(c.Root); got != 4 {
		t.Errorf("countFields() = %d, want 4", got)
	}
}
