package schemafile_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	formstate "github.com/ostrander/formstate"
	"github.com/ostrander/formstate/schemafile"
)

const sampleYAML = `
email:
  label: Email
  description: Work address preferred.
  required: true
  rule: 'value contains "@"'
  message: must contain an @ sign
user:
  name:
    label: Name
    default: 3
    rule: 'len(value) >= 1'
settings: just a string, not a mapping
`

func TestLoadYAML(t *testing.T) {
	schema, err := schemafile.LoadYAML([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("LoadYAML: %v", err)
	}
	f, err := formstate.New(schema, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if diff := cmp.Diff([]string{"email", "user.name"}, f.Paths()); diff != "" {
		t.Fatalf("paths mismatch (-want +got):\n%s", diff)
	}
	// Defaults coerce to their string display form.
	if got := f.Value("user.name"); got != "3" {
		t.Fatalf("default lost: %q", got)
	}

	ctx := context.Background()
	_ = f.Set(ctx, "email", "nope")
	if got := f.ErrorText("email"); got != "must contain an @ sign" {
		t.Fatalf("declared message lost: %q", got)
	}
	_ = f.Set(ctx, "email", "a@b.com")
	if got := f.ErrorText("email"); got != "" {
		t.Fatalf("valid value should clear: %q", got)
	}
}

func TestLoadYAML_RequiredFlag(t *testing.T) {
	schema, err := schemafile.LoadYAML([]byte(`
name:
  label: Name
  required: true
  rule: 'true'
`))
	if err != nil {
		t.Fatalf("LoadYAML: %v", err)
	}
	f := formstate.MustNew(schema, nil)
	if ok := f.ValidateForm(context.Background()); ok {
		t.Fatalf("empty required field must fail")
	}
	ferrs, _ := f.FieldErrors()
	if len(ferrs) != 1 || ferrs[0].Path != "name" {
		t.Fatalf("expected required error on name, got %v", ferrs)
	}
}

func TestLoadJSON(t *testing.T) {
	schema, err := schemafile.LoadJSON([]byte(`{
		"email": {"label": "Email", "rule": "value contains \"@\"", "message": "needs @"}
	}`))
	if err != nil {
		t.Fatalf("LoadJSON: %v", err)
	}
	f := formstate.MustNew(schema, nil)
	if diff := cmp.Diff([]string{"email"}, f.Paths()); diff != "" {
		t.Fatalf("paths mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_BadRuleSurfacesCompileError(t *testing.T) {
	_, err := schemafile.LoadYAML([]byte(`
name:
  label: Name
  rule: 'value +'
`))
	if err == nil {
		t.Fatalf("expected compile error")
	}
}

func TestLoadFile_PicksDecoderByExtension(t *testing.T) {
	dir := t.TempDir()
	yml := filepath.Join(dir, "schema.yaml")
	if err := os.WriteFile(yml, []byte("name:\n  label: Name\n  rule: 'true'\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	schema, err := schemafile.LoadFile(yml)
	if err != nil {
		t.Fatalf("LoadFile yaml: %v", err)
	}
	if len(schema) != 1 {
		t.Fatalf("expected one entry, got %d", len(schema))
	}

	jsn := filepath.Join(dir, "schema.json")
	if err := os.WriteFile(jsn, []byte(`{"name":{"label":"Name","rule":"true"}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := schemafile.LoadFile(jsn); err != nil {
		t.Fatalf("LoadFile json: %v", err)
	}
}
