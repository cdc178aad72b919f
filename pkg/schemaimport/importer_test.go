package schemaimport

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

const contactDoc = `
openapi: 3.0.3
info:
  title: Contact API
  version: 1.0.0
paths: {}
components:
  schemas:
    Contact:
      type: object
      required: [email, full_name]
      properties:
        full_name:
          type: string
          title: Full Name
          minLength: 2
          maxLength: 80
        email:
          type: string
          format: email
        website:
          type: string
          format: uri
        age:
          type: integer
          minimum: 18
          maximum: 120
        country:
          type: string
          enum: [Brazil, Chile, Peru]
        interests:
          type: array
          maxItems: 2
          items:
            type: string
            enum: [Sports, Music, Travel]
        resume:
          type: string
          format: binary
        address:
          type: object
          properties:
            street:
              type: string
`

func importContact(t *testing.T) map[string]model.FieldDefinition {
	t.Helper()
	fields, err := New(nil).Fields(context.Background(), []byte(contactDoc), "Contact")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	byID := make(map[string]model.FieldDefinition, len(fields))
	for _, f := range fields {
		byID[f.ID] = f
	}
	return byID
}

func TestImportMapsPropertyTypes(t *testing.T) {
	fields := importContact(t)

	tests := []struct {
		id   string
		kind model.FieldKind
	}{
		{"full_name", model.FieldKindText},
		{"email", model.FieldKindEmail},
		{"website", model.FieldKindURL},
		{"age", model.FieldKindNumber},
		{"country", model.FieldKindDropdown},
		{"interests", model.FieldKindMultiselect},
		{"resume", model.FieldKindFile},
	}
	for _, tt := range tests {
		field, ok := fields[tt.id]
		if !ok {
			t.Fatalf("missing field %q", tt.id)
		}
		if field.Type != tt.kind {
			t.Errorf("field %q type = %q, want %q", tt.id, field.Type, tt.kind)
		}
	}

	if _, ok := fields["address"]; ok {
		t.Error("nested object should be skipped, not converted")
	}
}

func TestImportCarriesConstraints(t *testing.T) {
	fields := importContact(t)

	name := fields["full_name"]
	if name.Label != "Full Name" || !name.Required {
		t.Fatalf("full_name = %+v, want titled required field", name)
	}
	if name.MinLength != 2 || name.MaxLength != 80 {
		t.Fatalf("length bounds = %d..%d, want 2..80", name.MinLength, name.MaxLength)
	}

	age := fields["age"]
	if age.Min == nil || *age.Min != 18 || age.Max == nil || *age.Max != 120 {
		t.Fatalf("age bounds = %+v, want 18..120", age)
	}
	if age.Required {
		t.Fatal("age is not in the required list")
	}

	if diff := cmp.Diff([]string{"Brazil", "Chile", "Peru"}, fields["country"].Options); diff != "" {
		t.Fatalf("country options mismatch (-want +got):\n%s", diff)
	}

	interests := fields["interests"]
	if interests.MaxSelections != 2 {
		t.Fatalf("MaxSelections = %d, want 2", interests.MaxSelections)
	}
	if diff := cmp.Diff([]string{"Sports", "Music", "Travel"}, interests.Options); diff != "" {
		t.Fatalf("interests options mismatch (-want +got):\n%s", diff)
	}
}

func TestImportDerivesLabels(t *testing.T) {
	fields := importContact(t)
	if got := fields["email"].Label; got != "Email" {
		t.Fatalf("label = %q, want derived from property name", got)
	}

	tests := []struct {
		in, want string
	}{
		{"first_name", "First Name"},
		{"firstName", "First Name"},
		{"url", "Url"},
	}
	for _, tt := range tests {
		if got := labelFor(tt.in, ""); got != tt.want {
			t.Errorf("labelFor(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestImportUnknownSchema(t *testing.T) {
	_, err := New(nil).Fields(context.Background(), []byte(contactDoc), "Missing")
	if !errors.Is(err, ErrSchemaNotFound) {
		t.Fatalf("expected ErrSchemaNotFound, got %v", err)
	}
}

func TestImportRejectsNonObjectSchema(t *testing.T) {
	doc := `
openapi: 3.0.3
info:
  title: t
  version: 1.0.0
paths: {}
components:
  schemas:
    Tag:
      type: string
`
	if _, err := New(nil).Fields(context.Background(), []byte(doc), "Tag"); err == nil {
		t.Fatal("expected error for non-object schema")
	}
}
