package registry

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

func TestList_BuiltinCatalogOrder(t *testing.T) {
	reg := New()

	kinds := make([]model.FieldKind, 0)
	for _, fieldType := range reg.List() {
		kinds = append(kinds, fieldType.Kind)
	}

	want := []model.FieldKind{
		model.FieldKindText,
		model.FieldKindEmail,
		model.FieldKindPhone,
		model.FieldKindTextarea,
		model.FieldKindNumber,
		model.FieldKindURL,
		model.FieldKindFile,
		model.FieldKindDropdown,
		model.FieldKindMultiselect,
	}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Fatalf("catalog order mismatch (-want +got):\n%s", diff)
	}
}

func TestGet_UnknownKindReportsNotFound(t *testing.T) {
	reg := New()

	if _, ok := reg.Get("bogus"); ok {
		t.Fatal("expected unknown kind to report ok=false")
	}
	if reg.Has("bogus") {
		t.Fatal("expected Has to report false for unknown kind")
	}
}

func TestMustGet_KnownAndUnknownKinds(t *testing.T) {
	reg := New()

	if got := reg.MustGet(model.FieldKindEmail); got.Kind != model.FieldKindEmail {
		t.Fatalf("MustGet returned %+v", got)
	}

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for unregistered kind")
		}
	}()
	reg.MustGet("bogus")
}

func TestRegister_LatestWinsKeepsOrder(t *testing.T) {
	reg := New()
	before := reg.List()

	reg.Register(model.FieldType{
		Kind:         model.FieldKindDropdown,
		Name:         "Choice",
		DefaultLabel: "Pick one",
	}, nil)

	got, ok := reg.Get(model.FieldKindDropdown)
	if !ok || got.Name != "Choice" {
		t.Fatalf("expected replacement entry, got %+v (ok=%v)", got, ok)
	}

	after := reg.List()
	if len(after) != len(before) {
		t.Fatalf("replacement changed catalog size: %d != %d", len(after), len(before))
	}
	for i := range after {
		if after[i].Kind != before[i].Kind {
			t.Fatalf("replacement reordered catalog at %d: %s != %s", i, after[i].Kind, before[i].Kind)
		}
	}
}

func TestDefaults_KindHooks(t *testing.T) {
	reg := New()

	hook, ok := reg.Defaults(model.FieldKindTextarea)
	if !ok || hook == nil {
		t.Fatal("expected textarea defaults hook")
	}
	field := model.FieldDefinition{Type: model.FieldKindTextarea}
	hook(&field)
	if field.Rows != 4 {
		t.Fatalf("expected default rows 4, got %d", field.Rows)
	}

	if hook, ok := reg.Defaults(model.FieldKindText); !ok || hook != nil {
		t.Fatalf("expected registered text kind with nil hook, got ok=%v hook=%v", ok, hook != nil)
	}
}

func TestLoadOverlay_CustomisesAndAdds(t *testing.T) {
	reg := New()

	overlay := `
types:
  - type: dropdown
    name: Choice
    defaultOptions: ["Yes", "No"]
  - type: rating
    name: Rating
    defaultLabel: Rate your experience
`
	applied, err := reg.LoadOverlay(strings.NewReader(overlay))
	if err != nil {
		t.Fatalf("LoadOverlay: %v", err)
	}
	if applied != 2 {
		t.Fatalf("expected 2 entries applied, got %d", applied)
	}

	dropdown, _ := reg.Get(model.FieldKindDropdown)
	if dropdown.Name != "Choice" {
		t.Fatalf("expected overridden name, got %q", dropdown.Name)
	}
	if diff := cmp.Diff([]string{"Yes", "No"}, dropdown.DefaultOptions); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	// untouched overlay values keep the builtin
	if dropdown.DefaultLabel != "Dropdown" {
		t.Fatalf("expected builtin label kept, got %q", dropdown.DefaultLabel)
	}

	rating, ok := reg.Get("rating")
	if !ok || rating.DefaultLabel != "Rate your experience" {
		t.Fatalf("expected new rating kind, got %+v (ok=%v)", rating, ok)
	}
}

func TestLoadOverlay_NewKindNeedsNameAndLabel(t *testing.T) {
	reg := New()

	if _, err := reg.LoadOverlay(strings.NewReader("types:\n  - type: rating\n")); err == nil {
		t.Fatal("expected error for incomplete new kind")
	}
}
