package validation

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

func TestValidate_RequiredEmptyShortCircuits(t *testing.T) {
	field := model.FieldDefinition{
		Type:      model.FieldKindText,
		Label:     "Full name",
		Required:  true,
		MinLength: 5,
		Pattern:   `^[A-Z]`,
	}

	got := Validate(field, "")
	want := []string{"Full name is required"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("expected exactly the required error (-want +got):\n%s", diff)
	}
}

func TestValidate_RequiredUsesCustomMessage(t *testing.T) {
	field := model.FieldDefinition{
		Type:         model.FieldKindText,
		Label:        "Full name",
		Required:     true,
		ErrorMessage: "Please tell us your name",
	}

	got := Validate(field, "   ")
	if len(got) != 1 || got[0] != "Please tell us your name" {
		t.Fatalf("expected custom message, got %v", got)
	}
}

func TestValidate_EmptyOptionalSkipsEverything(t *testing.T) {
	field := model.FieldDefinition{
		Type:      model.FieldKindEmail,
		Label:     "Email",
		MinLength: 5,
	}

	if got := Validate(field, ""); len(got) != 0 {
		t.Fatalf("expected no errors for empty optional value, got %v", got)
	}
	if got := Validate(field, nil); len(got) != 0 {
		t.Fatalf("expected no errors for nil optional value, got %v", got)
	}
}

func TestValidate_LengthBounds(t *testing.T) {
	field := model.FieldDefinition{
		Type:      model.FieldKindText,
		Label:     "Nickname",
		MinLength: 3,
		MaxLength: 5,
	}

	if got := Validate(field, "ab"); len(got) != 1 || !strings.Contains(got[0], "at least 3") {
		t.Fatalf("min length: got %v", got)
	}
	if got := Validate(field, "abcdef"); len(got) != 1 || !strings.Contains(got[0], "at most 5") {
		t.Fatalf("max length: got %v", got)
	}
	if got := Validate(field, "abcd"); len(got) != 0 {
		t.Fatalf("in bounds: got %v", got)
	}
}

func TestValidate_Email(t *testing.T) {
	field := model.FieldDefinition{Type: model.FieldKindEmail, Label: "Email"}

	if got := Validate(field, "not-an-email"); len(got) != 1 || !strings.Contains(got[0], "valid email") {
		t.Fatalf("invalid email: got %v", got)
	}
	if got := Validate(field, "a@b.com"); len(got) != 0 {
		t.Fatalf("valid email: got %v", got)
	}
}

func TestValidate_NumberBounds(t *testing.T) {
	field := model.FieldDefinition{
		Type:  model.FieldKindNumber,
		Label: "Quantity",
		Min:   model.Float(10),
		Max:   model.Float(20),
	}

	if got := Validate(field, 25.0); len(got) != 1 || !strings.Contains(got[0], "at most 20") {
		t.Fatalf("above max: got %v", got)
	}
	if got := Validate(field, "5"); len(got) != 1 || !strings.Contains(got[0], "at least 10") {
		t.Fatalf("below min: got %v", got)
	}
	if got := Validate(field, 15.0); len(got) != 0 {
		t.Fatalf("in bounds: got %v", got)
	}
	if got := Validate(field, "abc"); len(got) != 1 || !strings.Contains(got[0], "must be a number") {
		t.Fatalf("non-numeric: got %v", got)
	}
}

func TestValidate_Pattern(t *testing.T) {
	field := model.FieldDefinition{
		Type:    model.FieldKindText,
		Label:   "Code",
		Pattern: `^[A-Z]{3}\d{2}$`,
	}

	if got := Validate(field, "abc12"); len(got) != 1 || !strings.Contains(got[0], "format is invalid") {
		t.Fatalf("pattern mismatch: got %v", got)
	}
	if got := Validate(field, "ABC12"); len(got) != 0 {
		t.Fatalf("pattern match: got %v", got)
	}
}

func TestValidate_InvalidPatternIsSwallowed(t *testing.T) {
	field := model.FieldDefinition{
		Type:    model.FieldKindText,
		Label:   "Code",
		Pattern: `([`,
	}

	if got := Validate(field, "anything"); len(got) != 0 {
		t.Fatalf("invalid pattern must be skipped, got %v", got)
	}
}

func TestValidate_PhoneFormats(t *testing.T) {
	cases := []struct {
		name   string
		format string
		value  string
		valid  bool
	}{
		{"us formatted", model.PhoneFormatUS, "(555) 123-4567", true},
		{"us bare digits", model.PhoneFormatUS, "5551234567", true},
		{"us too short", model.PhoneFormatUS, "12345", false},
		{"international", model.PhoneFormatInternational, "+442071838750", true},
		{"international garbage", model.PhoneFormatInternational, "hello", false},
		{"default permissive", "", "+1 (555) 123-4567", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			field := model.FieldDefinition{
				Type:        model.FieldKindPhone,
				Label:       "Phone",
				PhoneFormat: tc.format,
			}
			got := Validate(field, tc.value)
			if tc.valid && len(got) != 0 {
				t.Fatalf("expected valid, got %v", got)
			}
			if !tc.valid && len(got) == 0 {
				t.Fatal("expected a phone format error")
			}
		})
	}
}

func TestValidate_PhoneCustomPattern(t *testing.T) {
	field := model.FieldDefinition{
		Type:        model.FieldKindPhone,
		Label:       "Phone",
		PhoneFormat: model.PhoneFormatCustom,
		Pattern:     `^\d{4}$`,
	}

	if got := Validate(field, "1234"); len(got) != 0 {
		t.Fatalf("custom pattern match: got %v", got)
	}
	if got := Validate(field, "12345"); len(got) != 1 {
		t.Fatalf("custom pattern mismatch: got %v", got)
	}
}

func TestValidate_URL(t *testing.T) {
	field := model.FieldDefinition{Type: model.FieldKindURL, Label: "Website"}

	if got := Validate(field, "https://example.com/a"); len(got) != 0 {
		t.Fatalf("valid url: got %v", got)
	}
	if got := Validate(field, "not a url"); len(got) != 1 || !strings.Contains(got[0], "valid URL") {
		t.Fatalf("invalid url: got %v", got)
	}
	if got := Validate(field, "/relative/path"); len(got) != 1 {
		t.Fatalf("relative url must fail: got %v", got)
	}
}

func TestValidateFiles(t *testing.T) {
	field := model.FieldDefinition{
		Type:    model.FieldKindFile,
		Label:   "Attachment",
		Accept:  ".pdf,.doc",
		MaxSize: 2,
	}

	oversized := model.FileInfo{Name: "big.pdf", Size: 3 * 1024 * 1024}
	if got := ValidateFiles(field, []model.FileInfo{oversized}); len(got) != 1 || !strings.Contains(got[0], "maximum size of 2 MB") {
		t.Fatalf("oversized pdf: got %v", got)
	}

	wrongType := model.FileInfo{Name: "photo.png", Size: 1024 * 1024}
	if got := ValidateFiles(field, []model.FileInfo{wrongType}); len(got) != 1 || !strings.Contains(got[0], "not an accepted file type") {
		t.Fatalf("wrong type: got %v", got)
	}

	ok := model.FileInfo{Name: "cv.pdf", Size: 1024 * 1024}
	if got := ValidateFiles(field, []model.FileInfo{ok}); len(got) != 0 {
		t.Fatalf("acceptable file: got %v", got)
	}

	// every failing file contributes one message
	got := ValidateFiles(field, []model.FileInfo{oversized, wrongType, ok})
	if len(got) != 2 {
		t.Fatalf("expected 2 errors, got %v", got)
	}
}

func TestValidateFiles_MIMEWildcard(t *testing.T) {
	field := model.FieldDefinition{
		Type:   model.FieldKindFile,
		Label:  "Image",
		Accept: "image/*",
	}

	png := model.FileInfo{Name: "a.png", Size: 100, MIME: "image/png"}
	if got := ValidateFiles(field, []model.FileInfo{png}); len(got) != 0 {
		t.Fatalf("wildcard mime: got %v", got)
	}

	pdf := model.FileInfo{Name: "a.pdf", Size: 100, MIME: "application/pdf"}
	if got := ValidateFiles(field, []model.FileInfo{pdf}); len(got) != 1 {
		t.Fatalf("non-matching mime: got %v", got)
	}
}

func TestValidate_MultiselectMaxSelections(t *testing.T) {
	field := model.FieldDefinition{
		Type:          model.FieldKindMultiselect,
		Label:         "Toppings",
		Options:       []string{"a", "b", "c"},
		MaxSelections: 2,
	}

	if got := Validate(field, []string{"a", "b", "c"}); len(got) != 1 || !strings.Contains(got[0], "at most 2 selections") {
		t.Fatalf("over max selections: got %v", got)
	}
	if got := Validate(field, []string{"a"}); len(got) != 0 {
		t.Fatalf("within selections: got %v", got)
	}
}

func TestValidate_ErrorOrderIsStable(t *testing.T) {
	field := model.FieldDefinition{
		Type:      model.FieldKindEmail,
		Label:     "Email",
		MinLength: 20,
		Pattern:   `@corp\.example$`,
	}

	got := Validate(field, "a@b")
	want := []string{
		"Email must be at least 20 characters",
		"Email format is invalid",
		"Email must be a valid email address",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("error order mismatch (-want +got):\n%s", diff)
	}
}
