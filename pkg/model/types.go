package model

import "time"

// FieldKind is the closed set of field primitives the builder understands.
// New kinds enter through the registry catalog, not through scattered
// switches.
type FieldKind string

const (
	FieldKindText        FieldKind = "text"
	FieldKindEmail       FieldKind = "email"
	FieldKindPhone       FieldKind = "phone"
	FieldKindTextarea    FieldKind = "textarea"
	FieldKindNumber      FieldKind = "number"
	FieldKindURL         FieldKind = "url"
	FieldKindFile        FieldKind = "file"
	FieldKindDropdown    FieldKind = "dropdown"
	FieldKindMultiselect FieldKind = "multiselect"
)

// Phone format selectors understood by the validator.
const (
	PhoneFormatUS            = "us"
	PhoneFormatInternational = "international"
	PhoneFormatCustom        = "custom"
)

// FieldType is a registry catalog entry: the static description of a field
// primitive and the defaults a freshly created field of that kind receives.
// Entries are immutable once registered.
type FieldType struct {
	Kind               FieldKind `json:"type" yaml:"type"`
	Name               string    `json:"name" yaml:"name"`
	Icon               string    `json:"icon,omitempty" yaml:"icon,omitempty"`
	Description        string    `json:"description,omitempty" yaml:"description,omitempty"`
	DefaultLabel       string    `json:"defaultLabel" yaml:"defaultLabel"`
	DefaultPlaceholder string    `json:"defaultPlaceholder,omitempty" yaml:"defaultPlaceholder,omitempty"`
	DefaultOptions     []string  `json:"defaultOptions,omitempty" yaml:"defaultOptions,omitempty"`
}

// FieldDefinition models one configurable input inside a form under
// construction. Struct fields are annotated so snapshots and exports can
// serialise them directly. Type-specific attributes are only meaningful for
// the matching kind and stay zero otherwise. Numeric bounds use pointers so
// an explicit zero survives the round trip.
type FieldDefinition struct {
	ID           string    `json:"id"`
	Type         FieldKind `json:"type"`
	Label        string    `json:"label"`
	Required     bool      `json:"required"`
	Placeholder  string    `json:"placeholder,omitempty"`
	Description  string    `json:"description,omitempty"`
	ErrorMessage string    `json:"errorMessage,omitempty"`

	// text family
	Rows      int    `json:"rows,omitempty"`
	MinLength int    `json:"minLength,omitempty"`
	MaxLength int    `json:"maxLength,omitempty"`
	Pattern   string `json:"pattern,omitempty"`

	// number
	Min  *float64 `json:"min,omitempty"`
	Max  *float64 `json:"max,omitempty"`
	Step *float64 `json:"step,omitempty"`

	// file
	Accept   string  `json:"accept,omitempty"`
	MaxSize  float64 `json:"maxSize,omitempty"` // megabytes
	Multiple bool    `json:"multiple,omitempty"`

	// dropdown / multiselect
	Options       []string `json:"options,omitempty"`
	MaxSelections int      `json:"maxSelections,omitempty"`

	// phone
	PhoneFormat string `json:"phoneFormat,omitempty"`
}

// Clone returns a deep copy so collection snapshots cannot alias the
// caller's option slices.
func (f FieldDefinition) Clone() FieldDefinition {
	out := f
	if f.Options != nil {
		out.Options = append([]string(nil), f.Options...)
	}
	if f.Min != nil {
		v := *f.Min
		out.Min = &v
	}
	if f.Max != nil {
		v := *f.Max
		out.Max = &v
	}
	if f.Step != nil {
		v := *f.Step
		out.Step = &v
	}
	return out
}

// FormSettings carries the form-level behaviour toggles the renderer and
// viewer honour on submit.
type FormSettings struct {
	SubmitButtonText        string `json:"submitButtonText"`
	SuccessMessage          string `json:"successMessage"`
	RedirectAfterSubmission bool   `json:"redirectAfterSubmission"`
	RedirectURL             string `json:"redirectUrl,omitempty"`
	EnableValidation        bool   `json:"enableValidation"`
	RequireAllFields        bool   `json:"requireAllFields"`
	ShowProgressBar         bool   `json:"showProgressBar"`
	AllowSaveDraft          bool   `json:"allowSaveDraft"`
}

// DefaultSettings returns the settings a brand new form starts with.
func DefaultSettings() FormSettings {
	return FormSettings{
		SubmitButtonText: "Submit",
		SuccessMessage:   "Thank you! Your response has been recorded.",
		EnableValidation: true,
	}
}

// FormDefinition is the persisted unit: a named collection of fields plus
// settings. The authoring collection is a working copy; the store owns these.
type FormDefinition struct {
	ID          int               `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Settings    FormSettings      `json:"settings"`
	Fields      []FieldDefinition `json:"fields"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// FileInfo describes one candidate file for a file field. Size is in bytes.
type FileInfo struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
	MIME string `json:"mime,omitempty"`
}

// Submission is a completed set of end-user values for a form, keyed by
// field id. Admin-panel domain; the core only produces the Data payload.
type Submission struct {
	ID          string         `json:"id"`
	FormID      int            `json:"formId"`
	FormTitle   string         `json:"formTitle"`
	Data        map[string]any `json:"data"`
	SubmittedAt time.Time      `json:"submittedAt"`
	IPAddress   string         `json:"ipAddress,omitempty"`
	UserAgent   string         `json:"userAgent,omitempty"`
	Referrer    string         `json:"referrer,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}
