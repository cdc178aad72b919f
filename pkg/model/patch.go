package model

// FieldPatch is a partial FieldDefinition used for update-by-id merges.
// Nil members are left untouched; set members overwrite, including overwrites
// to a zero value. ID and Type are deliberately absent: neither is
// reassignable after creation.
type FieldPatch struct {
	Label        *string `json:"label,omitempty"`
	Required     *bool   `json:"required,omitempty"`
	Placeholder  *string `json:"placeholder,omitempty"`
	Description  *string `json:"description,omitempty"`
	ErrorMessage *string `json:"errorMessage,omitempty"`

	Rows      *int    `json:"rows,omitempty"`
	MinLength *int    `json:"minLength,omitempty"`
	MaxLength *int    `json:"maxLength,omitempty"`
	Pattern   *string `json:"pattern,omitempty"`

	Min  *float64 `json:"min,omitempty"`
	Max  *float64 `json:"max,omitempty"`
	Step *float64 `json:"step,omitempty"`

	Accept   *string  `json:"accept,omitempty"`
	MaxSize  *float64 `json:"maxSize,omitempty"`
	Multiple *bool    `json:"multiple,omitempty"`

	Options       *[]string `json:"options,omitempty"`
	MaxSelections *int      `json:"maxSelections,omitempty"`

	PhoneFormat *string `json:"phoneFormat,omitempty"`
}

// Apply merges the patch into field, shallow semantics.
func (p FieldPatch) Apply(field *FieldDefinition) {
	if field == nil {
		return
	}
	if p.Label != nil {
		field.Label = *p.Label
	}
	if p.Required != nil {
		field.Required = *p.Required
	}
	if p.Placeholder != nil {
		field.Placeholder = *p.Placeholder
	}
	if p.Description != nil {
		field.Description = *p.Description
	}
	if p.ErrorMessage != nil {
		field.ErrorMessage = *p.ErrorMessage
	}
	if p.Rows != nil {
		field.Rows = *p.Rows
	}
	if p.MinLength != nil {
		field.MinLength = *p.MinLength
	}
	if p.MaxLength != nil {
		field.MaxLength = *p.MaxLength
	}
	if p.Pattern != nil {
		field.Pattern = *p.Pattern
	}
	if p.Min != nil {
		v := *p.Min
		field.Min = &v
	}
	if p.Max != nil {
		v := *p.Max
		field.Max = &v
	}
	if p.Step != nil {
		v := *p.Step
		field.Step = &v
	}
	if p.Accept != nil {
		field.Accept = *p.Accept
	}
	if p.MaxSize != nil {
		field.MaxSize = *p.MaxSize
	}
	if p.Multiple != nil {
		field.Multiple = *p.Multiple
	}
	if p.Options != nil {
		field.Options = append([]string(nil), (*p.Options)...)
	}
	if p.MaxSelections != nil {
		field.MaxSelections = *p.MaxSelections
	}
	if p.PhoneFormat != nil {
		field.PhoneFormat = *p.PhoneFormat
	}
}

// Helper constructors keep patch literals readable in calling code and tests.

func String(v string) *string      { return &v }
func Bool(v bool) *bool            { return &v }
func Int(v int) *int               { return &v }
func Float(v float64) *float64     { return &v }
func Strings(v []string) *[]string { return &v }
