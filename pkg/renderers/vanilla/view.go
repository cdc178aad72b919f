package vanilla

import (
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
)

// buildView flattens the form and per-request options into the map the
// template consumes. All strings that originate from the form author pass
// through bluemonday here; the template marks them safe.
func (r *Renderer) buildView(form render.Form, opts render.RenderOptions) map[string]any {
	mode := opts.Mode
	if mode == "" {
		mode = render.ModeViewer
	}

	fields := make([]map[string]any, 0, len(form.Fields))
	for _, field := range form.Fields {
		fields = append(fields, r.fieldView(field, opts))
	}

	view := map[string]any{
		"mode": string(mode),
		"form": map[string]any{
			"title":           r.strict.Sanitize(form.Title),
			"description":     r.ugc.Sanitize(form.Description),
			"submitText":      r.strict.Sanitize(submitText(form.Settings)),
			"showProgressBar": form.Settings.ShowProgressBar,
			"allowSaveDraft":  form.Settings.AllowSaveDraft,
		},
		"fields": fields,
	}

	themeView := map[string]any{"variant": "", "style": ""}
	if opts.Theme != nil {
		themeView["variant"] = opts.Theme.Variant
		themeView["style"] = cssVarsStyle(opts.Theme.CSSVars)
	}
	view["theme"] = themeView

	return view
}

func (r *Renderer) fieldView(field model.FieldDefinition, opts render.RenderOptions) map[string]any {
	value := ""
	if raw, ok := opts.Values[field.ID]; ok {
		if s, isString := raw.(string); isString {
			value = s
		}
	}

	var selectedOptions []string
	if raw, ok := opts.Values[field.ID].([]string); ok {
		selectedOptions = raw
	}

	options := make([]map[string]any, 0, len(field.Options))
	for _, opt := range field.Options {
		options = append(options, map[string]any{
			"value":    r.strict.Sanitize(opt),
			"selected": opt == value || contains(selectedOptions, opt),
		})
	}

	view := map[string]any{
		"id":          field.ID,
		"type":        string(field.Type),
		"inputType":   inputType(field.Type),
		"label":       r.strict.Sanitize(field.Label),
		"placeholder": r.strict.Sanitize(field.Placeholder),
		"description": r.ugc.Sanitize(field.Description),
		"required":    field.Required,
		"value":       value,
		"errors":      append([]string(nil), opts.Errors[field.ID]...),
		"selected":    opts.Mode == render.ModePreview && opts.SelectedID == field.ID,
		"options":     options,
		"rows":        field.Rows,
		"multiple":    field.Multiple,
		"accept":      field.Accept,
		"min":         floatAttr(field.Min),
		"max":         floatAttr(field.Max),
		"step":        floatAttr(field.Step),
		"maxLength":   field.MaxLength,
	}
	return view
}

func submitText(settings model.FormSettings) string {
	if strings.TrimSpace(settings.SubmitButtonText) != "" {
		return settings.SubmitButtonText
	}
	return "Submit"
}

func inputType(kind model.FieldKind) string {
	switch kind {
	case model.FieldKindEmail:
		return "email"
	case model.FieldKindURL:
		return "url"
	case model.FieldKindPhone:
		return "tel"
	case model.FieldKindNumber:
		return "number"
	case model.FieldKindFile:
		return "file"
	default:
		return "text"
	}
}

func floatAttr(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}
