package schemaimport

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formbuilder/pkg/factory"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/registry"
)

// ErrSchemaNotFound reports a component name absent from the document.
var ErrSchemaNotFound = errors.New("schemaimport: schema not found")

// Importer maps OpenAPI object schemas onto field definitions so an existing
// API contract can seed a form instead of starting from a blank canvas.
type Importer struct {
	factory *factory.Factory
}

// New creates an Importer. A nil registry uses the builtin catalog.
func New(reg *registry.Registry) *Importer {
	return &Importer{factory: factory.New(reg)}
}

// Fields loads an OpenAPI document and converts the named component schema
// into an ordered field list. Properties come out alphabetically; the author
// reorders them in the builder afterwards.
func (im *Importer) Fields(ctx context.Context, doc []byte, schemaName string) ([]model.FieldDefinition, error) {
	if len(doc) == 0 {
		return nil, errors.New("schemaimport: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(doc)
	if err != nil {
		return nil, fmt.Errorf("schemaimport: load document: %w", err)
	}
	if spec.Components == nil || len(spec.Components.Schemas) == 0 {
		return nil, fmt.Errorf("schemaimport: %q: %w", schemaName, ErrSchemaNotFound)
	}
	ref, ok := spec.Components.Schemas[schemaName]
	if !ok || ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("schemaimport: %q: %w", schemaName, ErrSchemaNotFound)
	}
	return im.fieldsFromSchema(ref.Value)
}

func (im *Importer) fieldsFromSchema(schema *openapi3.Schema) ([]model.FieldDefinition, error) {
	if !schemaType(schema.Type, "object") || len(schema.Properties) == 0 {
		return nil, errors.New("schemaimport: schema is not an object with properties")
	}

	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]model.FieldDefinition, 0, len(names))
	for _, name := range names {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		field, ok, err := im.fieldFromProperty(name, ref.Value, required[name])
		if err != nil {
			return nil, err
		}
		if ok {
			fields = append(fields, field)
		}
	}
	if len(fields) == 0 {
		return nil, errors.New("schemaimport: no convertible properties")
	}
	return fields, nil
}

// fieldFromProperty maps one property to a field. Nested objects have no
// field equivalent and are skipped, not failed.
func (im *Importer) fieldFromProperty(name string, prop *openapi3.Schema, required bool) (model.FieldDefinition, bool, error) {
	kind, patch, ok := propertyKind(prop)
	if !ok {
		return model.FieldDefinition{}, false, nil
	}

	patch.Label = model.String(labelFor(name, prop.Title))
	patch.Required = model.Bool(required)
	if prop.Description != "" {
		patch.Description = model.String(prop.Description)
	}

	field, err := im.factory.NewField(kind, patch)
	if err != nil {
		return model.FieldDefinition{}, false, fmt.Errorf("schemaimport: property %q: %w", name, err)
	}
	field.ID = name
	return field, true, nil
}

func propertyKind(prop *openapi3.Schema) (model.FieldKind, model.FieldPatch, bool) {
	var patch model.FieldPatch

	switch {
	case schemaType(prop.Type, "string"):
		if len(prop.Enum) > 0 {
			patch.Options = model.Strings(enumStrings(prop.Enum))
			return model.FieldKindDropdown, patch, true
		}
		if prop.MinLength != 0 {
			patch.MinLength = model.Int(int(prop.MinLength))
		}
		if prop.MaxLength != nil {
			patch.MaxLength = model.Int(int(*prop.MaxLength))
		}
		if prop.Pattern != "" {
			patch.Pattern = model.String(prop.Pattern)
		}
		switch prop.Format {
		case "email":
			return model.FieldKindEmail, patch, true
		case "uri", "url":
			return model.FieldKindURL, patch, true
		case "phone":
			return model.FieldKindPhone, patch, true
		case "binary", "byte":
			return model.FieldKindFile, model.FieldPatch{}, true
		default:
			return model.FieldKindText, patch, true
		}

	case schemaType(prop.Type, "number"), schemaType(prop.Type, "integer"):
		if prop.Min != nil {
			patch.Min = model.Float(*prop.Min)
		}
		if prop.Max != nil {
			patch.Max = model.Float(*prop.Max)
		}
		if prop.MultipleOf != nil {
			patch.Step = model.Float(*prop.MultipleOf)
		}
		return model.FieldKindNumber, patch, true

	case schemaType(prop.Type, "array"):
		if prop.Items == nil || prop.Items.Value == nil {
			return "", patch, false
		}
		items := prop.Items.Value
		if items.Format == "binary" || items.Format == "byte" {
			patch.Multiple = model.Bool(true)
			return model.FieldKindFile, patch, true
		}
		if len(items.Enum) == 0 {
			return "", patch, false
		}
		patch.Options = model.Strings(enumStrings(items.Enum))
		if prop.MaxItems != nil {
			patch.MaxSelections = model.Int(int(*prop.MaxItems))
		}
		return model.FieldKindMultiselect, patch, true

	default:
		return "", patch, false
	}
}

func schemaType(types *openapi3.Types, want string) bool {
	return types != nil && types.Is(want)
}

func enumStrings(enum []any) []string {
	out := make([]string, 0, len(enum))
	for _, v := range enum {
		if s, ok := v.(string); ok {
			out = append(out, s)
		} else {
			out = append(out, fmt.Sprint(v))
		}
	}
	return out
}

// labelFor derives a human label from the property name when the schema
// carries no title: "first_name" and "firstName" both become "First Name".
func labelFor(name, title string) string {
	if title != "" {
		return title
	}

	var words []string
	var current strings.Builder
	flush := func() {
		if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
	}
	for _, r := range name {
		switch {
		case r == '_' || r == '-' || r == ' ':
			flush()
		case unicode.IsUpper(r):
			flush()
			current.WriteRune(unicode.ToLower(r))
		default:
			current.WriteRune(r)
		}
	}
	flush()

	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	if len(words) == 0 {
		return name
	}
	return strings.Join(words, " ")
}
