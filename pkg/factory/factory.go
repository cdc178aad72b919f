package factory

import (
	"errors"
	"fmt"

	"github.com/rs/xid"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/registry"
)

// ErrUnsupportedFieldType is returned when a field kind is not present in the
// registry catalog. Callers must not proceed with a partial field.
var ErrUnsupportedFieldType = errors.New("factory: unsupported field type")

// IDFunc produces field identifiers. The only contract is process-lifetime
// uniqueness.
type IDFunc func() string

// Option customises factory construction.
type Option func(*Factory)

// WithIDFunc replaces the id generator, mainly so tests can make ids
// deterministic.
func WithIDFunc(fn IDFunc) Option {
	return func(f *Factory) {
		if fn != nil {
			f.newID = fn
		}
	}
}

// Factory turns a field-kind tag into a fully defaulted FieldDefinition.
// Pure aside from id generation; no I/O.
type Factory struct {
	registry *Registry
	newID    IDFunc
}

// Registry is the catalog surface the factory needs. *registry.Registry
// satisfies it.
type Registry = registry.Registry

// New constructs a factory over the given catalog. A nil registry gets the
// builtin catalog so the zero-config path just works.
func New(reg *Registry, options ...Option) *Factory {
	if reg == nil {
		reg = registry.New()
	}
	f := &Factory{
		registry: reg,
		newID:    defaultID,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	return f
}

// NewField creates a field of the given kind: registry defaults first, then
// the kind's defaults hook, then the caller's overrides, shallow-applied
// last. Unknown kinds fail with ErrUnsupportedFieldType.
func (f *Factory) NewField(kind model.FieldKind, overrides ...model.FieldPatch) (model.FieldDefinition, error) {
	fieldType, ok := f.registry.Get(kind)
	if !ok {
		return model.FieldDefinition{}, fmt.Errorf("%w: %q", ErrUnsupportedFieldType, kind)
	}

	field := model.FieldDefinition{
		ID:          f.newID(),
		Type:        fieldType.Kind,
		Label:       fieldType.DefaultLabel,
		Placeholder: fieldType.DefaultPlaceholder,
	}
	if len(fieldType.DefaultOptions) > 0 {
		field.Options = append([]string(nil), fieldType.DefaultOptions...)
	}

	if defaults, _ := f.registry.Defaults(kind); defaults != nil {
		defaults(&field)
	}

	for _, patch := range overrides {
		patch.Apply(&field)
	}
	return field, nil
}

func defaultID() string {
	return "field_" + xid.New().String()
}
