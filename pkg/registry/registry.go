package registry

import (
	"fmt"
	"strings"
	"sync"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// DefaultsFunc applies kind-specific attribute defaults to a freshly created
// field, beyond the label/placeholder/options the catalog entry already
// carries. Adding a field kind is a registration, not a switch edit.
type DefaultsFunc func(*model.FieldDefinition)

type entry struct {
	fieldType model.FieldType
	defaults  DefaultsFunc
	order     int
}

// Registry is the read-only field-type catalog the factory and renderers
// consult. Lookups never fail loudly: a missing kind reports ok=false so the
// factory can distinguish "unknown kind" from "no customisation".
type Registry struct {
	mu      sync.RWMutex
	entries map[model.FieldKind]entry
}

// New constructs a registry with the built-in catalog registered.
func New() *Registry {
	reg := &Registry{
		entries: make(map[model.FieldKind]entry),
	}
	reg.registerBuiltins()
	return reg
}

// Register adds or replaces a catalog entry. The latest registration wins,
// matching how overlays customise builtins. Entries with an empty kind are
// ignored.
func (r *Registry) Register(fieldType model.FieldType, defaults DefaultsFunc) {
	if r == nil {
		return
	}
	kind := model.FieldKind(strings.TrimSpace(string(fieldType.Kind)))
	if kind == "" {
		return
	}
	fieldType.Kind = kind

	r.mu.Lock()
	defer r.mu.Unlock()

	order := len(r.entries)
	if existing, ok := r.entries[kind]; ok {
		order = existing.order
		if defaults == nil {
			defaults = existing.defaults
		}
	}
	r.entries[kind] = entry{fieldType: fieldType, defaults: defaults, order: order}
}

// Get retrieves the catalog entry for a kind.
func (r *Registry) Get(kind model.FieldKind) (model.FieldType, bool) {
	if r == nil {
		return model.FieldType{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[kind]
	return e.fieldType, ok
}

// Defaults returns the kind-specific defaults hook, which may be nil even for
// a registered kind.
func (r *Registry) Defaults(kind model.FieldKind) (DefaultsFunc, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[kind]
	return e.defaults, ok
}

// Has reports whether a kind is registered.
func (r *Registry) Has(kind model.FieldKind) bool {
	_, ok := r.Get(kind)
	return ok
}

// List returns the catalog in registration order, the order a palette
// displays it.
func (r *Registry) List() []model.FieldType {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.FieldType, len(r.entries))
	for _, e := range r.entries {
		out[e.order] = e.fieldType
	}
	return out
}

func (r *Registry) registerBuiltins() {
	r.Register(model.FieldType{
		Kind:               model.FieldKindText,
		Name:               "Text",
		Icon:               "text",
		Description:        "Single line of text",
		DefaultLabel:       "Text Field",
		DefaultPlaceholder: "Enter text",
	}, nil)

	r.Register(model.FieldType{
		Kind:               model.FieldKindEmail,
		Name:               "Email",
		Icon:               "mail",
		Description:        "Email address with format checking",
		DefaultLabel:       "Email Address",
		DefaultPlaceholder: "you@example.com",
	}, nil)

	r.Register(model.FieldType{
		Kind:               model.FieldKindPhone,
		Name:               "Phone",
		Icon:               "phone",
		Description:        "Phone number",
		DefaultLabel:       "Phone Number",
		DefaultPlaceholder: "(555) 000-0000",
	}, func(f *model.FieldDefinition) {
		f.PhoneFormat = model.PhoneFormatUS
	})

	r.Register(model.FieldType{
		Kind:               model.FieldKindTextarea,
		Name:               "Long Text",
		Icon:               "align-left",
		Description:        "Multi-line text answer",
		DefaultLabel:       "Long Answer",
		DefaultPlaceholder: "Type your answer",
	}, func(f *model.FieldDefinition) {
		f.Rows = 4
	})

	r.Register(model.FieldType{
		Kind:               model.FieldKindNumber,
		Name:               "Number",
		Icon:               "hash",
		Description:        "Numeric value with optional bounds",
		DefaultLabel:       "Number",
		DefaultPlaceholder: "0",
	}, nil)

	r.Register(model.FieldType{
		Kind:               model.FieldKindURL,
		Name:               "URL",
		Icon:               "link",
		Description:        "Web address",
		DefaultLabel:       "Website",
		DefaultPlaceholder: "https://example.com",
	}, nil)

	r.Register(model.FieldType{
		Kind:         model.FieldKindFile,
		Name:         "File Upload",
		Icon:         "upload",
		Description:  "One or more file attachments",
		DefaultLabel: "Attachment",
	}, func(f *model.FieldDefinition) {
		f.MaxSize = 10
	})

	r.Register(model.FieldType{
		Kind:           model.FieldKindDropdown,
		Name:           "Dropdown",
		Icon:           "chevron-down",
		Description:    "Pick one option",
		DefaultLabel:   "Dropdown",
		DefaultOptions: []string{"Option 1", "Option 2", "Option 3"},
	}, func(f *model.FieldDefinition) {
		if len(f.Options) == 0 {
			f.Options = []string{"Option 1", "Option 2", "Option 3"}
		}
	})

	r.Register(model.FieldType{
		Kind:           model.FieldKindMultiselect,
		Name:           "Multi Select",
		Icon:           "list-checks",
		Description:    "Pick one or more options",
		DefaultLabel:   "Multi Select",
		DefaultOptions: []string{"Option 1", "Option 2", "Option 3"},
	}, func(f *model.FieldDefinition) {
		if len(f.Options) == 0 {
			f.Options = []string{"Option 1", "Option 2", "Option 3"}
		}
	})
}

// MustGet panics on a missing kind. Useful for init-time wiring.
func (r *Registry) MustGet(kind model.FieldKind) model.FieldType {
	fieldType, ok := r.Get(kind)
	if !ok {
		panic(fmt.Sprintf("registry: field kind %q not registered", kind))
	}
	return fieldType
}
