package registry

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// overlayDocument is the YAML shape for catalog customisation files:
//
//	types:
//	  - type: dropdown
//	    name: Choice
//	    defaultOptions: [Yes, No]
//	  - type: rating
//	    name: Rating
//	    defaultLabel: Rate us
type overlayDocument struct {
	Types []overlayEntry `yaml:"types"`
}

type overlayEntry struct {
	Type               string   `yaml:"type"`
	Name               string   `yaml:"name"`
	Icon               string   `yaml:"icon"`
	Description        string   `yaml:"description"`
	DefaultLabel       string   `yaml:"defaultLabel"`
	DefaultPlaceholder string   `yaml:"defaultPlaceholder"`
	DefaultOptions     []string `yaml:"defaultOptions"`
}

// LoadOverlay reads a YAML catalog overlay and applies it to the registry.
// Known kinds are customised field-by-field (empty overlay values keep the
// builtin); unknown kinds become new entries and must carry a name and a
// default label. Returns the number of entries applied.
func (r *Registry) LoadOverlay(src io.Reader) (int, error) {
	if r == nil {
		return 0, fmt.Errorf("registry: overlay applied to nil registry")
	}

	raw, err := io.ReadAll(src)
	if err != nil {
		return 0, fmt.Errorf("registry: read overlay: %w", err)
	}

	var doc overlayDocument
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return 0, fmt.Errorf("registry: parse overlay: %w", err)
	}

	applied := 0
	for idx, entry := range doc.Types {
		kind := model.FieldKind(strings.TrimSpace(entry.Type))
		if kind == "" {
			return applied, fmt.Errorf("registry: overlay entry %d: type is required", idx)
		}

		base, known := r.Get(kind)
		if !known {
			if strings.TrimSpace(entry.Name) == "" || strings.TrimSpace(entry.DefaultLabel) == "" {
				return applied, fmt.Errorf("registry: overlay entry %d: new kind %q needs name and defaultLabel", idx, kind)
			}
			base = model.FieldType{Kind: kind}
		}

		if entry.Name != "" {
			base.Name = entry.Name
		}
		if entry.Icon != "" {
			base.Icon = entry.Icon
		}
		if entry.Description != "" {
			base.Description = entry.Description
		}
		if entry.DefaultLabel != "" {
			base.DefaultLabel = entry.DefaultLabel
		}
		if entry.DefaultPlaceholder != "" {
			base.DefaultPlaceholder = entry.DefaultPlaceholder
		}
		if len(entry.DefaultOptions) > 0 {
			base.DefaultOptions = append([]string(nil), entry.DefaultOptions...)
		}

		r.Register(base, nil)
		applied++
	}
	return applied, nil
}
