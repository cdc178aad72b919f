package render

import (
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// Theme preference values persisted by the store and accepted by
// ResolveTheme.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

const builderThemeName = "formbuilder"

// BuilderManifest returns the builtin go-theme manifest: a light base with a
// dark variant, tokens only. Hosts with their own design system register a
// different manifest and selector.
func BuilderManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    builderThemeName,
		Version: "1.0.0",
		Tokens: map[string]string{
			"bg":       "#ffffff",
			"fg":       "#1a1a1a",
			"accent":   "#4f46e5",
			"border":   "#d4d4d8",
			"error":    "#dc2626",
			"muted":    "#71717a",
			"field-bg": "#fafafa",
		},
		Variants: map[string]theme.Variant{
			ThemeDark: {
				Tokens: map[string]string{
					"bg":       "#18181b",
					"fg":       "#fafafa",
					"border":   "#3f3f46",
					"muted":    "#a1a1aa",
					"field-bg": "#27272a",
				},
			},
			ThemeLight: {},
		},
	}
}

// manifestSelector serves Selections straight from a single manifest,
// enough for the builtin theme without a full provider registry.
type manifestSelector struct {
	manifest *theme.Manifest
}

func (s manifestSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	if s.manifest == nil {
		return nil, fmt.Errorf("render: no theme manifest configured")
	}
	if name != "" && name != s.manifest.Name {
		return nil, fmt.Errorf("render: unknown theme %q", name)
	}
	if variant != "" {
		if _, ok := s.manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("render: theme %q has no variant %q", s.manifest.Name, variant)
		}
	}
	return &theme.Selection{
		Theme:    s.manifest.Name,
		Variant:  variant,
		Manifest: s.manifest,
	}, nil
}

// DefaultThemeSelector returns a selector over the builtin manifest.
func DefaultThemeSelector() theme.ThemeSelector {
	return manifestSelector{manifest: BuilderManifest()}
}

// ResolveTheme turns a stored preference ("dark"|"light") into the renderer
// config passed through RenderOptions. A nil selector uses the builtin
// manifest; an unknown preference falls back to the manifest base rather
// than failing the render.
func ResolveTheme(selector theme.ThemeSelector, preference string) *theme.RendererConfig {
	if selector == nil {
		selector = DefaultThemeSelector()
	}

	preference = strings.TrimSpace(strings.ToLower(preference))
	selection, err := selector.Select(builderThemeName, preference)
	if err != nil {
		selection, err = selector.Select(builderThemeName, "")
		if err != nil {
			return nil
		}
	}
	return ConfigFromSelection(selection)
}

// ConfigFromSelection flattens a go-theme selection into the RendererConfig
// renderers consume: base tokens overlaid with the variant's, CSS variables
// derived from tokens, partials merged the same way.
func ConfigFromSelection(selection *theme.Selection) *theme.RendererConfig {
	if selection == nil || selection.Manifest == nil {
		return nil
	}
	manifest := selection.Manifest

	tokens := mergeStringMaps(manifest.Tokens, nil)
	partials := mergeStringMaps(manifest.Templates, nil)
	if selection.Variant != "" {
		if variant, ok := manifest.Variants[selection.Variant]; ok {
			tokens = mergeStringMaps(tokens, variant.Tokens)
			partials = mergeStringMaps(partials, variant.Templates)
		}
	}

	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		cssVars["--"+key] = value
	}

	return &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Tokens:   tokens,
		CSSVars:  cssVars,
		Partials: partials,
	}
}

func mergeStringMaps(base, overlay map[string]string) map[string]string {
	if len(base) == 0 && len(overlay) == 0 {
		return nil
	}
	out := make(map[string]string, len(base)+len(overlay))
	for key, value := range base {
		out[key] = value
	}
	for key, value := range overlay {
		out[key] = value
	}
	return out
}
