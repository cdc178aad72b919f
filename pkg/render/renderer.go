package render

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Mode selects the data-binding semantics of a render pass.
type Mode string

const (
	// ModePreview is the authoring canvas: live values, inline errors,
	// selection chrome.
	ModePreview Mode = "preview"
	// ModeViewer is the standalone public form: same markup, but bound for
	// submission instead of preview.
	ModeViewer Mode = "viewer"
)

// Form is the renderable unit handed to renderers: the working field
// sequence plus the form-level settings and titling.
type Form struct {
	Title       string
	Description string
	Settings    model.FormSettings
	Fields      []model.FieldDefinition
}

// RenderOptions describe per-request data renderers can use without mutating
// the form. Values and Errors are keyed by field id.
type RenderOptions struct {
	Mode   Mode
	Values map[string]any
	Errors map[string][]string
	// SelectedID highlights the field whose properties the editor panel
	// shows. Preview mode only.
	SelectedID string
	// Theme is the resolved go-theme configuration for this pass. Nil means
	// unthemed output.
	Theme *theme.RendererConfig
}

// Renderer turns a form plus options into output bytes. Implementations
// register with the Registry under their Name.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form Form, opts RenderOptions) ([]byte, error)
}
