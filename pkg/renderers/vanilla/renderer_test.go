package vanilla

import (
	"context"
	"io"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
)

type captureEngine struct {
	name string
	data any
}

func (c *captureEngine) Render(name string, data any, _ ...io.Writer) (string, error) {
	return c.RenderTemplate(name, data)
}

func (c *captureEngine) RenderTemplate(name string, data any, _ ...io.Writer) (string, error) {
	c.name = name
	c.data = data
	return "<form></form>", nil
}

func (c *captureEngine) RenderString(string, any, ...io.Writer) (string, error) {
	return "", nil
}

func (c *captureEngine) RegisterFilter(string, func(any, any) (any, error)) error {
	return nil
}

func (c *captureEngine) GlobalContext(any) error {
	return nil
}

func testForm() render.Form {
	return render.Form{
		Title:    "Feedback",
		Settings: model.DefaultSettings(),
		Fields: []model.FieldDefinition{
			{ID: "f1", Type: model.FieldKindText, Label: "Name", Placeholder: "Your name"},
			{ID: "f2", Type: model.FieldKindDropdown, Label: "Topic", Options: []string{"Sales", "Support"}},
		},
	}
}

func TestRender_UsesFormTemplate(t *testing.T) {
	engine := &captureEngine{}
	r, err := New(WithTemplateRenderer(engine))
	if err != nil {
		t.Fatal(err)
	}

	out, err := r.Render(context.Background(), testForm(), render.RenderOptions{Mode: render.ModeViewer})
	if err != nil {
		t.Fatal(err)
	}
	if len(out) == 0 {
		t.Fatal("empty output")
	}
	if engine.name != "templates/form.tmpl" {
		t.Fatalf("template = %q", engine.name)
	}
}

func TestBuildView_SanitisesAuthoredText(t *testing.T) {
	r, err := New(WithTemplateRenderer(&captureEngine{}))
	if err != nil {
		t.Fatal(err)
	}

	form := testForm()
	form.Fields[0].Label = `Name<script>alert(1)</script>`

	view := r.buildView(form, render.RenderOptions{})
	fields := view["fields"].([]map[string]any)
	if got := fields[0]["label"].(string); got != "Name" {
		t.Fatalf("script tag survived sanitising: %q", got)
	}
}

func TestBuildView_BindsValuesErrorsAndSelection(t *testing.T) {
	r, err := New(WithTemplateRenderer(&captureEngine{}))
	if err != nil {
		t.Fatal(err)
	}

	view := r.buildView(testForm(), render.RenderOptions{
		Mode:       render.ModePreview,
		SelectedID: "f1",
		Values:     map[string]any{"f1": "Ada", "f2": "Support"},
		Errors:     map[string][]string{"f1": {"Name is required"}},
	})

	fields := view["fields"].([]map[string]any)
	if fields[0]["value"] != "Ada" {
		t.Fatalf("value binding: %v", fields[0]["value"])
	}
	if errs := fields[0]["errors"].([]string); len(errs) != 1 {
		t.Fatalf("error binding: %v", errs)
	}
	if fields[0]["selected"] != true {
		t.Fatal("selection chrome missing in preview mode")
	}

	options := fields[1]["options"].([]map[string]any)
	if options[1]["selected"] != true || options[0]["selected"] != false {
		t.Fatalf("option selection: %v", options)
	}
}

func TestBuildView_ThemeVariables(t *testing.T) {
	r, err := New(WithTemplateRenderer(&captureEngine{}))
	if err != nil {
		t.Fatal(err)
	}

	view := r.buildView(testForm(), render.RenderOptions{
		Theme: &theme.RendererConfig{
			Variant: render.ThemeDark,
			CSSVars: map[string]string{"--bg": "#18181b"},
		},
	})

	themeView := view["theme"].(map[string]any)
	if themeView["variant"] != render.ThemeDark {
		t.Fatalf("variant = %v", themeView["variant"])
	}
	style := themeView["style"].(string)
	if !strings.Contains(style, "--bg: #18181b;") {
		t.Fatalf("style = %q", style)
	}
}
