package server

import (
	"fmt"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/renderers/vanilla"
	"github.com/goliatone/go-formbuilder/pkg/services"
	"github.com/goliatone/go-formbuilder/pkg/store"
)

// defaultRendererName is the renderer the public viewer resolves when no
// other format is requested.
const defaultRendererName = "vanilla"

// App bundles the collaborators the route handlers need: the snapshot store,
// the forms backend, the renderer registry, and the theme selector feeding
// the render passes.
type App struct {
	Store     *store.Store
	Backend   *services.Mock
	Renderers *render.Registry
	Renderer  render.Renderer
	Themes    theme.ThemeSelector
}

// NewApp wires an App with the builtin renderers registered and the vanilla
// renderer resolved as the default.
func NewApp(st *store.Store, backend *services.Mock) (App, error) {
	htmlRenderer, err := vanilla.New()
	if err != nil {
		return App{}, fmt.Errorf("server: create renderer: %w", err)
	}

	renderers := render.NewRegistry()
	if err := renderers.Register(htmlRenderer); err != nil {
		return App{}, fmt.Errorf("server: register renderer: %w", err)
	}

	renderer, err := renderers.Get(defaultRendererName)
	if err != nil {
		return App{}, fmt.Errorf("server: resolve default renderer: %w", err)
	}

	return App{
		Store:     st,
		Backend:   backend,
		Renderers: renderers,
		Renderer:  renderer,
		Themes:    render.DefaultThemeSelector(),
	}, nil
}
