package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Wire assembles the HTTP surface: an admin API over the forms backend and
// the public viewer for shared forms.
func Wire(app App) http.Handler {
	root := chi.NewRouter()
	root.Use(middleware.Logger, middleware.Recoverer)

	root.Mount("/api", apiRouter(app))

	root.Get("/f/{shareId}", PublicViewForm(app))
	root.Post("/f/{shareId}/submissions", PublicSubmitForm(app))

	return root
}

func apiRouter(app App) http.Handler {
	api := chi.NewRouter()

	api.Get("/forms/shared/{shareId}", PublicGetSharedForm(app))

	api.Route("/admin", func(r chi.Router) {
		// CRUD forms
		r.Post("/forms", CreateForm(app))
		r.Get("/forms", ListForms(app))
		r.Get(`/forms/{id:^\d+$}`, GetFormByID(app))
		r.Put(`/forms/{id:^\d+$}`, UpdateForm(app))
		r.Delete(`/forms/{id:^\d+$}`, DeleteForm(app))
		r.Post(`/forms/{id:^\d+$}/share`, ShareForm(app))
		r.Get(`/forms/{id:^\d+$}/preview`, PreviewForm(app))

		r.Get("/submissions", SearchSubmissions(app))
		r.Get("/submissions/export", ExportSubmissions(app))

		r.Get("/theme", GetThemePreference(app))
		r.Put("/theme", SetThemePreference(app))
	})

	return api
}
