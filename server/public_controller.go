package server

import (
	"errors"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/goliatone/go-formbuilder/internal/httpx"
	"github.com/goliatone/go-formbuilder/internal/log"
	"github.com/goliatone/go-formbuilder/pkg/model"
	formrender "github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/services"
)

// PublicViewForm renders a shared form as HTML using the stored theme
// preference.
func PublicViewForm(app App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shareID := chi.URLParam(r, "shareId")

		form, err := app.Backend.GetSharedForm(r.Context(), shareID)
		if errors.Is(err, services.ErrNotFound) {
			httpx.LogNotFound(w, "backend.get_shared_form", shareID)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "backend.get_shared_form", err)
			return
		}

		preference, err := app.Store.ThemePreference(r.Context())
		if err != nil {
			httpx.LogInternalError(w, "store.get_theme", err)
			return
		}

		html, err := app.Renderer.Render(r.Context(), viewerForm(form), formrender.RenderOptions{
			Mode:  formrender.ModeViewer,
			Theme: formrender.ResolveTheme(app.Themes, preference),
		})
		if err != nil {
			httpx.LogInternalError(w, "render.form", err)
			return
		}

		w.Header().Set("Content-Type", app.Renderer.ContentType())
		w.Write(html)
	}
}

// PublicGetSharedForm returns the shared form definition as JSON for clients
// that render it themselves.
func PublicGetSharedForm(app App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shareID := chi.URLParam(r, "shareId")

		form, err := app.Backend.GetSharedForm(r.Context(), shareID)
		if errors.Is(err, services.ErrNotFound) {
			httpx.LogNotFound(w, "backend.get_shared_form", shareID)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "backend.get_shared_form", err)
			return
		}
		render.JSON(w, r, form)
	}
}

// PublicSubmitForm validates a submission against the shared form and
// records it. Validation failures return the per-field errors and leave no
// trace in the backend.
func PublicSubmitForm(app App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shareID := chi.URLParam(r, "shareId")

		form, err := app.Backend.GetSharedForm(r.Context(), shareID)
		if errors.Is(err, services.ErrNotFound) {
			httpx.LogNotFound(w, "backend.get_shared_form", shareID)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "backend.get_shared_form", err)
			return
		}

		values := map[string]any{}
		if err := render.DecodeJSON(r.Body, &values); err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		sink := app.Backend.SinkFor(form.ID, services.SubmissionMeta{
			IPAddress: remoteIP(r),
			UserAgent: r.UserAgent(),
			Referrer:  r.Referer(),
		})

		session := formrender.NewSession(viewerForm(form), sink)
		for _, field := range form.Fields {
			if value, ok := values[field.ID]; ok {
				session.SetValue(field.ID, value)
			}
		}

		result, err := session.Submit(r.Context())
		var verr *formrender.ValidationError
		if errors.As(err, &verr) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, map[string]any{
				"errors": verr.Fields,
			})
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "backend.record_submission", err)
			return
		}

		response := map[string]any{
			"message": result.Message,
		}
		if result.RedirectURL != "" {
			response["redirectUrl"] = result.RedirectURL
			response["redirectAfterSeconds"] = int(result.RedirectAfter.Seconds())
		}
		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, response)
	}
}

func viewerForm(form model.FormDefinition) formrender.Form {
	return formrender.Form{
		Title:       form.Title,
		Description: form.Description,
		Settings:    form.Settings,
		Fields:      form.Fields,
	}
}

func remoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
