package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/goliatone/go-formbuilder/internal/httpx"
	"github.com/goliatone/go-formbuilder/internal/log"
	"github.com/goliatone/go-formbuilder/pkg/model"
	formrender "github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/services"
)

func CreateForm(app App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form := model.FormDefinition{}
		if err := render.DecodeJSON(r.Body, &form); err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}
		if form.Title == "" {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "request.validate", "title is required")
			return
		}

		created, err := app.Backend.CreateForm(r.Context(), form)
		if err != nil {
			httpx.LogInternalError(w, "backend.create_form", err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, created)
	}
}

func ListForms(app App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		forms, err := app.Backend.ListForms(r.Context())
		if err != nil {
			httpx.LogInternalError(w, "backend.list_forms", err)
			return
		}
		render.JSON(w, r, map[string]any{
			"forms": forms,
		})
	}
}

func GetFormByID(app App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formID, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		form, err := app.Backend.GetForm(r.Context(), formID)
		if errors.Is(err, services.ErrNotFound) {
			httpx.LogNotFound(w, "backend.get_form", formID)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "backend.get_form", err)
			return
		}
		render.JSON(w, r, form)
	}
}

type formPatchBody struct {
	Title       *string                  `json:"title"`
	Description *string                  `json:"description"`
	Settings    *model.FormSettings      `json:"settings"`
	Fields      *[]model.FieldDefinition `json:"fields"`
}

func UpdateForm(app App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formID, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		body := formPatchBody{}
		if err := render.DecodeJSON(r.Body, &body); err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		updated, err := app.Backend.UpdateForm(r.Context(), formID, services.FormPatch{
			Title:       body.Title,
			Description: body.Description,
			Settings:    body.Settings,
			Fields:      body.Fields,
		})
		if errors.Is(err, services.ErrNotFound) {
			httpx.LogNotFound(w, "backend.update_form", formID)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "backend.update_form", err)
			return
		}
		render.JSON(w, r, updated)
	}
}

func DeleteForm(app App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formID, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		err = app.Backend.DeleteForm(r.Context(), formID)
		if errors.Is(err, services.ErrNotFound) {
			httpx.LogNotFound(w, "backend.delete_form", formID)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "backend.delete_form", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func ShareForm(app App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formID, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		form, err := app.Backend.GetForm(r.Context(), formID)
		if errors.Is(err, services.ErrNotFound) {
			httpx.LogNotFound(w, "backend.share_form", formID)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "backend.share_form", err)
			return
		}

		link, err := app.Backend.GenerateShareableLink(r.Context(), form)
		if err != nil {
			httpx.LogInternalError(w, "backend.share_form.link", err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, link)
	}
}

// PreviewForm renders a form the way the authoring canvas shows it: preview
// mode, no submit binding. The renderer query parameter selects an alternate
// registered output format.
func PreviewForm(app App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formID, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		form, err := app.Backend.GetForm(r.Context(), formID)
		if errors.Is(err, services.ErrNotFound) {
			httpx.LogNotFound(w, "backend.preview_form", formID)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "backend.preview_form", err)
			return
		}

		renderer := app.Renderer
		if name := r.URL.Query().Get("renderer"); name != "" {
			renderer, err = app.Renderers.Get(name)
			if err != nil {
				httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "request.get_query_param.renderer", err.Error())
				return
			}
		}

		preference, err := app.Store.ThemePreference(r.Context())
		if err != nil {
			httpx.LogInternalError(w, "store.get_theme", err)
			return
		}

		session := formrender.NewSession(viewerForm(form), nil)
		opts := session.Options(formrender.ModePreview)
		opts.Theme = formrender.ResolveTheme(app.Themes, preference)

		out, err := renderer.Render(r.Context(), session.Form(), opts)
		if err != nil {
			httpx.LogInternalError(w, "render.form", err)
			return
		}

		w.Header().Set("Content-Type", renderer.ContentType())
		w.Write(out)
	}
}

func SearchSubmissions(app App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		filters := services.SubmissionFilters{}
		if raw := query.Get("formId"); raw != "" {
			formID, err := strconv.Atoi(raw)
			if err != nil {
				httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_query_param.formId")
				return
			}
			filters.FormID = &formID
		}
		if raw := query.Get("start"); raw != "" {
			start, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_query_param.start")
				return
			}
			filters.StartDate = &start
		}
		if raw := query.Get("end"); raw != "" {
			end, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_query_param.end")
				return
			}
			filters.EndDate = &end
		}

		subs, err := app.Backend.SearchSubmissions(r.Context(), query.Get("q"), filters)
		if err != nil {
			httpx.LogInternalError(w, "backend.search_submissions", err)
			return
		}
		render.JSON(w, r, map[string]any{
			"submissions": subs,
		})
	}
}

func ExportSubmissions(app App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var formID *int
		if raw := r.URL.Query().Get("formId"); raw != "" {
			id, err := strconv.Atoi(raw)
			if err != nil {
				httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_query_param.formId")
				return
			}
			formID = &id
		}

		export, err := app.Backend.ExportSubmissions(r.Context(), formID)
		if err != nil {
			httpx.LogInternalError(w, "backend.export_submissions", err)
			return
		}
		w.Header().Set("Content-Disposition", `attachment; filename="submissions.json"`)
		render.JSON(w, r, export)
	}
}

func GetThemePreference(app App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		theme, err := app.Store.ThemePreference(r.Context())
		if err != nil {
			httpx.LogInternalError(w, "store.get_theme", err)
			return
		}
		render.JSON(w, r, map[string]any{
			"theme": theme,
		})
	}
}

func SetThemePreference(app App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := struct {
			Theme string `json:"theme"`
		}{}
		if err := render.DecodeJSON(r.Body, &body); err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}
		if body.Theme != "light" && body.Theme != "dark" {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "request.validate", "theme must be light or dark")
			return
		}

		if err := app.Store.SetThemePreference(r.Context(), body.Theme); err != nil {
			httpx.LogInternalError(w, "store.set_theme", err)
			return
		}
		render.JSON(w, r, map[string]any{
			"theme": body.Theme,
		})
	}
}
