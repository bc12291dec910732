package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/mbolis/quick-forms/app"
	"github.com/mbolis/quick-forms/httpx"
	"github.com/mbolis/quick-forms/model"
	"github.com/mbolis/quick-forms/validation"
)

func ListForms(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		forms, err := app.Forms.List(r.Context())
		if err != nil {
			httpx.Fail(w, r, err)
			return
		}

		httpx.OK(w, r, forms)
	}
}

func CreateForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req model.CreateFormRequest
		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			httpx.Fail(w, r, httpx.BadRequest("invalid request body"))
			return
		}
		if details := validation.Check(&req); details != nil {
			httpx.Fail(w, r, httpx.Validation(details))
			return
		}

		form, err := app.Forms.Create(r.Context(), req.Name, req.Description)
		if err != nil {
			httpx.Fail(w, r, err)
			return
		}

		httpx.Created(w, r, form)
	}
}

func GetForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, err := app.Forms.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			httpx.Fail(w, r, err)
			return
		}
		if form == nil {
			httpx.Fail(w, r, httpx.NotFound("Form not found"))
			return
		}

		httpx.OK(w, r, form)
	}
}

func UpdateForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req model.UpdateFormRequest
		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			httpx.Fail(w, r, httpx.BadRequest("invalid request body"))
			return
		}
		if details := validation.Check(&req); details != nil {
			httpx.Fail(w, r, httpx.Validation(details))
			return
		}

		form, err := app.Forms.Update(r.Context(), chi.URLParam(r, "id"), req)
		if err != nil {
			httpx.Fail(w, r, err)
			return
		}
		if form == nil {
			httpx.Fail(w, r, httpx.NotFound("Form not found"))
			return
		}

		httpx.OK(w, r, form)
	}
}

func ReplaceSchema(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req model.ReplaceSchemaRequest
		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			httpx.Fail(w, r, httpx.BadRequest("invalid request body"))
			return
		}
		details := validation.Check(&req)
		if details == nil && req.Fields == nil {
			details = validation.Missing("fields")
		}
		if details != nil {
			httpx.Fail(w, r, httpx.Validation(details))
			return
		}

		form, err := app.Forms.ReplaceSchema(r.Context(), chi.URLParam(r, "id"), req)
		if err != nil {
			httpx.Fail(w, r, err)
			return
		}
		if form == nil {
			httpx.Fail(w, r, httpx.NotFound("Form not found"))
			return
		}

		httpx.OK(w, r, form)
	}
}

func DeleteForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		deleted, err := app.Forms.Delete(r.Context(), id)
		if err != nil {
			httpx.Fail(w, r, err)
			return
		}
		if !deleted {
			httpx.Fail(w, r, httpx.NotFound("Form not found"))
			return
		}

		httpx.OK(w, r, map[string]any{
			"id":      id,
			"deleted": true,
		})
	}
}
