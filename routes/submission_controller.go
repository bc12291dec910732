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

func ListSubmissions(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formId := chi.URLParam(r, "id")

		form, err := app.Forms.Get(r.Context(), formId)
		if err != nil {
			httpx.Fail(w, r, err)
			return
		}
		if form == nil {
			httpx.Fail(w, r, httpx.NotFound("Form not found"))
			return
		}

		submissions, err := app.Submissions.ListByForm(r.Context(), formId)
		if err != nil {
			httpx.Fail(w, r, err)
			return
		}

		httpx.OK(w, r, submissions)
	}
}

func CreateSubmission(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formId := chi.URLParam(r, "id")

		var req model.CreateSubmissionRequest
		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			httpx.Fail(w, r, httpx.BadRequest("invalid request body"))
			return
		}
		if req.Payload == nil {
			httpx.Fail(w, r, httpx.Validation(validation.Missing("payload")))
			return
		}

		// the form must exist before any row is written
		form, err := app.Forms.Get(r.Context(), formId)
		if err != nil {
			httpx.Fail(w, r, err)
			return
		}
		if form == nil {
			httpx.Fail(w, r, httpx.NotFound("Form not found"))
			return
		}

		submission, err := app.Submissions.Create(r.Context(), formId, req.Payload)
		if err != nil {
			httpx.Fail(w, r, err)
			return
		}

		httpx.Created(w, r, submission)
	}
}

func GetSubmission(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		submission, err := app.Submissions.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			httpx.Fail(w, r, err)
			return
		}
		if submission == nil {
			httpx.Fail(w, r, httpx.NotFound("Submission not found"))
			return
		}

		httpx.OK(w, r, submission)
	}
}
