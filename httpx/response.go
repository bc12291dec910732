package httpx

import (
	"net/http"

	"github.com/go-chi/render"
)

// Every endpoint answers with the same envelope: {ok: true, data} on
// success, {ok: false, error} on failure.
type envelope struct {
	Ok    bool       `json:"ok"`
	Data  any        `json:"data,omitempty"`
	Error *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func OK(w http.ResponseWriter, r *http.Request, data any) {
	writeJSON(w, r, http.StatusOK, envelope{Ok: true, Data: data})
}

func Created(w http.ResponseWriter, r *http.Request, data any) {
	writeJSON(w, r, http.StatusCreated, envelope{Ok: true, Data: data})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	render.Status(r, status)
	render.Respond(w, r, body)
}
