package routes

import (
	"net/http"

	"github.com/mbolis/quick-forms/app"
	"github.com/mbolis/quick-forms/database"
	"github.com/mbolis/quick-forms/httpx"
	"github.com/mbolis/quick-forms/validation"
)

type healthPayload struct {
	Service string `json:"service" validate:"required"`
	Time    string `json:"time" validate:"required"`
}

func Health(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := healthPayload{
			Service: "api",
			Time:    database.Now(),
		}
		// the payload is checked against its own shape before going out
		if validation.Check(&data) != nil {
			httpx.Fail(w, r, httpx.Internal("Invalid health payload"))
			return
		}

		httpx.OK(w, r, data)
	}
}
