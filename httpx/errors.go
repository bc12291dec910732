package httpx

import (
	"net/http"

	"github.com/pkg/errors"

	"github.com/mbolis/quick-forms/log"
)

// Verbose makes 500 responses carry the underlying error message instead of
// a generic one. Enabled by the -dev flag.
var Verbose bool

// AppError is a failure with a known HTTP translation. Anything else that
// reaches Fail is treated as an internal error.
type AppError struct {
	Status  int
	Code    string
	Message string
	Details any
}

func (e *AppError) Error() string {
	return e.Message
}

func NotFound(message string) *AppError {
	return &AppError{
		Status:  http.StatusNotFound,
		Code:    "NOT_FOUND",
		Message: message,
	}
}

func BadRequest(message string) *AppError {
	return &AppError{
		Status:  http.StatusBadRequest,
		Code:    "BAD_REQUEST",
		Message: message,
	}
}

func Validation(details any) *AppError {
	return &AppError{
		Status:  http.StatusBadRequest,
		Code:    "VALIDATION_ERROR",
		Message: "Validation failed",
		Details: details,
	}
}

func Internal(message string) *AppError {
	return &AppError{
		Status:  http.StatusInternalServerError,
		Code:    "INTERNAL_SERVER_ERROR",
		Message: message,
	}
}

// Fail is the single place a failure becomes a response. Known application
// errors keep their status and code; everything else is logged and answered
// with a 500.
func Fail(w http.ResponseWriter, r *http.Request, err error) {
	var app *AppError
	if !errors.As(err, &app) {
		log.Errorf("internal error: %+v", err)

		message := "An unexpected error occurred"
		if Verbose {
			message = err.Error()
		}
		app = Internal(message)
	} else if app.Status >= http.StatusInternalServerError {
		log.Errorf("%s: %s", app.Code, app.Message)
	} else {
		log.Debugf("%s: %s", app.Code, app.Message)
	}

	writeJSON(w, r, app.Status, envelope{
		Ok: false,
		Error: &errorBody{
			Code:    app.Code,
			Message: app.Message,
			Details: app.Details,
		},
	})
}
