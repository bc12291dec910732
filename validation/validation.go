// Package validation checks request payloads against their declared shapes
// before they reach a repository. A failed check produces a list of
// field-level violations suitable for the error envelope.
package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func init() {
	// report paths by json name, not Go field name
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

type Violation struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Check validates req against its struct tags and returns nil when it
// passes, or one violation per failing field.
func Check(req any) []Violation {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []Violation{{Message: err.Error()}}
	}

	violations := make([]Violation, len(fieldErrors))
	for i, fe := range fieldErrors {
		violations[i] = Violation{
			Path:    pathOf(fe),
			Message: messageOf(fe),
		}
	}
	return violations
}

// Missing reports a violation for a key that must be present in the request
// body, used where struct tags cannot tell a missing key from an empty one.
func Missing(path string) []Violation {
	return []Violation{{Path: path, Message: "Required"}}
}

func pathOf(fe validator.FieldError) string {
	path := fe.Namespace()
	if i := strings.IndexByte(path, '.'); i >= 0 {
		path = path[i+1:]
	}
	return path
}

func messageOf(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Required"
	case "min":
		return fmt.Sprintf("must contain at least %s character(s)", fe.Param())
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(fe.Param()), ", ")
	default:
		return "invalid value"
	}
}
