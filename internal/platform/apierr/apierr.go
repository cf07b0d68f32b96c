package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Machine-readable codes surfaced to clients.
const (
	CodeIDExists          = "idexists"
	CodeIDNull            = "idnull"
	CodeIDInvalid         = "idinvalid"
	CodeIDNotFound        = "idnotfound"
	CodeReferenceNotFound = "referencenotfound"
	CodeInvalidBody       = "invalid_body"
	CodeNotFound          = "notfound"
	CodeInternal          = "internal_error"
)

type Error struct {
	Status int
	Code   string
	Err    error
	// Entity names the resource the error is about, when known.
	Entity string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

// IsValidation reports whether the error is a client-side validation failure.
func (e *Error) IsValidation() bool {
	return e != nil && e.Status == http.StatusBadRequest
}

// Validation builds a 400 error for the given entity.
func Validation(entity, code, msg string) *Error {
	return &Error{Status: http.StatusBadRequest, Code: code, Err: errors.New(msg), Entity: entity}
}

// NotFound builds a 404 error for the given entity.
func NotFound(entity string, err error) *Error {
	if err == nil {
		err = fmt.Errorf("%s not found", entity)
	}
	return &Error{Status: http.StatusNotFound, Code: CodeNotFound, Err: err, Entity: entity}
}
