package http

import (
	"fmt"
	"net/http"
)

// AppError is an error the API reports to the client as-is. Status selects
// the HTTP status, the rest is serialized into the response data.
type AppError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Field   string                 `json:"field,omitempty"`
	Params  map[string]interface{} `json:"params,omitempty"`

	Status int   `json:"-"`
	Err    error `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Code + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
}

func (e *AppError) Unwrap() error { return e.Err }

// WithParam attaches a detail the client can act on (line number, window bounds).
func (e *AppError) WithParam(key string, value interface{}) *AppError {
	if e.Params == nil {
		e.Params = map[string]interface{}{}
	}
	e.Params[key] = value
	return e
}

// WithError records the cause. It is logged, never serialized.
func (e *AppError) WithError(err error) *AppError {
	e.Err = err
	return e
}

// BadRequestError reports malformed input, optionally tied to a request field.
func BadRequestError(field, message string) *AppError {
	return &AppError{Code: "ERR_BAD_REQUEST", Field: field, Message: message, Status: http.StatusBadRequest}
}

// UnprocessableError reports well-formed input the pipeline cannot evaluate.
func UnprocessableError(code, message string) *AppError {
	return &AppError{Code: code, Message: message, Status: http.StatusUnprocessableEntity}
}
