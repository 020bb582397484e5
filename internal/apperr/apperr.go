package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is the closed set of failure classes the API can answer with.
type Kind int

const (
	Unauthenticated Kind = iota
	Forbidden
	NotFound
	ValidationFailed
	Conflict
	Internal
)

type Error struct {
	Kind    Kind
	Message string
	// Fields holds per-field messages for ValidationFailed, in rule order.
	Fields []FieldError
	// Err is the wrapped cause, kept for logging only.
	Err error
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func Validation(message string, fields []FieldError) *Error {
	return &Error{Kind: ValidationFailed, Message: message, Fields: fields}
}

// KindOf classifies any error. Unclassified errors count as Internal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return Internal
}

// Status maps an error to its HTTP status code.
func Status(err error) int {
	switch KindOf(err) {
	case Unauthenticated:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case ValidationFailed:
		return http.StatusUnprocessableEntity
	case Conflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// FieldsOf returns the field messages of a validation error, nil otherwise.
func FieldsOf(err error) []FieldError {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Fields
	}
	return nil
}
