package models

import (
	"fmt"
	"net/http"
)

// ErrorKind classifies pipeline failures.
type ErrorKind string

const (
	ErrValidation  ErrorKind = "validation"  // malformed or empty caller input
	ErrUpstream    ErrorKind = "upstream"    // provider returned non-success or unparsable payload
	ErrExtraction  ErrorKind = "extraction"  // a document failed to produce text
	ErrUnsupported ErrorKind = "unsupported" // unrecognized file type or unimplemented path
	ErrNotFound    ErrorKind = "not_found"   // unknown session
)

// AppError is the uniform error shape surfaced by the pipeline. Status is
// the HTTP status to report where meaningful; Details carries the raw
// provider payload when available.
type AppError struct {
	Kind    ErrorKind
	Message string
	Status  int
	Details any
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the status to surface to the caller, defaulting by kind
// when none was recorded.
func (e *AppError) HTTPStatus() int {
	if e.Status != 0 {
		return e.Status
	}
	switch e.Kind {
	case ErrValidation:
		return http.StatusBadRequest
	case ErrUnsupported:
		return http.StatusUnsupportedMediaType
	case ErrNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{Kind: ErrValidation, Message: message, Status: http.StatusBadRequest}
}

func NewUpstreamError(status int, message string, details any) *AppError {
	if status < 400 {
		status = http.StatusInternalServerError
	}
	return &AppError{Kind: ErrUpstream, Message: message, Status: status, Details: details}
}

func NewExtractionError(filename string, err error) *AppError {
	return &AppError{
		Kind:    ErrExtraction,
		Message: fmt.Sprintf("failed to extract text from %s", filename),
		Err:     err,
	}
}

func NewUnsupportedError(message string) *AppError {
	return &AppError{Kind: ErrUnsupported, Message: message, Status: http.StatusUnsupportedMediaType}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Kind: ErrNotFound, Message: message, Status: http.StatusNotFound}
}
