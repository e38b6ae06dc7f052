package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/job-skill-matcher/internal/catalog"
	"github.com/jonathan/job-skill-matcher/internal/ranking"
)

// Error codes returned in the "code" field of error responses.
const (
	CodeInvalidInput    = "invalid_input"
	CodeInvalidRequest  = "invalid_request"
	CodeDataUnavailable = "data_unavailable"
	CodeInternal        = "internal_error"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// newValidationError converts validator output into an ErrValidation for the first failing field.
func newValidationError(err error) *ErrValidation {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		ve := validationErrors[0]
		return &ErrValidation{Field: ve.Namespace(), Message: ve.Tag()}
	}
	return &ErrValidation{Field: "request", Message: err.Error()}
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var validationErr *ErrValidation
	switch {
	case err == nil:
		return http.StatusInternalServerError
	case errors.Is(err, ranking.ErrInvalidInput), errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.Is(err, catalog.ErrDataUnavailable), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// ErrorCode returns the machine-readable code for an error.
func ErrorCode(err error) string {
	var validationErr *ErrValidation
	switch {
	case err == nil:
		return CodeInternal
	case errors.Is(err, ranking.ErrInvalidInput):
		return CodeInvalidInput
	case errors.As(err, &validationErr):
		return CodeInvalidRequest
	case errors.Is(err, catalog.ErrDataUnavailable), errors.Is(err, context.DeadlineExceeded):
		return CodeDataUnavailable
	default:
		return CodeInternal
	}
}
