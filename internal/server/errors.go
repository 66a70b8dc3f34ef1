package server

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"

	"github.com/go-playground/validator/v10"

	"github.com/Surya0265/CareerNav/internal/ingestion"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// invalidRequest converts a request validation failure into an ErrValidation
// naming the first offending field.
func invalidRequest(err error) *ErrValidation {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ErrValidation{Field: "body", Message: err.Error()}
	}

	fe := fieldErrs[0]
	field := fe.Field()
	unit := "characters"
	if k := fe.Kind(); k == reflect.Slice || k == reflect.Array || k == reflect.Map {
		unit = "items"
	}

	var msg string
	switch fe.Tag() {
	case "required":
		msg = field + " is required"
	case "min":
		msg = fmt.Sprintf("%s must have at least %s %s", field, fe.Param(), unit)
	case "max":
		msg = fmt.Sprintf("%s must have at most %s %s", field, fe.Param(), unit)
	default:
		msg = fmt.Sprintf("%s failed the %q check", field, fe.Tag())
	}
	return &ErrValidation{Field: field, Message: msg}
}

// ErrNotFound indicates a missing resource.
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrUnavailable indicates an optional backend is not configured.
type ErrUnavailable struct {
	Feature string
}

func (e *ErrUnavailable) Error() string {
	return fmt.Sprintf("%s is not available", e.Feature)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr  *ErrValidation
		notFoundErr    *ErrNotFound
		unavailableErr *ErrUnavailable
		formatErr      *ingestion.UnsupportedFormatError
		extractErr     *ingestion.ExtractError
		tooLargeErr    *http.MaxBytesError
	)

	switch {
	case errors.As(err, &validationErr), errors.As(err, &formatErr), errors.Is(err, ingestion.ErrNoText):
		return http.StatusBadRequest
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	case errors.As(err, &tooLargeErr):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &extractErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &unavailableErr):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
