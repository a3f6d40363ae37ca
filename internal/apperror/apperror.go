package apperror

import (
	"errors"
	"fmt"
)

// Sentinel errors for the validation failure kinds plus session lookup.
// Handlers and tests match on these with errors.Is.
var (
	ErrEmptyField    = errors.New("empty field")
	ErrInvalidFormat = errors.New("invalid format")
	ErrTooShort      = errors.New("too short")
	ErrEmptyList     = errors.New("empty list")
	ErrNotFound      = errors.New("not found")
)

type AppError struct {
	Err     error  // the failure kind (one of the sentinels above)
	Message string // Human-readable error message
	Field   string // Field path causing the error, e.g. "techs[0].title"
}

func (e *AppError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// EmptyField reports a blank required field.
func EmptyField(field, label string) *AppError {
	return &AppError{
		Err:     ErrEmptyField,
		Message: fmt.Sprintf("%s is required", label),
		Field:   field,
	}
}

// InvalidFormat reports a field whose value does not parse as expected.
func InvalidFormat(field, label string) *AppError {
	return &AppError{
		Err:     ErrInvalidFormat,
		Message: fmt.Sprintf("%s is not valid", label),
		Field:   field,
	}
}

// TooShort reports a field under its minimum length.
func TooShort(field, label string, min int) *AppError {
	return &AppError{
		Err:     ErrTooShort,
		Message: fmt.Sprintf("%s must be at least %d characters", label, min),
		Field:   field,
	}
}

// EmptyList reports a list field with no entries.
func EmptyList(field, label string) *AppError {
	return &AppError{
		Err:     ErrEmptyList,
		Message: fmt.Sprintf("add at least one %s", label),
		Field:   field,
	}
}

// NotFound reports a missing resource (e.g. an expired form session).
func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}
