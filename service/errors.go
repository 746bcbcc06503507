package service

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ErrDebtNotFound is returned when a stored debt does not exist for the user.
var ErrDebtNotFound = errors.New("debt not found")

// ValidationError describes one invalid input field
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// ValidationErrors collects every invalid field of a request
type ValidationErrors struct {
	Errors []*ValidationError `json:"errors"`
}

func (e *ValidationErrors) Error() string {
	switch len(e.Errors) {
	case 0:
		return "validation failed"
	case 1:
		return e.Errors[0].Error()
	}
	msgs := make([]string, 0, len(e.Errors))
	for _, v := range e.Errors {
		msgs = append(msgs, v.Error())
	}
	return fmt.Sprintf("%d validation errors occurred: %s", len(e.Errors), strings.Join(msgs, "; "))
}

func (e *ValidationErrors) add(field, format string, args ...interface{}) {
	e.Errors = append(e.Errors, &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// err returns nil when nothing was collected so callers can return it directly.
func (e *ValidationErrors) err() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e
}

// IsValidationError reports whether err carries invalid input.
func IsValidationError(err error) bool {
	var single *ValidationError
	var multi *ValidationErrors
	return errors.As(err, &single) || errors.As(err, &multi)
}
