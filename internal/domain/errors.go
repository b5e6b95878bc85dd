package domain

import (
	"errors"
	"strings"
)

// Sentinel errors for domain-level error handling.
// The handler layer maps these to HTTP status codes.
var (
	ErrTradeNotFound      = errors.New("trade_not_found")
	ErrTradeAlreadyExists = errors.New("trade_already_exists")
)

// ValidationError represents a request validation failure. Fields holds
// the JSON paths of the offending fields, when known.
type ValidationError struct {
	Message string
	Fields  []string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewFieldError builds a ValidationError for a single field.
func NewFieldError(field, message string) *ValidationError {
	return &ValidationError{
		Message: field + " " + message,
		Fields:  []string{field},
	}
}

// JoinFieldErrors merges several field errors into one ValidationError,
// keeping field order. It returns nil when errs is empty.
func JoinFieldErrors(errs []*ValidationError) *ValidationError {
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return errs[0]
	}
	msgs := make([]string, 0, len(errs))
	fields := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Message)
		fields = append(fields, e.Fields...)
	}
	return &ValidationError{
		Message: strings.Join(msgs, "; "),
		Fields:  fields,
	}
}
