package calc

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"dentalbooks/internal/validation"
)

// ErrInvalidInput is the sentinel wrapped by every InvalidInputError.
var ErrInvalidInput = errors.New("invalid input")

// InvalidInputError reports missing fields, negative amounts, out-of-range
// percentages and mismatched config branches.
type InvalidInputError struct {
	Fields map[string]string `json:"fields"`
}

func (e *InvalidInputError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return ErrInvalidInput.Error() + ": " + strings.Join(parts, "; ")
}

func (e *InvalidInputError) Unwrap() error {
	return ErrInvalidInput
}

// NewInvalidInput builds an InvalidInputError for a single field.
func NewInvalidInput(field, message string) *InvalidInputError {
	return &InvalidInputError{Fields: map[string]string{field: message}}
}

func fromValidator(v *validation.Validator) error {
	if v.Valid() {
		return nil
	}
	return &InvalidInputError{Fields: v.Errors}
}
