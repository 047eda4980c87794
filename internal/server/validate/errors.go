// Package validate checks create inputs and partial-update patches before
// any store access. Failures are reported as Errors, a list of field
// problems that matches common.ErrorValidation under errors.Is.
package validate

import (
	"strings"

	"github.com/dmitrijs2005/timekeeper/internal/common"
)

// FieldError describes a single invalid attribute.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors collects every field problem found in one payload.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e Errors) Unwrap() error { return common.ErrorValidation }

func (e *Errors) add(field, msg string) {
	*e = append(*e, FieldError{Field: field, Message: msg})
}

func (e Errors) err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}
