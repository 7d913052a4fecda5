package transform

import (
	"fmt"
	"strings"
)

// ValidationError names one rejected input field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors aggregates every missing or malformed field so the
// webhook sender can fix the document in one pass.
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v *ValidationErrors) Error() string {
	fields := make([]string, 0, len(v.Errors))
	for _, e := range v.Errors {
		fields = append(fields, e.Field)
	}
	return fmt.Sprintf("invalid zoho payload: %s", strings.Join(fields, ", "))
}

func (v *ValidationErrors) add(field, message string) {
	v.Errors = append(v.Errors, ValidationError{Field: field, Message: message})
}

func (v *ValidationErrors) orNil() error {
	if len(v.Errors) == 0 {
		return nil
	}
	return v
}
