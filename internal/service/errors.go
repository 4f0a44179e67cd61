package service

import "fmt"

// ValidationError reports a rejected input field. Validation always happens
// before any persistence attempt, so a returned ValidationError guarantees
// nothing was written.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func validationErrorf(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
