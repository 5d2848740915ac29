package service

import "errors"

// ErrNotFound is returned when a referenced house does not exist.
var ErrNotFound = errors.New("not found")

// ValidationError reports a form field that could not be accepted.
// Message is safe to show to the user.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
