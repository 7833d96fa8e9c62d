package models

import "errors"

// Sentinel errors distinguishing the three failure kinds the API reports:
// not-found (404), invalid client data (400), and everything else (500).
var (
	ErrProductNotFound    = errors.New("product not found")
	ErrUserNotFound       = errors.New("user does not exist")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ValidationError marks a failure caused by malformed, missing, or
// out-of-range input. Handlers map it to a 400 response carrying the message
// verbatim.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

// NewValidationError creates a ValidationError with the given message.
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{msg: msg}
}
