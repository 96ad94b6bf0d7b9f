package domain

import "errors"

// ErrUpstreamUnavailable is returned when the external data provider timed out or could not be reached.
var ErrUpstreamUnavailable = errors.New("upstream provider unavailable")

// ErrEmptySessionID is returned by stores when asked to operate without a session id.
var ErrEmptySessionID = errors.New("session id cannot be empty")

// ValidationError reports a malformed, oversized or disallowed parameter.
// Its message never contains internal detail and is shown to the user verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError with the given message.
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
