package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrConflict indicates the cart version supplied is no longer current.
	ErrConflict = errors.New("version conflict")
	// ErrInvalidCredentials is returned for any failed sign-in.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUnauthenticated indicates the session carries no customer.
	ErrUnauthenticated = errors.New("not authenticated")
	// ErrUpstream wraps commerce platform failures.
	ErrUpstream = errors.New("commerce platform error")
)

// ValidationError reports missing or malformed client input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Invalid builds a ValidationError.
func Invalid(msg string) error {
	return &ValidationError{Message: msg}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
