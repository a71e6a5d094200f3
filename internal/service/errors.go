package service

import "errors"

var (
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrHospitalNotFound   = errors.New("hospital not found")
	ErrServiceNotFound    = errors.New("service not found")
	ErrBookingNotFound    = errors.New("booking not found")
	// ErrForbidden means the record exists but belongs to someone else
	ErrForbidden = errors.New("forbidden")
)

// ValidationError is a client mistake; Message is safe to return verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(msg string) error {
	return &ValidationError{Message: msg}
}
