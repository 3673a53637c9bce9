package models

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a record does not exist for the
	// requesting user. A record owned by another user is reported the
	// same way.
	ErrNotFound = errors.New("not found")

	// ErrInvalidCredentials is returned when login fails. It is the same
	// whether the email is unknown or the password is wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailTaken is returned when registering with an email that is
	// already in use.
	ErrEmailTaken = errors.New("email already registered")
)

// ValidationError reports malformed or missing input fields.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
