package domain

import (
	"errors"
	"strings"
)

var (
	ErrUserExists      = errors.New("user already exists")
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidPassword = errors.New("invalid password")
	ErrMissingToken    = errors.New("no token provided")
	ErrInvalidToken    = errors.New("invalid or expired token")
	ErrValidation      = errors.New("validation failed")
)

// ValidationError lists the input fields that are missing or out of bounds.
type ValidationError struct {
	Fields []string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	if len(e.Fields) == 1 {
		return "missing required field: " + e.Fields[0]
	}
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// MissingFields returns a ValidationError for the given field names, or nil
// when none are given.
func MissingFields(fields ...string) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}
