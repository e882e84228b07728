package domain

import (
	"errors"
	"fmt"
)

// Error classes. Handlers match them with errors.Is to pick a status code.
var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrValidation         = errors.New("validation failed")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// Resource errors read naturally ("event not found") and still match ErrNotFound.
var (
	ErrUserNotFound          = fmt.Errorf("user %w", ErrNotFound)
	ErrEventNotFound         = fmt.Errorf("event %w", ErrNotFound)
	ErrRegistrationNotFound  = fmt.Errorf("registration %w", ErrNotFound)
	ErrWishlistEntryNotFound = fmt.Errorf("event %w in wishlist", ErrNotFound)
)

// ValidationError carries a message that is safe to show the caller
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Unwrap lets errors.Is(err, ErrValidation) match
func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError builds a ValidationError
func NewValidationError(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ConflictError reports a uniqueness clash with a readable message
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

func (e *ConflictError) Unwrap() error { return ErrConflict }

// NewConflictError builds a ConflictError
func NewConflictError(format string, args ...any) error {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}
