package domain

import "errors"

var (
	// ErrValidation marks malformed or missing input. Detailed failures wrap it.
	ErrValidation = errors.New("validation failed")
	// ErrConflict is returned when a uniqueness constraint rejects a write.
	ErrConflict = errors.New("conflict")
	// ErrUnauthorized indicates the caller has no established session.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidCredentials indicates that provided login credentials are incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotFound is returned when a looked up record does not exist.
	ErrNotFound = errors.New("not found")
)
