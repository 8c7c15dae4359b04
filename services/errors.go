package services

import "errors"

// Business-level outcomes. Handlers map these to HTTP statuses; anything
// else coming out of a service is a store failure and maps to 500.
var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidInput       = errors.New("invalid input")
	ErrConflict           = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
