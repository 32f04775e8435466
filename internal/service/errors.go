package service

import "errors"

// Sentinel errors for the failure taxonomy. Handlers translate these into
// HTTP status codes with errors.Is; anything else is a 500.
var (
	ErrInvalidID          = errors.New("invalid id format")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
)
