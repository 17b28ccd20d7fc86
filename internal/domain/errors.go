package domain

import "errors"

// Sentinel errors for the application.
var (
	ErrUnauthorized = errors.New("unauthorized access")
	ErrValidation   = errors.New("invalid input")
)
