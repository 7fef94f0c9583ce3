package usecase

import "errors"

// Handlers classify service failures with errors.Is against these.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
)
