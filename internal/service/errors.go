package service

import "errors"

// Failure taxonomy returned by the services. Handlers translate these to
// transport status codes with errors.Is, nothing else crosses the boundary.
var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmailTaken         = errors.New("email address already exists")
	ErrInvalidPassword    = errors.New("password must be at least 8 characters")
)
