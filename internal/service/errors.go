package service

import "errors"

var (
	ErrValidation = errors.New("validation failed")
	ErrForbidden  = errors.New("access denied")
	ErrConflict   = errors.New("conflict")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserAlreadyExists  = errors.New("user with this email already exists")
	ErrTokenInvalid       = errors.New("token is invalid or expired")
)
