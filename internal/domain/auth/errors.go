package auth

import "errors"

var (
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUnknownRole        = errors.New("unknown role")
	ErrInvalidToken       = errors.New("invalid token")
)

// AccessError is a forbidden decision carrying the text shown to the user.
type AccessError struct {
	Message string
}

func (e *AccessError) Error() string { return e.Message }

func (e *AccessError) Unwrap() error { return ErrForbidden }
