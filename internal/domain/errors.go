package domain

import "errors"

var (
	ErrValidation          = errors.New("validation error")
	ErrUnauthenticated     = errors.New("no token, authorization denied")
	ErrTokenExpired        = errors.New("token has expired")
	ErrTokenInvalid        = errors.New("token is not valid")
	ErrNotFoundOrForbidden = errors.New("booking not found or not owned by caller")
	ErrNotFound            = errors.New("record not found")
	ErrConflict            = errors.New("record already exists")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUpstream            = errors.New("upstream provider error")
)

// ValidationError is a user-correctable input problem. It matches ErrValidation.
type ValidationError struct {
	Message string
}

func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// UpstreamError carries the provider's own message for a rejected request.
type UpstreamError struct {
	Info string
}

func (e *UpstreamError) Error() string {
	return e.Info
}

func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstream
}
