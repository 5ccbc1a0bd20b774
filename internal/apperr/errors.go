package apperr

import "errors"

// Sentinel errors for common cases
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
	ErrDuplicate    = errors.New("duplicate entry")
	ErrRender       = errors.New("rendering failed")
)
