package domain

import "errors"

// Sentinel errors wrapped by the stores and providers so callers can match
// with errors.Is regardless of context added along the way.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
)
