package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidConfig     = errors.New("invalid configuration")
	ErrTransport         = errors.New("transport failure")
	ErrMalformedResponse = errors.New("malformed provider response")
	ErrStoreUnavailable  = errors.New("store unavailable")
)
