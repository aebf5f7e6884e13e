package tools

import "errors"

// Error kinds shared by all tool implementations. Callers classify failures
// with errors.Is.
var (
	// ErrInvalidInput marks a validation failure. Tools return it before
	// issuing any network call.
	ErrInvalidInput = errors.New("invalid tool input")

	// ErrUnavailable marks an upstream failure: the data source was
	// unreachable or returned data that could not be parsed.
	ErrUnavailable = errors.New("data source unavailable")
)
