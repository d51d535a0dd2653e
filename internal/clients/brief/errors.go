package brief

import "errors"

var (
	// ErrNotConfigured indicates the client has no endpoint to call.
	ErrNotConfigured = errors.New("brief provider not configured")
	// ErrBadStatus indicates a non-200 provider response.
	ErrBadStatus = errors.New("brief provider error")
)
