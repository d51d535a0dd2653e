package roster

import "errors"

var (
	// ErrNotConfigured indicates the client has no endpoint to call.
	ErrNotConfigured = errors.New("roster provider not configured")
	// ErrBadStatus indicates a non-200 provider response.
	ErrBadStatus = errors.New("roster provider error")
)
