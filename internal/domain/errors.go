// Package domain defines the error vocabulary shared by services,
// repositories, and handlers. Every terminal outcome crosses layer
// boundaries as one of these sentinels; handlers map them to status codes.
package domain

import "errors"

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound      = errors.New("not found")
	ErrValidation    = errors.New("validation failed")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrUnprocessable = errors.New("unprocessable")

	// ErrForbiddenRedirect marks an ownership failure on a read-adjacent
	// action. Handlers answer it with a redirect to the requester's own
	// listing instead of an error payload, so a non-owner learns nothing
	// about the record they probed.
	ErrForbiddenRedirect = errors.New("forbidden")
)
