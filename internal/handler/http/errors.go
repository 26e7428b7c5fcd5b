package http

import "errors"

var (
	// ErrEmptyAuthorizationHeader is returned when the "Authorization"
	// header is missing entirely.
	ErrEmptyAuthorizationHeader = errors.New("empty Authorization header")

	// ErrInvalidAuthorizationHeader is returned when the header does not
	// follow the "<scheme> <token>" format.
	ErrInvalidAuthorizationHeader = errors.New("invalid Authorization header")

	// ErrEmptyToken is returned when the bearer token part is empty.
	ErrEmptyToken = errors.New("empty token in Authorization header")

	// ErrMissingDeviceID is returned when a request carries no device
	// identity in either the X-Device-ID header or the request body.
	ErrMissingDeviceID = errors.New("missing device id")
)
