package http

import "errors"

// Errors answered by the middlewares before a request reaches a handler.
var (
	// ErrEmptyAuthorizationHeader means the request carries no
	// "Authorization" header.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader means the header is not "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrInvalidGzipBody means a body sent with Content-Encoding: gzip could
	// not be inflated.
	ErrInvalidGzipBody = errors.New("invalid gzip request body")
)
