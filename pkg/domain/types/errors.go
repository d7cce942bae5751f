package types

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrTagNotFound marks errors caused by a missing build, issue, blob or record.
	ErrTagNotFound = goerr.NewTag("not_found")

	// ErrTagInvalidRequest marks errors caused by malformed input from the caller.
	ErrTagInvalidRequest = goerr.NewTag("invalid_request")

	// ErrTagInvalidResponse marks upstream responses that do not have the expected shape.
	ErrTagInvalidResponse = goerr.NewTag("invalid_response")
)
