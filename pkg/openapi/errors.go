package openapi

import "errors"

var (
	// ErrUnsupportedSource is returned for a source kind the loader cannot read.
	ErrUnsupportedSource = errors.New("openapi: unsupported source")
	// ErrRemoteDisabled is returned for URL sources when no HTTP client is set.
	ErrRemoteDisabled = errors.New("openapi: remote sources disabled")
	// ErrDocumentTooLarge is returned when a payload exceeds MaxDocumentSize.
	ErrDocumentTooLarge = errors.New("openapi: document too large")
)
