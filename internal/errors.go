package internal

import "errors"

var (
	// ErrTransport marks network and HTTP failures, including non-200 upstream replies.
	ErrTransport = errors.New("transport failure")
	// ErrUpstreamShape marks replies whose payload could not be decoded.
	ErrUpstreamShape = errors.New("malformed upstream payload")
	// ErrValidation marks values outside the supported catalog, such as an unknown language code.
	ErrValidation = errors.New("validation failed")
	// ErrCapability marks a missing platform service (speech recognition or synthesis).
	ErrCapability = errors.New("capability not available")
)
