package render

import "errors"

// Sentinel kinds for render errors.
var (
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrUnknownRenderer   = errors.New("unknown renderer")
)
