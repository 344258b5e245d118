package cleanup

import "errors"

// Sentinel kinds for cleanup errors.
var (
	ErrUnknownStrategy = errors.New("unknown cleanup strategy")
	ErrNoElapsed       = errors.New("resampling needs an elapsed column")
	ErrInvalidWindow   = errors.New("resample window must be positive")
)
