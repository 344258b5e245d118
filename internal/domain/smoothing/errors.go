package smoothing

import "errors"

// Sentinel kinds for smoothing errors.
var (
	ErrInvalidWindow = errors.New("smoothing window must be positive")
)
