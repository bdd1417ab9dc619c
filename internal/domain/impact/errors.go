package impact

import "errors"

// Sentinel kinds for table construction. Estimation itself never fails.
var (
	ErrInvalidTable   = errors.New("invalid baseline table")
	ErrUnknownMode    = errors.New("unknown mode")
	ErrNegativeFactor = errors.New("emission factor must be a finite non-negative number")
)
