package routing

import "errors"

// Sentinel kinds for route resolution.
var (
	ErrRouteUnknown = errors.New("route unknown")
	ErrInvalidRoute = errors.New("invalid route")
)
