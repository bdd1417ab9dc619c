// Package routing resolves an origin and destination into a travel distance.
//
// Estimators only ever consume the resulting kilometres; the lookup itself
// happens before an estimate is computed.
package routing

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/okian/footprint/internal/domain/impact"
)

// KeySeparator joins origin and destination in configured route keys.
const KeySeparator = "|"

// Route is a resolved origin/destination pair.
type Route struct {
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	Mode        string  `json:"mode,omitempty"`
	DistanceKm  float64 `json:"distanceKm"`
}

// Resolver looks up the distance between two places for a travel mode.
type Resolver interface {
	Resolve(ctx context.Context, origin, destination, mode string) (Route, error)
}

// TableResolver serves distances from a static table. Routes are symmetric
// and place names are matched case-insensitively. Mode does not change the
// distance.
type TableResolver struct {
	routes map[string]float64
}

// NewTableResolver builds a resolver from "origin|destination" keys.
func NewTableResolver(routes map[string]float64) (*TableResolver, error) {
	t := &TableResolver{routes: make(map[string]float64, len(routes))}
	for key, km := range routes {
		origin, destination, ok := strings.Cut(key, KeySeparator)
		if !ok || impact.Key(origin) == "" || impact.Key(destination) == "" {
			return nil, fmt.Errorf("%w: key %q must be origin%sdestination", ErrInvalidRoute, key, KeySeparator)
		}
		if km <= 0 || math.IsNaN(km) || math.IsInf(km, 0) {
			return nil, fmt.Errorf("%w: %s has distance %v", ErrInvalidRoute, key, km)
		}
		t.routes[pairKey(origin, destination)] = km
	}
	return t, nil
}

// Resolve returns the configured distance, or ErrRouteUnknown.
func (t *TableResolver) Resolve(ctx context.Context, origin, destination, mode string) (Route, error) {
	if err := ctx.Err(); err != nil {
		return Route{}, fmt.Errorf("resolve route: %w", err)
	}
	r := Route{Origin: origin, Destination: destination, Mode: mode}
	if impact.Key(origin) == impact.Key(destination) && impact.Key(origin) != "" {
		return r, fmt.Errorf("%w: origin and destination are both %q", ErrRouteUnknown, origin)
	}
	km, ok := t.routes[pairKey(origin, destination)]
	if !ok {
		return r, fmt.Errorf("%w: %s to %s", ErrRouteUnknown, origin, destination)
	}
	r.DistanceKm = km
	return r, nil
}

// Len returns the number of configured routes.
func (t *TableResolver) Len() int { return len(t.routes) }

func pairKey(a, b string) string {
	a, b = impact.Key(a), impact.Key(b)
	if b < a {
		a, b = b, a
	}
	return a + KeySeparator + b
}
