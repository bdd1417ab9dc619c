// Package impact holds the shared estimation engine: baseline mode profiles,
// ordered adjustment pipelines, normalization, emission aggregation, score
// classification and rule-based insight generation.
//
// Everything in this package is pure. Tables are built once and never mutated,
// so any number of goroutines may call into it without locking.
package impact

import (
	"encoding/json"
	"math"
	"strings"
)

// percentTotal is the sum of a normalized distribution.
const percentTotal = 100.0

// Mode names one sub-category within a facet's distribution.
type Mode string

// Distribution maps a closed, ordered set of modes to non-negative shares.
// Values are copied on write; a Distribution is never modified in place.
type Distribution struct {
	modes  []Mode
	shares map[Mode]float64
}

// NewDistribution builds a distribution over modes. Modes missing from shares
// start at zero, shares for modes outside the set are dropped and negative or
// NaN values are clamped to zero.
func NewDistribution(modes []Mode, shares map[Mode]float64) Distribution {
	d := Distribution{
		modes:  append([]Mode(nil), modes...),
		shares: make(map[Mode]float64, len(modes)),
	}
	for _, m := range modes {
		d.shares[m] = clampShare(shares[m])
	}
	return d
}

// Modes returns the mode set in display order.
func (d Distribution) Modes() []Mode {
	return append([]Mode(nil), d.modes...)
}

// Has reports whether m belongs to the mode set.
func (d Distribution) Has(m Mode) bool {
	_, ok := d.shares[m]
	return ok
}

// Share returns the share for m, zero for modes outside the set.
func (d Distribution) Share(m Mode) float64 {
	return d.shares[m]
}

// With returns a copy with m set to v. Unknown modes are ignored.
func (d Distribution) With(m Mode, v float64) Distribution {
	if !d.Has(m) {
		return d
	}
	out := d.clone()
	out.shares[m] = clampShare(v)
	return out
}

// Sum adds every share in mode order so results are reproducible.
func (d Distribution) Sum() float64 {
	var total float64
	for _, m := range d.modes {
		total += d.shares[m]
	}
	return total
}

// IsZero reports whether every share is zero.
func (d Distribution) IsZero() bool {
	return d.Sum() == 0
}

// Dominant returns the mode with the largest share; ties resolve to the
// earliest mode in display order.
func (d Distribution) Dominant() (Mode, float64) {
	var (
		best  Mode
		share = -1.0
	)
	for _, m := range d.modes {
		if d.shares[m] > share {
			best, share = m, d.shares[m]
		}
	}
	return best, share
}

// Map returns a plain copy of the shares.
func (d Distribution) Map() map[Mode]float64 {
	out := make(map[Mode]float64, len(d.modes))
	for _, m := range d.modes {
		out[m] = d.shares[m]
	}
	return out
}

// MarshalJSON renders the distribution as an object of rounded percentages.
func (d Distribution) MarshalJSON() ([]byte, error) {
	out := make(map[Mode]float64, len(d.modes))
	for _, m := range d.modes {
		out[m] = RoundTo(d.shares[m], 2)
	}
	return json.Marshal(out)
}

func (d Distribution) clone() Distribution {
	out := Distribution{
		modes:  d.modes,
		shares: make(map[Mode]float64, len(d.shares)),
	}
	for m, v := range d.shares {
		out.shares[m] = v
	}
	return out
}

// Normalize rescales d so its shares sum to 100 while keeping every ratio
// between shares. An all-zero distribution is returned unchanged.
func Normalize(d Distribution) Distribution {
	total := d.Sum()
	if total == 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		return d
	}
	out := d.clone()
	scale := percentTotal / total
	for _, m := range d.modes {
		out.shares[m] = d.shares[m] * scale
	}
	return out
}

func clampShare(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return v
}

// Key canonicalises an enum spelling: lower case, trimmed, with underscores
// and spaces folded to hyphens. "Urban_Core" and "urban core" both become
// "urban-core".
func Key(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("_", "-", " ", "-").Replace(s)
}

// RoundTo rounds v to the given number of decimal places.
func RoundTo(v float64, places int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
