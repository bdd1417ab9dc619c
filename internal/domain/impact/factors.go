package impact

import (
	"fmt"
	"math"
	"strings"
)

// HaulBands resolves a distance-dependent factor: Short below ShortBelowKm,
// Long above LongAboveKm, Medium in between (both bounds inclusive).
type HaulBands struct {
	ShortBelowKm float64
	LongAboveKm  float64
	Short        float64
	Medium       float64
	Long         float64
}

// Factor picks the band for km.
func (b HaulBands) Factor(km float64) float64 {
	switch {
	case km < b.ShortBelowKm:
		return b.Short
	case km > b.LongAboveKm:
		return b.Long
	default:
		return b.Medium
	}
}

// FactorTable maps modes to kg CO2e per unit (passenger-km, kWh, meal...).
// A table is immutable once built; WithOverrides returns a new table.
type FactorTable struct {
	flat   map[Mode]float64
	banded map[Mode]HaulBands
}

// NewFactorTable copies flat and banded into a new table. A mode present in
// both resolves through its bands.
func NewFactorTable(flat map[Mode]float64, banded map[Mode]HaulBands) FactorTable {
	t := FactorTable{
		flat:   make(map[Mode]float64, len(flat)),
		banded: make(map[Mode]HaulBands, len(banded)),
	}
	for m, f := range flat {
		t.flat[m] = f
	}
	for m, b := range banded {
		t.banded[m] = b
	}
	return t
}

// Factor returns the coefficient for mode at the given distance. Unknown
// modes contribute nothing.
func (t FactorTable) Factor(m Mode, km float64) float64 {
	if b, ok := t.banded[m]; ok {
		return b.Factor(km)
	}
	return t.flat[m]
}

// Flat returns a copy of the distance-independent factors.
func (t FactorTable) Flat() map[Mode]float64 {
	out := make(map[Mode]float64, len(t.flat))
	for m, f := range t.flat {
		out[m] = f
	}
	return out
}

// Bands returns the haul bands for m, if any.
func (t FactorTable) Bands(m Mode) (HaulBands, bool) {
	b, ok := t.banded[m]
	return b, ok
}

// WithOverrides returns a copy with selected factors replaced. Keys are mode
// names; banded modes take "<mode>.short", "<mode>.medium" or "<mode>.long".
func (t FactorTable) WithOverrides(overrides map[string]float64) (FactorTable, error) {
	out := NewFactorTable(t.flat, t.banded)
	for key, v := range overrides {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return FactorTable{}, fmt.Errorf("%w: %s=%v", ErrNegativeFactor, key, v)
		}
		mode, band, _ := strings.Cut(key, ".")
		m := Mode(mode)
		if b, ok := out.banded[m]; ok {
			switch band {
			case "short":
				b.Short = v
			case "medium":
				b.Medium = v
			case "long":
				b.Long = v
			default:
				return FactorTable{}, fmt.Errorf("%w: %s needs a .short, .medium or .long suffix", ErrUnknownMode, key)
			}
			out.banded[m] = b
			continue
		}
		if _, ok := out.flat[m]; !ok || band != "" {
			return FactorTable{}, fmt.Errorf("%w: %s", ErrUnknownMode, key)
		}
		out.flat[m] = v
	}
	return out, nil
}

// Aggregate returns sum over modes of (share/100) * scale * distance *
// factor(mode, distance). Degenerate scale or distance yields zero.
func Aggregate(d Distribution, scale, distance float64, factors FactorTable) float64 {
	var total float64
	for _, m := range d.Modes() {
		total += modeMass(d, m, scale, distance, factors)
	}
	return total
}

// AggregateByMode returns the per-mode contributions to Aggregate.
func AggregateByMode(d Distribution, scale, distance float64, factors FactorTable) map[Mode]float64 {
	out := make(map[Mode]float64, len(d.modes))
	for _, m := range d.Modes() {
		out[m] = modeMass(d, m, scale, distance, factors)
	}
	return out
}

func modeMass(d Distribution, m Mode, scale, distance float64, factors FactorTable) float64 {
	if !usable(scale) || !usable(distance) {
		return 0
	}
	return d.Share(m) / percentTotal * scale * distance * factors.Factor(m, distance)
}

// PerUnit returns the share-weighted factor of d for distance-independent
// facets: sum over modes of (share/100) * factor(mode).
func PerUnit(d Distribution, factors FactorTable) float64 {
	var total float64
	for _, m := range d.Modes() {
		total += d.Share(m) / percentTotal * factors.Factor(m, 0)
	}
	return total
}

// Multiplier is one independent categorical multiplier of a chain.
type Multiplier[In any] struct {
	Name  string
	Field string
	Value func(In) string
	Table EnumTable
	// Default applies when the field is missing or unrecognised.
	Default float64
}

// Resolve returns the multiplier for in and whether the field was recognised.
func (m Multiplier[In]) Resolve(in In) (float64, bool) {
	if v, ok := m.Table.Lookup(m.Value(in)); ok {
		return v, true
	}
	return m.Default, false
}

// MultiplierChain multiplies a base figure by every multiplier in turn.
type MultiplierChain[In any] []Multiplier[In]

// Apply returns base times every resolved multiplier.
func (c MultiplierChain[In]) Apply(base float64, in In) float64 {
	if !usable(base) {
		return 0
	}
	for _, m := range c {
		v, _ := m.Resolve(in)
		base *= v
	}
	return base
}

// usable reports whether v is a finite, positive quantity.
func usable(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// Positive returns v when it is finite and positive, otherwise zero.
func Positive(v float64) float64 {
	if usable(v) {
		return v
	}
	return 0
}
