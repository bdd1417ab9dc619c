package impact

// Donor names a mode that gives up (or receives back) part of a redistributed
// delta, weighted relative to the other donors of the same adjustment.
type Donor struct {
	Mode   Mode
	Weight float64
}

// Redistribute multiplies the target share by multiplier and takes the
// resulting delta from the donors in proportion to their weights. A negative
// delta hands share back to the donors. Donor shares never drop below zero;
// whatever a clamped donor could not cover is left for Normalize to absorb.
func Redistribute(d Distribution, target Mode, multiplier float64, donors []Donor) Distribution {
	if !d.Has(target) || multiplier < 0 {
		return d
	}
	before := d.Share(target)
	return spread(d.With(target, before*multiplier), before*multiplier-before, donors)
}

// Shift adds an absolute number of percentage points to the target share and
// takes them from the donors. It is the additive sibling of Redistribute and
// works on targets whose baseline share is zero.
func Shift(d Distribution, target Mode, points float64, donors []Donor) Distribution {
	if !d.Has(target) {
		return d
	}
	return spread(d.With(target, d.Share(target)+points), points, donors)
}

// Replace assigns share to the target and scales every other mode by
// (1 - share/100) to make room. It supersedes whatever the target held.
func Replace(d Distribution, target Mode, share float64) Distribution {
	if !d.Has(target) {
		return d
	}
	share = min(max(share, 0), percentTotal)
	keep := 1 - share/percentTotal
	out := d.clone()
	for _, m := range d.modes {
		if m == target {
			out.shares[m] = share
			continue
		}
		out.shares[m] = d.shares[m] * keep
	}
	return out
}

// HeldDonors returns the donors that currently hold share, keeping their
// calibrated weights. Shifting over them displaces the full delta whenever
// any donor can cover it.
func HeldDonors(d Distribution, donors []Donor) []Donor {
	out := make([]Donor, 0, len(donors))
	for _, dn := range donors {
		if d.Share(dn.Mode) > 0 {
			out = append(out, dn)
		}
	}
	return out
}

func spread(d Distribution, delta float64, donors []Donor) Distribution {
	var weights float64
	for _, dn := range donors {
		if dn.Weight > 0 {
			weights += dn.Weight
		}
	}
	if weights == 0 || delta == 0 {
		return d
	}
	for _, dn := range donors {
		if dn.Weight <= 0 {
			continue
		}
		d = d.With(dn.Mode, d.Share(dn.Mode)-delta*dn.Weight/weights)
	}
	return d
}

// Step is one named, order-significant adjustment of a facet pipeline.
type Step[In any] struct {
	// Name identifies the step in traces and tests.
	Name string
	// Field is the input field the step reads.
	Field string
	// Apply returns the adjusted distribution; it must not mutate its argument.
	Apply func(Distribution, In) Distribution
}

// EnumTable maps canonical enum values to coefficients.
type EnumTable map[string]float64

// Lookup resolves v through Key. Unknown and empty values report false.
func (t EnumTable) Lookup(v string) (float64, bool) {
	c, ok := t[Key(v)]
	return c, ok
}

// Known reports whether v resolves to an entry of the table.
func (t EnumTable) Known(v string) bool {
	_, ok := t.Lookup(v)
	return ok
}

// Values lists the table's keys in the order given by order, skipping any
// key not present. It exists so catalogues can show enums predictably.
func (t EnumTable) Values(order ...string) []string {
	out := make([]string, 0, len(order))
	for _, k := range order {
		if _, ok := t[k]; ok {
			out = append(out, k)
		}
	}
	return out
}

func (t EnumTable) copy() EnumTable {
	out := make(EnumTable, len(t))
	for k, v := range t {
		out[Key(k)] = v
	}
	return out
}

// MultiplierStep builds a multiplicative redistribution step. The enum value
// read by field selects the multiplier; unknown or missing values leave the
// distribution untouched.
func MultiplierStep[In any](name, field string, value func(In) string, table EnumTable, target Mode, donors ...Donor) Step[In] {
	table = table.copy()
	return Step[In]{
		Name:  name,
		Field: field,
		Apply: func(d Distribution, in In) Distribution {
			m, ok := table.Lookup(value(in))
			if !ok {
				return d
			}
			return Redistribute(d, target, m, donors)
		},
	}
}

// ShiftStep builds an additive step: the enum value selects how many points
// move into target.
func ShiftStep[In any](name, field string, value func(In) string, table EnumTable, target Mode, donors ...Donor) Step[In] {
	table = table.copy()
	return Step[In]{
		Name:  name,
		Field: field,
		Apply: func(d Distribution, in In) Distribution {
			p, ok := table.Lookup(value(in))
			if !ok || p == 0 {
				return d
			}
			return Shift(d, target, p, donors)
		},
	}
}

// ReplaceStep builds a replacement step: the enum value selects the absolute
// share assigned to target.
func ReplaceStep[In any](name, field string, value func(In) string, table EnumTable, target Mode) Step[In] {
	table = table.copy()
	return Step[In]{
		Name:  name,
		Field: field,
		Apply: func(d Distribution, in In) Distribution {
			s, ok := table.Lookup(value(in))
			if !ok {
				return d
			}
			return Replace(d, target, s)
		},
	}
}
