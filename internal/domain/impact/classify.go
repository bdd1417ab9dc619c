package impact

import (
	"slices"
	"sort"
)

// Band is one ordinal rating with an inclusive lower bound.
type Band struct {
	Min   int
	Label string
}

// Bands classifies integer scores. Floor is returned for scores below every
// band's minimum.
type Bands struct {
	Levels []Band
	Floor  string
}

// NewBands sorts levels by descending minimum so the highest matching band
// wins regardless of declaration order.
func NewBands(floor string, levels ...Band) Bands {
	ls := append([]Band(nil), levels...)
	sort.SliceStable(ls, func(i, j int) bool { return ls[i].Min > ls[j].Min })
	return Bands{Levels: ls, Floor: floor}
}

// Classify maps score to its band label.
func (b Bands) Classify(score int) string {
	for _, l := range b.Levels {
		if score >= l.Min {
			return l.Label
		}
	}
	return b.Floor
}

// Labels returns every label from highest to lowest, floor last.
func (b Bands) Labels() []string {
	out := make([]string, 0, len(b.Levels)+1)
	for _, l := range b.Levels {
		out = append(out, l.Label)
	}
	return append(out, b.Floor)
}

// DetailPoints awards Points when the field is populated.
type DetailPoints[In any] struct {
	Field   string
	Points  int
	Present func(In) bool
}

// DetailScore sums the points of every populated field.
func DetailScore[In any](in In, fields []DetailPoints[In]) int {
	var score int
	for _, f := range fields {
		if f.Present(in) {
			score += f.Points
		}
	}
	return score
}

// CategoryPoints awards points looked up from one categorical field.
type CategoryPoints[In any] struct {
	Field  string
	Value  func(In) string
	Points map[string]int
}

// CategoryScore sums the points of every recognised categorical value.
func CategoryScore[In any](in In, fields []CategoryPoints[In]) int {
	var score int
	for _, f := range fields {
		score += f.Points[Key(f.Value(in))]
	}
	return score
}

// Given reports whether an enum string carries a value.
func Given(s string) bool { return Key(s) != "" }

// GivenNumber reports whether a numeric field carries a usable value.
func GivenNumber(v float64) bool { return usable(v) }

// OneOf reports whether v names one of values.
func OneOf(v string, values ...string) bool { return slices.Contains(values, Key(v)) }

// Recognised returns v when ok holds and "" otherwise. Facets use it to clear
// values outside a field's vocabulary so they score like missing ones.
func Recognised(v string, ok bool) string {
	if ok {
		return v
	}
	return ""
}
