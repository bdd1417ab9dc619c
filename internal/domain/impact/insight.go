package impact

// Category selects which insight list a rule appends to.
type Category int

const (
	// Control lists decisions the organizer makes directly.
	Control Category = iota
	// Influence lists behaviour the organizer can only nudge.
	Influence
	// Leverage lists the changes with the largest expected effect.
	Leverage
	// Tradeoff lists side effects worth weighing.
	Tradeoff
)

// String returns the JSON list name of the category.
func (c Category) String() string {
	switch c {
	case Control:
		return "whatYouControl"
	case Influence:
		return "whatYouInfluence"
	case Leverage:
		return "leveragePoints"
	case Tradeoff:
		return "tradeoffs"
	default:
		return "unknown"
	}
}

// Rule appends one templated line to Category when When holds. Rules are
// independent: a rule never removes or rewrites another rule's output.
type Rule[C any] struct {
	Name     string
	Category Category
	When     func(C) bool
	Say      func(C) string
}

// Insights is the decision-support narrative. Lists are never nil.
type Insights struct {
	WhatYouControl   []string `json:"whatYouControl"`
	WhatYouInfluence []string `json:"whatYouInfluence"`
	LeveragePoints   []string `json:"leveragePoints"`
	Tradeoffs        []string `json:"tradeoffs"`
}

// EmptyInsights returns Insights with four empty, non-nil lists.
func EmptyInsights() Insights {
	return Insights{
		WhatYouControl:   []string{},
		WhatYouInfluence: []string{},
		LeveragePoints:   []string{},
		Tradeoffs:        []string{},
	}
}

// Len returns the total number of lines.
func (i Insights) Len() int {
	return len(i.WhatYouControl) + len(i.WhatYouInfluence) + len(i.LeveragePoints) + len(i.Tradeoffs)
}

// Generate evaluates rules in order against c. Order decides display order
// within each list; the same c always yields the same lists.
func Generate[C any](c C, rules []Rule[C]) Insights {
	out := EmptyInsights()
	for _, r := range rules {
		if !r.When(c) {
			continue
		}
		line := r.Say(c)
		switch r.Category {
		case Control:
			out.WhatYouControl = append(out.WhatYouControl, line)
		case Influence:
			out.WhatYouInfluence = append(out.WhatYouInfluence, line)
		case Leverage:
			out.LeveragePoints = append(out.LeveragePoints, line)
		case Tradeoff:
			out.Tradeoffs = append(out.Tradeoffs, line)
		}
	}
	return out
}
