// Package equivalency turns a kg CO2e figure into relatable everyday
// equivalents such as miles driven or smartphones charged.
package equivalency

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Conversion divisors, kg CO2e per unit of activity (EPA calculator figures).
const (
	MilesDrivenKg        = 0.192
	SmartphoneChargeKg   = 0.00822
	TreeSeedlingKg       = 60.0
	HomeElectricityDayKg = 18.3
)

// Display thresholds.
const (
	// MinEquivalencyKg is the smallest total worth translating.
	MinEquivalencyKg = 1.0
	millionThreshold = 1_000_000
	billionThreshold = 1_000_000_000
)

// Kind names one equivalent.
type Kind string

// Supported equivalents, in display priority.
const (
	MilesDriven        Kind = "miles_driven"
	SmartphonesCharged Kind = "smartphones_charged"
	TreeSeedlings      Kind = "tree_seedlings_10y"
	HomeDays           Kind = "home_electricity_days"
)

// Item is one computed equivalent.
type Item struct {
	Kind      Kind    `json:"kind"`
	Value     float64 `json:"value"`
	Formatted string  `json:"formatted"`
	Label     string  `json:"label"`
}

// Output holds the equivalents of a mass figure.
type Output struct {
	InputKg     float64 `json:"inputKg"`
	Items       []Item  `json:"items"`
	DisplayText string  `json:"displayText"`
	IsEmpty     bool    `json:"isEmpty"`
}

var table = []struct {
	kind    Kind
	divisor float64
	label   string
}{
	{MilesDriven, MilesDrivenKg, "miles driven"},
	{SmartphonesCharged, SmartphoneChargeKg, "smartphones charged"},
	{TreeSeedlings, TreeSeedlingKg, "tree seedlings grown for 10 years"},
	{HomeDays, HomeElectricityDayKg, "days of household electricity"},
}

// Calculate converts kg into every equivalent. Totals below MinEquivalencyKg
// (including zero, negatives and NaN) produce an empty output.
func Calculate(kg float64) Output {
	if math.IsNaN(kg) || math.IsInf(kg, 0) || kg < 0 {
		kg = 0
	}
	if kg < MinEquivalencyKg {
		return Output{InputKg: kg, Items: []Item{}, IsEmpty: true}
	}
	items := make([]Item, 0, len(table))
	for _, t := range table {
		v := kg / t.divisor
		items = append(items, Item{Kind: t.kind, Value: v, Formatted: FormatLarge(v), Label: t.label})
	}
	return Output{
		InputKg: kg,
		Items:   items,
		DisplayText: fmt.Sprintf("Equivalent to driving ~%s miles or charging ~%s smartphones",
			items[0].Formatted, items[1].Formatted),
	}
}

//nolint:gochecknoglobals // message printers are safe for concurrent use
var printer = message.NewPrinter(language.English)

// FormatNumber renders n with thousands separators: 18248 -> "18,248".
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatKg rounds kg to a whole number and adds thousands separators.
func FormatKg(kg float64) string {
	return FormatNumber(int64(math.Round(kg)))
}

// FormatLarge abbreviates millions and billions ("~1.5 million") and falls
// back to FormatKg below that.
func FormatLarge(v float64) string {
	switch {
	case v >= billionThreshold:
		return fmt.Sprintf("~%.1f billion", v/billionThreshold)
	case v >= millionThreshold:
		return fmt.Sprintf("~%.1f million", v/millionThreshold)
	default:
		return FormatKg(v)
	}
}
