package power

import (
	"fmt"

	"github.com/okian/footprint/internal/domain/equivalency"
	"github.com/okian/footprint/internal/domain/impact"
)

const (
	dieselNoticePct  = 20.0
	batteryNoticePct = 40.0
)

type view struct {
	in       Input
	source   string
	dist     impact.Distribution
	byModeKg map[impact.Mode]float64
	totalKg  float64
	energy   float64
	sizing   float64
	factors  impact.FactorTable
	detail   int
}

func (v view) top() impact.Mode {
	var (
		top  impact.Mode
		best float64
	)
	for _, m := range Modes {
		if v.byModeKg[m] > best {
			top, best = m, v.byModeKg[m]
		}
	}
	return top
}

// hvoSavingKg is what swapping the diesel share to HVO would save.
func (v view) hvoSavingKg() float64 {
	diesel := v.factors.Factor(Diesel, 0)
	if diesel == 0 {
		return 0
	}
	return v.byModeKg[Diesel] * (1 - v.factors.Factor(HVO, 0)/diesel)
}

var rules = []impact.Rule[view]{
	{
		Name:     "not-enough-detail",
		Category: impact.Leverage,
		When:     func(v view) bool { return v.detail == 0 },
		Say: func(view) string {
			return "Not enough detail to estimate power yet: add the power source and daily load to get started."
		},
	},
	{
		Name:     "source-choice",
		Category: impact.Control,
		When:     func(v view) bool { return impact.Given(v.in.PowerSource) && v.totalKg > 0 },
		Say: func(v view) string {
			return fmt.Sprintf("Your %s supply choice sets %.0f%% of energy from combustion generators.",
				v.source, v.dist.Share(Diesel)+v.dist.Share(HVO))
		},
	},
	{
		Name:     "generator-sizing",
		Category: impact.Control,
		When: func(v view) bool {
			return generatorShare(v.dist) > 0 && v.energy > 0 && impact.Key(v.in.GeneratorSizing) != "right-sized"
		},
		Say: func(v view) string {
			return fmt.Sprintf("Sizing generators to the measured load is in your control; the current sizing burns %.0f%% extra fuel.",
				(v.sizing-1)*100)
		},
	},
	{
		Name:     "load-management",
		Category: impact.Control,
		When: func(v view) bool {
			k := impact.Key(v.in.LoadManagement)
			return v.energy > 0 && (k == "" || k == "none")
		},
		Say: func(v view) string {
			return "Scheduling non-critical loads away from peaks is yours to plan; active load management cuts the draw by 15%."
		},
	},
	{
		Name:     "technical-riders",
		Category: impact.Influence,
		When:     func(v view) bool { return impact.GivenNumber(v.in.DailyLoadKWh) },
		Say: func(v view) string {
			return fmt.Sprintf("Performer and supplier technical riders drive the %s kWh daily load; LED and low-power rigs shrink it.",
				equivalency.FormatKg(v.in.DailyLoadKWh))
		},
	},
	{
		Name:     "grid-connection",
		Category: impact.Influence,
		When:     func(v view) bool { return v.energy > 0 && v.dist.Share(Diesel) > 0 },
		Say: func(view) string {
			return "The venue and local utility decide whether a temporary grid connection can replace diesel generation."
		},
	},
	{
		Name:     "top-source",
		Category: impact.Leverage,
		When:     func(v view) bool { return v.totalKg > 0 },
		Say: func(v view) string {
			m := v.top()
			return fmt.Sprintf("%s is the largest source at %s kg CO2e.", modeLabels[m], equivalency.FormatKg(v.byModeKg[m]))
		},
	},
	{
		Name:     "diesel-to-hvo",
		Category: impact.Leverage,
		When:     func(v view) bool { return v.totalKg > 0 && v.dist.Share(Diesel) >= dieselNoticePct },
		Say: func(v view) string {
			return fmt.Sprintf("Running the diesel generators on HVO would save about %s kg CO2e.",
				equivalency.FormatKg(v.hvoSavingKg()))
		},
	},
	{
		Name:     "hvo-feedstock",
		Category: impact.Tradeoff,
		When:     func(v view) bool { return v.dist.Share(HVO) > 0 },
		Say: func(view) string {
			return "HVO cuts generator emissions sharply, but only if the fuel is certified waste-derived rather than crop-based."
		},
	},
	{
		Name:     "battery-logistics",
		Category: impact.Tradeoff,
		When:     func(v view) bool { return v.dist.Share(BatterySolar) >= batteryNoticePct },
		Say: func(view) string {
			return "Battery systems need delivery, charging and a backup plan for peak loads."
		},
	},
	{
		Name:     "oversized-headroom",
		Category: impact.Tradeoff,
		When:     func(v view) bool { return impact.Key(v.in.GeneratorSizing) == "oversized" },
		Say: func(view) string {
			return "Oversized generators give headroom for surprises but run inefficiently at low load."
		},
	},
}
