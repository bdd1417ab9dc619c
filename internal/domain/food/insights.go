package food

import (
	"fmt"

	"github.com/okian/footprint/internal/domain/equivalency"
	"github.com/okian/footprint/internal/domain/impact"
)

const redMeatNoticePct = 15.0

type view struct {
	in          Input
	menu        string
	dist        impact.Distribution
	byModeKg    map[impact.Mode]float64
	mealsKg     float64
	servewareKg float64
	totalKg     float64
	meals       float64
	perServe    float64
	factors     impact.FactorTable
	detail      int
}

// halveRedMeatSavingKg is the saving from a reduced red meat policy, with
// the released meals split like the policy step splits them.
func (v view) halveRedMeatSavingKg() float64 {
	red := v.byModeKg[RedMeat]
	rf := v.factors.Factor(RedMeat, 0)
	if red == 0 || rf == 0 {
		return 0
	}
	var swap float64
	for _, d := range RedMeatDonors {
		swap += d.Weight * v.factors.Factor(d.Mode, 0)
	}
	return red / 2 * (1 - swap/rf)
}

var rules = []impact.Rule[view]{
	{
		Name:     "not-enough-detail",
		Category: impact.Leverage,
		When:     func(v view) bool { return v.detail == 0 },
		Say: func(view) string {
			return "Not enough detail to estimate food service yet: add the number of meals and the menu type to get started."
		},
	},
	{
		Name:     "menu-choice",
		Category: impact.Control,
		When:     func(v view) bool { return impact.Given(v.in.MenuType) && v.totalKg > 0 },
		Say: func(v view) string {
			return fmt.Sprintf("Your %s menu sets %.0f%% of meals as red meat dishes.", v.menu, v.dist.Share(RedMeat))
		},
	},
	{
		Name:     "serveware-choice",
		Category: impact.Control,
		When:     func(v view) bool { return v.servewareKg > 0 && impact.Key(v.in.ServewareType) != "reusable" },
		Say: func(v view) string {
			return fmt.Sprintf("Serveware adds %s kg CO2e; a reusable wash-up service cuts it to a third or less.",
				equivalency.FormatKg(v.servewareKg))
		},
	},
	{
		Name:     "caterer-sourcing",
		Category: impact.Influence,
		When:     func(v view) bool { return v.meals > 0 && impact.Key(v.in.Sourcing) != "local-seasonal" },
		Say: func(view) string {
			return "Caterers decide where ingredients come from; a local and seasonal brief steers them."
		},
	},
	{
		Name:     "attendee-uptake",
		Category: impact.Influence,
		When:     func(v view) bool { return v.meals > 0 && v.dist.Share(Plant) > 0 },
		Say: func(view) string {
			return "Attendees choose what they eat; placing plant-based dishes first on menus raises uptake."
		},
	},
	{
		Name:     "top-dish",
		Category: impact.Leverage,
		When:     func(v view) bool { return v.mealsKg > 0 },
		Say: func(v view) string {
			var (
				top  impact.Mode
				best float64
			)
			for _, m := range Modes {
				if v.byModeKg[m] > best {
					top, best = m, v.byModeKg[m]
				}
			}
			return fmt.Sprintf("%s are the largest food source at %s kg CO2e.", modeLabels[top], equivalency.FormatKg(best))
		},
	},
	{
		Name:     "reduce-red-meat",
		Category: impact.Leverage,
		When: func(v view) bool {
			k := impact.Key(v.in.RedMeatPolicy)
			return v.mealsKg > 0 && v.dist.Share(RedMeat) >= redMeatNoticePct && (k == "" || k == "none")
		},
		Say: func(v view) string {
			return fmt.Sprintf("Halving red meat would save about %s kg CO2e.", equivalency.FormatKg(v.halveRedMeatSavingKg()))
		},
	},
	{
		Name:     "buffet-waste",
		Category: impact.Tradeoff,
		When:     func(v view) bool { return impact.Key(v.in.ServiceModel) == "buffet" },
		Say: func(view) string {
			return "Buffets offer choice but tend to over-cater; pair them with a donation or composting plan."
		},
	},
	{
		Name:     "meat-free-acceptance",
		Category: impact.Tradeoff,
		When: func(v view) bool {
			return impact.Key(v.in.RedMeatPolicy) == "excluded" || impact.Key(v.in.MenuType) == PlantBased
		},
		Say: func(view) string {
			return "Meat-free catering cuts the most carbon, but announce it early so attendees know what to expect."
		},
	},
	{
		Name:     "compostable-infrastructure",
		Category: impact.Tradeoff,
		When:     func(v view) bool { return impact.Key(v.in.ServewareType) == "compostable" },
		Say: func(view) string {
			return "Compostable serveware only beats plastic when the site actually sends it to industrial composting."
		},
	},
}
