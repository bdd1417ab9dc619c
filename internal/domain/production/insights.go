package production

import (
	"fmt"

	"github.com/okian/footprint/internal/domain/equivalency"
	"github.com/okian/footprint/internal/domain/impact"
)

const (
	lowReusePct     = 30.0
	longFreightKm   = 1000.0
	reuseSavingRate = 40.0
)

type view struct {
	in          Input
	approach    string
	dist        impact.Distribution
	materialsKg float64
	freightKg   float64
	printKg     float64
	totalKg     float64
	rentalKg    float64
	detail      int
}

func (v view) eol() string { return impact.Key(v.in.EndOfLifePlan) }

func (v view) largest() (string, float64) {
	name, kg := "Materials", v.materialsKg
	if v.freightKg > kg {
		name, kg = "Freight", v.freightKg
	}
	if v.printKg > kg {
		name, kg = "Printed collateral", v.printKg
	}
	return name, kg
}

var rules = []impact.Rule[view]{
	{
		Name:     "not-enough-detail",
		Category: impact.Leverage,
		When:     func(v view) bool { return v.detail == 0 },
		Say: func(view) string {
			return "Not enough detail to estimate the production build yet: add the stage area and set design approach to get started."
		},
	},
	{
		Name:     "design-approach",
		Category: impact.Control,
		When:     func(v view) bool { return impact.Given(v.in.SetDesignApproach) && v.materialsKg > 0 },
		Say: func(v view) string {
			return fmt.Sprintf("Your %s approach puts %.0f%% of the set in reused stock.", v.approach, v.dist.Share(Reused))
		},
	},
	{
		Name:     "end-of-life-plan",
		Category: impact.Control,
		When: func(v view) bool {
			return v.materialsKg > 0 && (v.eol() == "" || v.eol() == "landfill")
		},
		Say: func(view) string {
			return fmt.Sprintf("The set's end of life is yours to plan; a reuse commitment cuts material emissions by %.0f%%.", reuseSavingRate)
		},
	},
	{
		Name:     "printed-collateral",
		Category: impact.Control,
		When:     func(v view) bool { return v.printKg >= 80 },
		Say: func(v view) string {
			return fmt.Sprintf("Printed collateral adds %s kg CO2e; digital signage and reusable banners trim it.",
				equivalency.FormatKg(v.printKg))
		},
	},
	{
		Name:     "supplier-stock",
		Category: impact.Influence,
		When:     func(v view) bool { return v.detail > 0 && v.approach != RentalReuse },
		Say: func(view) string {
			return "Rental houses and the venue's house set influence how much of the build can come from existing stock."
		},
	},
	{
		Name:     "fabricator-location",
		Category: impact.Influence,
		When:     func(v view) bool { return v.freightKg > 0 },
		Say: func(v view) string {
			return fmt.Sprintf("Where fabricators and rental houses are based sets the %.0f km freight leg.", v.in.FreightDistanceKm)
		},
	},
	{
		Name:     "largest-component",
		Category: impact.Leverage,
		When:     func(v view) bool { return v.totalKg > 0 },
		Say: func(v view) string {
			name, kg := v.largest()
			return fmt.Sprintf("%s is the largest production source at %s kg CO2e.", name, equivalency.FormatKg(kg))
		},
	},
	{
		Name:     "raise-reuse",
		Category: impact.Leverage,
		When: func(v view) bool {
			return v.materialsKg > 0 && v.dist.Share(Reused) < lowReusePct && v.rentalKg < v.materialsKg
		},
		Say: func(v view) string {
			return fmt.Sprintf("Only %.0f%% of the set is reused; a rental-first design would save about %s kg CO2e.",
				v.dist.Share(Reused), equivalency.FormatKg(v.materialsKg-v.rentalKg))
		},
	},
	{
		Name:     "heavy-metals",
		Category: impact.Leverage,
		When: func(v view) bool {
			k := impact.Mode(impact.Key(v.in.PrimaryMaterial))
			return k == Aluminium || k == Steel
		},
		Say: func(v view) string {
			return fmt.Sprintf("%s carries one of the highest material factors; rented truss or timber framing lowers it.",
				impact.Key(v.in.PrimaryMaterial))
		},
	},
	{
		Name:     "custom-build",
		Category: impact.Tradeoff,
		When:     func(v view) bool { return impact.Key(v.in.SetDesignApproach) == CustomBuild },
		Say: func(view) string {
			return "A custom build gives creative freedom but rarely has a second life; design it for disassembly."
		},
	},
	{
		Name:     "donation-recipient",
		Category: impact.Tradeoff,
		When:     func(v view) bool { return v.eol() == "donate" },
		Say: func(view) string {
			return "Donating the set only works with a recipient lined up before strike; otherwise it ends up in landfill."
		},
	},
	{
		Name:     "distant-supply",
		Category: impact.Tradeoff,
		When:     func(v view) bool { return v.freightKg > 0 && v.in.FreightDistanceKm > longFreightKm },
		Say: func(view) string {
			return "Sourcing from far away may cost less, but the freight leg grows with every tonne-km."
		},
	},
}
