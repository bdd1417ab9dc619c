package crew

import (
	"fmt"

	"github.com/okian/footprint/internal/domain/equivalency"
	"github.com/okian/footprint/internal/domain/impact"
)

const (
	airShareNoticePct    = 15.0
	longGroundTripKm     = 1000.0
	accommodationLeadPct = 50.0
)

type view struct {
	in              Input
	staffing        string
	accommodation   string
	dist            impact.Distribution
	travelKg        float64
	accommodationKg float64
	totalKg         float64
	groundOnlyKg    float64
	crew            float64
	nights          float64
	distanceKm      float64
	detail          int
}

func (v view) policy() string { return impact.Key(v.in.TravelPolicy) }

func (v view) pct(kg float64) float64 {
	if v.totalKg == 0 {
		return 0
	}
	return kg / v.totalKg * 100
}

var rules = []impact.Rule[view]{
	{
		Name:     "not-enough-detail",
		Category: impact.Leverage,
		When:     func(v view) bool { return v.detail == 0 },
		Say: func(view) string {
			return "Not enough detail to estimate crew logistics yet: add the crew size and staffing model to get started."
		},
	},
	{
		Name:     "accommodation-choice",
		Category: impact.Control,
		When:     func(v view) bool { return impact.Given(v.in.AccommodationStrategy) && v.crew > 0 && v.nights > 0 },
		Say: func(v view) string {
			return fmt.Sprintf("Your %s accommodation adds %s kg CO2e over %.0f nights.",
				v.accommodation, equivalency.FormatKg(v.accommodationKg), v.nights)
		},
	},
	{
		Name:     "travel-policy-open",
		Category: impact.Control,
		When: func(v view) bool {
			return v.crew > 0 && (v.policy() == "" || v.policy() == "unrestricted") && v.dist.Share(Air) > 0
		},
		Say: func(v view) string {
			return fmt.Sprintf("A rail-preferred travel policy is yours to set; flights currently carry %.0f%% of crew travel.",
				v.dist.Share(Air))
		},
	},
	{
		Name:     "travel-policy-set",
		Category: impact.Control,
		When: func(v view) bool {
			return v.policy() == "rail-preferred" || v.policy() == "ground-only"
		},
		Say: func(v view) string {
			return fmt.Sprintf("Your %s policy holds flights to %.0f%% of crew travel.", v.policy(), v.dist.Share(Air))
		},
	},
	{
		Name:     "crew-base",
		Category: impact.Influence,
		When:     func(v view) bool { return v.detail > 0 && v.staffing != LocalHire },
		Say: func(v view) string {
			return fmt.Sprintf("Where crew are based shapes the %.0f km trip; suppliers with local teams shorten it.", v.distanceKm)
		},
	},
	{
		Name:     "schedule",
		Category: impact.Influence,
		When:     func(v view) bool { return v.crew > 0 && v.accommodationKg > 0 },
		Say: func(v view) string {
			return fmt.Sprintf("Build and strike schedules, agreed with suppliers, set the %.0f nights crew stay on site.", v.nights)
		},
	},
	{
		Name:     "largest-component",
		Category: impact.Leverage,
		When:     func(v view) bool { return v.totalKg > 0 },
		Say: func(v view) string {
			name, kg := "Travel", v.travelKg
			if v.pct(v.accommodationKg) > accommodationLeadPct {
				name, kg = "Accommodation", v.accommodationKg
			}
			return fmt.Sprintf("%s is the larger crew source at %s kg CO2e (%.0f%%).", name, equivalency.FormatKg(kg), v.pct(kg))
		},
	},
	{
		Name:     "ground-only-saving",
		Category: impact.Leverage,
		When: func(v view) bool {
			return v.totalKg > 0 && v.policy() != "ground-only" && v.dist.Share(Air) >= airShareNoticePct
		},
		Say: func(v view) string {
			return fmt.Sprintf("A ground-only travel policy would save about %s kg CO2e of crew travel.",
				equivalency.FormatKg(v.travelKg-v.groundOnlyKg))
		},
	},
	{
		Name:     "long-ground-trips",
		Category: impact.Tradeoff,
		When:     func(v view) bool { return v.policy() == "ground-only" && v.distanceKm > longGroundTripKm },
		Say: func(v view) string {
			return fmt.Sprintf("Ground-only travel over %.0f km adds travel days and crew fatigue; budget for rest.", v.distanceKm)
		},
	},
	{
		Name:     "tour-bus-rest",
		Category: impact.Tradeoff,
		When:     func(v view) bool { return impact.Key(v.in.AccommodationStrategy) == TourBus },
		Say: func(view) string {
			return "A tour bus saves hotel nights, but crews then rest on the road; plan proper rest stops."
		},
	},
	{
		Name:     "local-skills",
		Category: impact.Tradeoff,
		When:     func(v view) bool { return impact.Key(v.in.StaffingModel) == LocalHire },
		Say: func(view) string {
			return "Local hiring cuts travel but depends on skilled crew being available near the venue."
		},
	},
}
