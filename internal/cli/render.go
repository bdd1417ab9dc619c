package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/okian/footprint/internal/domain/equivalency"
	"github.com/okian/footprint/internal/domain/impact"
	"github.com/okian/footprint/internal/domain/model"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// renderEstimate prints a result as aligned sections.
func renderEstimate(w io.Writer, est *model.Estimate) error {
	res := est.Result
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)

	fmt.Fprintf(tw, "Facet\t%s\n", res.Facet)
	if est.Label != "" {
		fmt.Fprintf(tw, "Label\t%s\n", est.Label)
	}
	fmt.Fprintf(tw, "Total\t%s kg CO2e\n", equivalency.FormatKg(res.EstimatedMassKg))
	fmt.Fprintf(tw, "Per %s\t%.2f kg CO2e\n", res.Unit, res.PerUnitMassKg)
	fmt.Fprintf(tw, "Confidence\t%s (detail %d)\n", res.ConfidenceLevel, res.DetailScore)
	fmt.Fprintf(tw, "Baseline\t%s\n", res.BaselineProfile)
	if est.Route != nil {
		fmt.Fprintf(tw, "Route\t%s to %s, %s km\n", est.Route.Origin, est.Route.Destination,
			equivalency.FormatKg(est.Route.DistanceKm))
	}
	for _, name := range sortedKeys(res.Scores) {
		fmt.Fprintf(tw, "%s\t%s\n", name, res.Scores[name])
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if modes := res.Distribution.Modes(); len(modes) > 0 {
		fmt.Fprintln(w, "\nDistribution")
		tw = tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
		for _, m := range modes {
			fmt.Fprintf(tw, "  %s\t%.1f%%\n", m, res.Distribution.Share(m))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if len(res.Components) > 0 {
		fmt.Fprintln(w, "\nComponents")
		tw = tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
		for _, name := range sortedKeys(res.Components) {
			fmt.Fprintf(tw, "  %s\t%s kg\n", name, equivalency.FormatKg(res.Components[name]))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	renderList(w, "Assumptions", res.Assumptions)
	renderList(w, "What you control", res.WhatYouControl)
	renderList(w, "What you influence", res.WhatYouInfluence)
	renderList(w, "Leverage points", res.LeveragePoints)
	renderList(w, "Tradeoffs", res.Tradeoffs)

	if !est.Equivalency.IsEmpty && est.Equivalency.DisplayText != "" {
		fmt.Fprintf(w, "\n%s\n", est.Equivalency.DisplayText)
	}
	if len(est.Trace) > 0 {
		renderTrace(w, est.Trace)
	}
	return nil
}

func renderList(w io.Writer, title string, lines []string) {
	if len(lines) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s\n", title)
	for _, l := range lines {
		fmt.Fprintf(w, "  - %s\n", l)
	}
}

func renderTrace(w io.Writer, trace []impact.TraceEntry) {
	fmt.Fprintln(w, "\nTrace")
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	for _, t := range trace {
		parts := make([]string, 0, len(t.Distribution.Modes()))
		for _, m := range t.Distribution.Modes() {
			parts = append(parts, fmt.Sprintf("%s=%.1f", m, t.Distribution.Share(m)))
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", t.Stage, t.Field, strings.Join(parts, " "))
	}
	_ = tw.Flush()
}

// renderCatalogue prints one block per facet.
func renderCatalogue(w io.Writer, cats []impact.Catalogue) error {
	for i, c := range cats {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s (per %s, driven by %s)\n", c.Facet, c.Unit, c.Primary)
		fmt.Fprintf(w, "  steps: %s\n", strings.Join(c.Steps, " -> "))
		tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
		fmt.Fprintln(tw, "  Field\tKind\tDefault\tValues")
		for _, f := range c.Fields {
			values := strings.Join(f.Values, ", ")
			if f.Kind == impact.KindNumber {
				values = f.Unit
			}
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", f.Name, f.Kind, f.Default, values)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

// renderBatch prints the batch summary and one row per item.
func renderBatch(w io.Writer, b *model.Batch) error {
	fmt.Fprintf(w, "Batch %s: %s, %d/%d processed, %d failed, %s kg CO2e\n",
		b.ID, b.Status, b.Processed, b.Total, b.Failed, equivalency.FormatKg(b.TotalMassKg))
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "#\tFacet\tLabel\tkg CO2e\tConfidence\tError")
	for _, o := range b.Outcomes {
		var facet, label, kg, conf string
		if o.Estimate != nil {
			facet, label = o.Estimate.Facet, o.Estimate.Label
			kg = equivalency.FormatKg(o.Estimate.Result.EstimatedMassKg)
			conf = o.Estimate.Result.ConfidenceLevel
		} else if o.Index < len(b.Items) {
			facet, label = b.Items[o.Index].Facet, b.Items[o.Index].Label
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", o.Index, facet, label, kg, conf, o.Error)
	}
	return tw.Flush()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
