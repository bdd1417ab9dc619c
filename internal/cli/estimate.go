package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	service "github.com/okian/footprint/internal/app"
	"github.com/okian/footprint/internal/config"
	"github.com/okian/footprint/internal/domain/facet"
	"github.com/okian/footprint/pkg/logger"
)

type estimateFlags struct {
	facet       string
	file        string
	label       string
	origin      string
	destination string
	travelMode  string
	explain     bool
}

func newEstimateCmd() *cobra.Command {
	var f estimateFlags
	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate one facet from a YAML or JSON input",
		Long: `Computes one facet estimate in-process. The input file holds the facet
fields (YAML or JSON; "-" reads stdin). Unknown fields are ignored and missing
fields fall back to neutral defaults, listed as assumptions.`,
		Example: `  footprint estimate --facet food --file food.yaml
  footprint estimate --facet crew --file crew.yaml --origin Leeds --destination London`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEstimate(cmd, f)
		},
	}

	cmd.Flags().StringVarP(&f.facet, "facet", "f", "", "facet to estimate (audience, crew, power, production, food)")
	cmd.Flags().StringVar(&f.file, "file", "-", "input file, - for stdin")
	cmd.Flags().StringVar(&f.label, "label", "", "label echoed in the result")
	cmd.Flags().StringVar(&f.origin, "origin", "", "route origin for travel facets")
	cmd.Flags().StringVar(&f.destination, "destination", "", "route destination for travel facets")
	cmd.Flags().StringVar(&f.travelMode, "travel-mode", "", "route travel mode")
	cmd.Flags().BoolVar(&f.explain, "explain", false, "include the per-step distribution trace")
	_ = cmd.MarkFlagRequired("facet")

	return cmd
}

func runEstimate(cmd *cobra.Command, f estimateFlags) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	raw, err := readInput(cmd, f.file)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	svc, err := startLocal(cmd, cfg)
	if err != nil {
		return err
	}
	defer svc.Stop()

	est, err := svc.Estimate(cmd.Context(), service.EstimateRequest{
		Facet:       f.facet,
		Label:       f.label,
		Decode:      facet.YAML(raw),
		Origin:      f.origin,
		Destination: f.destination,
		TravelMode:  f.travelMode,
		Explain:     f.explain,
	})
	if err != nil {
		return err
	}
	if format == OutputJSON {
		return writeJSON(cmd.OutOrStdout(), est)
	}
	return renderEstimate(cmd.OutOrStdout(), est)
}

// startLocal runs an in-process service with the configured overrides and
// a single worker.
func startLocal(cmd *cobra.Command, cfg *config.Config) (*service.Service, error) {
	svc := service.New(
		service.WithLogger(logger.Named("cli")),
		service.WithWorkerCount(1),
		service.WithFactorOverrides(facet.Overrides(cfg.EmissionFactors)),
		service.WithRoutes(cfg.Routes),
	)
	if err := svc.Start(cmd.Context()); err != nil {
		return nil, err
	}
	return svc, nil
}
