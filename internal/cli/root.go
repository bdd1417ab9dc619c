// Package cli implements the footprint command line: local estimates, the
// facet catalogue, and batch submission against a running server.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/okian/footprint/internal/config"
	"github.com/okian/footprint/pkg/logger"
)

// Output formats.
const (
	OutputTable = "table"
	OutputJSON  = "json"
)

const tabPadding = 2

// NewRootCmd creates the root Cobra command for the footprint CLI.
func NewRootCmd(ver string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "footprint",
		Short:         "Estimate the carbon footprint of an event",
		Long:          "footprint estimates event greenhouse-gas emissions per facet from partial planning inputs.",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setupLogging(cmd)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "config file with emission_factors and routes overrides")
	cmd.PersistentFlags().StringP("output", "o", OutputTable, "output format: table or json")
	cmd.AddCommand(newEstimateCmd(), newFacetsCmd(), newBatchCmd())

	return cmd
}

const rootCmdExample = `  # Estimate audience travel from a YAML input
  footprint estimate --facet audience --file audience.yaml

  # Same, as JSON with the per-step trace
  footprint estimate --facet audience --file audience.yaml --output json --explain

  # List facets, their fields and defaults
  footprint facets

  # Submit a batch to a running server and wait for it
  footprint batch --url http://localhost:9080 --file batch.yaml`

// setupLogging sends logs to stderr, warnings only unless --debug is set.
func setupLogging(cmd *cobra.Command) error {
	if err := logger.Init(logger.WithOutput(cmd.ErrOrStderr())); err != nil {
		return fmt.Errorf("initialize logging: %w", err)
	}
	level := "warn"
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		level = "debug"
	}
	return logger.SetLevelString(level)
}

// loadConfig reads the --config file when given; defaults otherwise.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadFile(cmd.Context(), path)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// outputFormat validates the --output flag.
func outputFormat(cmd *cobra.Command) (string, error) {
	out, _ := cmd.Flags().GetString("output")
	switch out {
	case OutputTable, OutputJSON:
		return out, nil
	default:
		return "", fmt.Errorf("unknown output format %q: use %s or %s", out, OutputTable, OutputJSON)
	}
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}
