package cli

import (
	"github.com/spf13/cobra"
)

func newFacetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "facets",
		Short: "List facets with their input fields, defaults and step order",
		RunE:  runFacets,
	}
}

func runFacets(cmd *cobra.Command, _ []string) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	svc, err := startLocal(cmd, cfg)
	if err != nil {
		return err
	}
	defer svc.Stop()

	cats, err := svc.Facets()
	if err != nil {
		return err
	}
	if format == OutputJSON {
		return writeJSON(cmd.OutOrStdout(), cats)
	}
	return renderCatalogue(cmd.OutOrStdout(), cats)
}
