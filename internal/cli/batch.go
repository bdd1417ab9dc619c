package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/okian/footprint/internal/domain/model"
)

// batchFile is the YAML (or JSON) layout of a batch submission.
type batchFile struct {
	Items []batchFileItem `yaml:"items"`
}

type batchFileItem struct {
	Facet       string         `yaml:"facet"`
	Label       string         `yaml:"label"`
	Input       map[string]any `yaml:"input"`
	Origin      string         `yaml:"origin"`
	Destination string         `yaml:"destination"`
	TravelMode  string         `yaml:"travelMode"`
}

// parseBatchFile converts a batch document into API items.
func parseBatchFile(raw []byte) ([]model.Item, error) {
	var doc batchFile
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse batch file: %w", err)
	}
	if len(doc.Items) == 0 {
		return nil, fmt.Errorf("parse batch file: no items")
	}
	items := make([]model.Item, 0, len(doc.Items))
	for i, it := range doc.Items {
		if it.Facet == "" {
			return nil, fmt.Errorf("parse batch file: item %d: missing facet", i)
		}
		item := model.Item{
			Facet:       it.Facet,
			Label:       it.Label,
			Origin:      it.Origin,
			Destination: it.Destination,
			TravelMode:  it.TravelMode,
		}
		if len(it.Input) > 0 {
			input, err := json.Marshal(it.Input)
			if err != nil {
				return nil, fmt.Errorf("parse batch file: item %d: %w", i, err)
			}
			item.Input = input
		}
		items = append(items, item)
	}
	return items, nil
}

type batchFlags struct {
	url            string
	file           string
	idempotencyKey string
	wait           time.Duration
	pollEvery      time.Duration
	noWait         bool
}

func newBatchCmd() *cobra.Command {
	var f batchFlags
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Submit a batch of estimates to a server and wait for the results",
		Example: `  footprint batch --url http://localhost:9080 --file scenarios.yaml
  footprint batch --url http://localhost:9080 --file scenarios.yaml --idempotency-key sweep-1 --no-wait`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBatch(cmd, f)
		},
	}

	cmd.Flags().StringVar(&f.url, "url", "http://localhost:9080", "server base URL")
	cmd.Flags().StringVar(&f.file, "file", "-", "batch file, - for stdin")
	cmd.Flags().StringVar(&f.idempotencyKey, "idempotency-key", "", "deduplicate resubmissions of the same batch")
	cmd.Flags().DurationVar(&f.wait, "timeout", time.Minute, "how long to wait for completion")
	cmd.Flags().DurationVar(&f.pollEvery, "poll-interval", 500*time.Millisecond, "how often to poll the batch")
	cmd.Flags().BoolVar(&f.noWait, "no-wait", false, "print the receipt without waiting")

	return cmd
}

func runBatch(cmd *cobra.Command, f batchFlags) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	raw, err := readInput(cmd, f.file)
	if err != nil {
		return fmt.Errorf("read batch file: %w", err)
	}
	items, err := parseBatchFile(raw)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), f.wait)
	defer cancel()

	client := newAPIClient(f.url, f.wait)
	receipt, err := client.SubmitBatch(ctx, items, f.idempotencyKey)
	if err != nil {
		return err
	}
	if f.noWait {
		if format == OutputJSON {
			return writeJSON(cmd.OutOrStdout(), receipt)
		}
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "Batch %s %s (duplicate: %t)\n", receipt.ID, receipt.Status, receipt.Duplicate)
		return err
	}

	b, err := client.WaitBatch(ctx, receipt.ID, f.pollEvery)
	if err != nil {
		return err
	}
	if format == OutputJSON {
		return writeJSON(cmd.OutOrStdout(), b)
	}
	return renderBatch(cmd.OutOrStdout(), b)
}
