package cli

import (
	"fmt"

	"github.com/rcampelo/briza/internal/quality"
	"github.com/spf13/cobra"
)

var qualityCmd = &cobra.Command{
	Use:   "quality <suite.yaml>",
	Short: "Run quality checks against loaded tables",
	Long: `Quality evaluates a YAML check suite against the staging dataset. Each
check names a table and its constraints: a minimum row count, columns
that must not contain nulls, and columns whose values must be unique.

Every violated constraint is reported; the command fails when any
constraint is violated.

Suite format:
  checks:
    - table: orders_raw
      min_rows: 1000
      not_null: [order_id, customer_id]
      unique: [order_id]

Example:
  briza quality ./checks/staging.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runQuality,
}

var qualityDataset string

func init() {
	rootCmd.AddCommand(qualityCmd)

	qualityCmd.Flags().StringVar(&qualityDataset, "dataset", "",
		"Dataset to check (default: $STAGING_DATASET)")
}

func runQuality(cmd *cobra.Command, args []string) error {
	suite, err := quality.LoadSuite(args[0])
	if err != nil {
		return err
	}

	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	client, err := connectWarehouse(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer client.Close()

	dataset := qualityDataset
	if dataset == "" {
		dataset = cfg.StagingDataset
	}

	report, err := quality.NewRunner(client, dataset, logger).Run(ctx, suite)
	if report != nil {
		for _, failure := range report.Failures {
			fmt.Printf("  FAILED  %s\n", failure)
		}
	}
	if err != nil {
		return err
	}

	fmt.Printf("All %d checks passed\n", report.ChecksRun)
	return nil
}
