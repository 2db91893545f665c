package cli

import (
	"fmt"
	"os"

	"github.com/rcampelo/briza/internal/fingerprint"
	"github.com/rcampelo/briza/internal/ledger"
	"github.com/rcampelo/briza/internal/resolver"
	"github.com/rcampelo/briza/internal/staging"
	"github.com/rcampelo/briza/pkg/briza"
	"github.com/spf13/cobra"
)

var loadCmd = &cobra.Command{
	Use:   "load <path>",
	Short: "Load CSV files into staging tables",
	Long: `Load bulk loads one CSV file, or every matching file in a directory,
into the staging dataset with replace semantics.

The load command:
1. Connects to the warehouse and ensures the staging dataset and ledger exist
2. Fingerprints each source file and skips files already loaded unchanged
3. Replaces the destination table's contents from the CSV
4. Records the outcome in the append-only load ledger

A directory load is best-effort: one file's failure never aborts its
siblings, and the command exits 0 with a per-file summary. A single-file
load fails the command on any error.

Examples:
  # Load one file into its resolved table
  briza load ./data/raw/olist_orders_dataset.csv

  # Load into an explicit table, bypassing the idempotency check
  briza load ./data/raw/orders.csv --table orders_raw --force

  # Load a whole directory
  briza load ./data/raw --pattern '*.csv'`,
	Args: cobra.ExactArgs(1),
	RunE: runLoad,
}

type loadFlagValues struct {
	table   string
	dataset string
	pattern string
	force   bool
}

var loadFlags loadFlagValues

func init() {
	rootCmd.AddCommand(loadCmd)

	loadCmd.Flags().StringVarP(&loadFlags.table, "table", "t", "",
		"Destination table name (single-file loads only)\n"+
			"Defaults to the table resolved from the file name")
	loadCmd.Flags().StringVar(&loadFlags.dataset, "dataset", "",
		"Staging dataset to load into (default: $STAGING_DATASET)")
	loadCmd.Flags().StringVar(&loadFlags.pattern, "pattern", briza.DefaultFilePattern,
		"Glob pattern for directory loads")
	loadCmd.Flags().BoolVar(&loadFlags.force, "force", false,
		"Reload files even when the ledger records a prior identical load")
}

func runLoad(cmd *cobra.Command, args []string) error {
	path := args[0]

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

	dataset := loadFlags.dataset
	if dataset == "" {
		dataset = cfg.StagingDataset
	}

	loader := staging.New(
		client,
		ledger.New(client, dataset, logger),
		resolver.New(),
		fingerprint.New(),
		logger,
		dataset,
	)
	if err := loader.Init(ctx); err != nil {
		return err
	}

	info, statErr := os.Stat(path)
	if statErr != nil {
		return fmt.Errorf("%w: %s", briza.ErrMissingSource, path)
	}

	if info.IsDir() {
		if loadFlags.table != "" {
			return fmt.Errorf("%w: --table cannot be used with a directory", briza.ErrInvalidConfig)
		}
		result, err := loader.LoadDirectory(ctx, path, loadFlags.pattern, !loadFlags.force)
		if err != nil {
			return err
		}
		printDirectorySummary(result)
		return nil
	}

	result, err := loader.LoadFile(ctx, path, loadFlags.table, !loadFlags.force)
	if err != nil {
		return err
	}
	if result.Skipped {
		fmt.Printf("Skipped %s: already loaded into %s\n", path, result.Table)
		return nil
	}
	fmt.Printf("Loaded %s into %s (%d rows)\n", path, result.Table, result.RowsLoaded)
	return nil
}

func printDirectorySummary(result *briza.DirectoryResult) {
	for _, entry := range result.Entries {
		switch {
		case entry.Err != nil:
			fmt.Printf("  FAILED  %s: %v\n", entry.File, entry.Err)
		case entry.Result.Skipped:
			fmt.Printf("  skipped %s (already loaded)\n", entry.File)
		default:
			fmt.Printf("  loaded  %s -> %s (%d rows)\n",
				entry.File, entry.Result.Table, entry.Result.RowsLoaded)
		}
	}
	fmt.Printf("Done: %d loaded, %d skipped, %d failed\n",
		result.Loaded(), result.Skipped(), result.Failed())
}
