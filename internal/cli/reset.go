package cli

import (
	"fmt"

	"github.com/rcampelo/briza/internal/ui"
	"github.com/rcampelo/briza/pkg/briza"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Drop the staging and warehouse datasets",
	Long: `Reset drops the staging and warehouse datasets and everything they
contain, including the load ledger. The next load starts from a clean
slate and reloads every file.

Destructive. Requires typing the dataset name to confirm, or --yes for
non-interactive use (a short countdown still runs).

Examples:
  briza reset
  briza reset --yes`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

var resetYes bool

func init() {
	rootCmd.AddCommand(resetCmd)

	resetCmd.Flags().BoolVar(&resetYes, "yes", false,
		"Skip the interactive confirmation prompt\n"+
			"A countdown still runs; Ctrl+C cancels")
}

func runReset(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	verbose := getVerboseFlag(cmd)

	var approver briza.Approver
	if resetYes {
		approver = ui.NewForcedApprover(verbose)
	} else {
		approver = ui.NewInteractiveApprover(verbose)
	}

	ctx, cancel := signalContext()
	defer cancel()

	client, err := connectWarehouse(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer client.Close()

	for _, dataset := range []string{cfg.StagingDataset, cfg.WarehouseDataset} {
		exists, err := client.DatasetExists(ctx, dataset)
		if err != nil {
			return fmt.Errorf("checking dataset %s: %w", dataset, err)
		}
		if !exists {
			logger.Info("dataset_not_found", "dataset", dataset)
			continue
		}

		approved, err := approver.RequestApproval(ctx, dataset)
		if err != nil {
			return err
		}
		if !approved {
			return fmt.Errorf("%w: %s", briza.ErrApprovalDenied, dataset)
		}

		if err := client.DropDataset(ctx, dataset); err != nil {
			return err
		}
		fmt.Printf("Dropped dataset %s\n", dataset)
	}

	return nil
}
