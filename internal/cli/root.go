// Package cli wires the briza commands together: configuration, warehouse
// connection, and per-command orchestration.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "briza",
	Short: "Brazilian e-commerce analytics loader",
	Long: `briza ingests the Olist Brazilian E-Commerce dataset into a PostgreSQL
warehouse: download the raw CSV files, archive them to object storage,
bulk load them into staging tables with ledger-backed idempotency, and
validate the result with declarative quality checks.

Every load is recorded in an append-only ledger keyed by content
fingerprint, so re-running a load against unchanged files is a no-op.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration
  11 - Warehouse connection failed
  12 - Source file or directory not found
  13 - Bulk load failed
  14 - Load ledger write failed
  15 - User denied reset approval
  16 - Quality checks failed`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().Bool("help", false, "Help for briza")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
	rootCmd.PersistentFlags().String("env-file", "",
		"Path to a .env file to load before reading configuration")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
