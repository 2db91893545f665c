package cli

import (
	"fmt"

	"github.com/rcampelo/briza/internal/dataset"
	"github.com/rcampelo/briza/pkg/briza"
	"github.com/spf13/cobra"
)

var downloadCmd = &cobra.Command{
	Use:   "download [dataset]",
	Short: "Download a Kaggle dataset archive",
	Long: `Download fetches a Kaggle dataset archive, extracts its CSV files into
the raw data directory, and skips the download entirely when the files
are already present.

Credentials come from $KAGGLE_USERNAME and $KAGGLE_KEY.

Examples:
  # Download the default Olist dataset
  briza download

  # Re-download even if files exist locally
  briza download --force

  # Download a different dataset
  briza download some-owner/some-dataset`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDownload,
}

var downloadForce bool

func init() {
	rootCmd.AddCommand(downloadCmd)

	downloadCmd.Flags().BoolVar(&downloadForce, "force", false,
		"Download even when CSV files already exist locally")
}

func runDownload(cmd *cobra.Command, args []string) error {
	datasetRef := briza.DefaultKaggleDataset
	if len(args) > 0 {
		datasetRef = args[0]
	}

	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.RequireKaggle(); err != nil {
		return err
	}
	if err := cfg.EnsureDataDirs(); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	downloader := dataset.NewDownloader(cfg.RawDataDir(), cfg.KaggleUsername, cfg.KaggleKey, logger)
	dir, err := downloader.Download(ctx, datasetRef, downloadForce)
	if err != nil {
		return err
	}

	fmt.Printf("Dataset %s available in %s\n", datasetRef, dir)
	return nil
}
