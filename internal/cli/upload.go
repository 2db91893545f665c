package cli

import (
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/rcampelo/briza/internal/storage/gcs"
	"github.com/rcampelo/briza/pkg/briza"
	"github.com/spf13/cobra"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <path>",
	Short: "Archive raw files to Cloud Storage",
	Long: `Upload copies one local file, or every matching file in a directory, to
the configured GCS bucket and prints the resulting gs:// URIs.

The bucket comes from $GCS_BUCKET; credentials from
$GOOGLE_APPLICATION_CREDENTIALS or application default credentials.

Examples:
  # Archive the raw directory under a timestamped prefix
  briza upload ./data/raw --timestamp

  # Archive one file under an explicit prefix
  briza upload ./data/raw/orders.csv --prefix archive/2026-08`,
	Args: cobra.ExactArgs(1),
	RunE: runUpload,
}

type uploadFlagValues struct {
	bucket    string
	prefix    string
	pattern   string
	timestamp bool
}

var uploadFlags uploadFlagValues

func init() {
	rootCmd.AddCommand(uploadCmd)

	uploadCmd.Flags().StringVar(&uploadFlags.bucket, "bucket", "",
		"Destination bucket (default: $GCS_BUCKET)")
	uploadCmd.Flags().StringVar(&uploadFlags.prefix, "prefix", "",
		"Object name prefix inside the bucket")
	uploadCmd.Flags().StringVar(&uploadFlags.pattern, "pattern", briza.DefaultFilePattern,
		"Glob pattern for directory uploads")
	uploadCmd.Flags().BoolVar(&uploadFlags.timestamp, "timestamp", false,
		"Prefix objects with an upload-time timestamp directory")
}

func runUpload(cmd *cobra.Command, args []string) error {
	localPath := args[0]

	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	bucket := uploadFlags.bucket
	if bucket == "" {
		if err := cfg.RequireBucket(); err != nil {
			return err
		}
		bucket = cfg.GCSBucket
	}

	ctx, cancel := signalContext()
	defer cancel()

	opts := []gcs.UploaderOption{}
	if cfg.GoogleCredentials != "" {
		opts = append(opts, gcs.WithCredentialsFile(cfg.GoogleCredentials))
	}
	if uploadFlags.timestamp {
		opts = append(opts, gcs.WithTimestampPrefix())
	}

	uploader, err := gcs.NewUploader(ctx, bucket, logger, opts...)
	if err != nil {
		return err
	}
	defer uploader.Close()

	info, statErr := os.Stat(localPath)
	if statErr != nil {
		return fmt.Errorf("%w: %s", briza.ErrMissingSource, localPath)
	}

	if info.IsDir() {
		uris, err := uploader.UploadDirectory(ctx, localPath, uploadFlags.prefix, uploadFlags.pattern)
		if err != nil {
			return err
		}
		for _, uri := range uris {
			fmt.Println(uri)
		}
		fmt.Printf("Uploaded %d files to gs://%s\n", len(uris), bucket)
		return nil
	}

	objectName := ""
	if uploadFlags.prefix != "" {
		objectName = path.Join(uploadFlags.prefix, filepath.Base(localPath))
	}
	uri, err := uploader.UploadFile(ctx, localPath, objectName)
	if err != nil {
		return err
	}
	fmt.Println(uri)
	return nil
}
