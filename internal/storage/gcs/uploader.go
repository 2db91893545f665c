// Package gcs implements the briza.BlobStore interface on Google Cloud
// Storage, archiving raw source files before they are loaded into the
// warehouse.
package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"time"

	"cloud.google.com/go/storage"
	"github.com/rcampelo/briza/pkg/briza"
	"google.golang.org/api/option"
)

// Uploader uploads local files into one GCS bucket.
type Uploader struct {
	client       *storage.Client
	bucket       *storage.BucketHandle
	bucketName   string
	addTimestamp bool
	now          func() time.Time
	logger       briza.Logger
}

// UploaderOption is a functional option for configuring an Uploader.
type UploaderOption func(*uploaderConfig)

type uploaderConfig struct {
	credentialsFile string
	addTimestamp    bool
}

// WithCredentialsFile authenticates with a service-account JSON file instead
// of application default credentials.
func WithCredentialsFile(path string) UploaderOption {
	return func(c *uploaderConfig) {
		c.credentialsFile = path
	}
}

// WithTimestampPrefix prefixes every uploaded object with an upload-time
// timestamp directory, keeping prior uploads addressable.
func WithTimestampPrefix() UploaderOption {
	return func(c *uploaderConfig) {
		c.addTimestamp = true
	}
}

// NewUploader creates an Uploader for the named bucket.
// Panics on a nil logger.
func NewUploader(ctx context.Context, bucketName string, logger briza.Logger, opts ...UploaderOption) (*Uploader, error) {
	if logger == nil {
		panic("logger cannot be nil")
	}
	if bucketName == "" {
		return nil, fmt.Errorf("%w: bucket name cannot be empty", briza.ErrInvalidConfig)
	}

	var cfg uploaderConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	var clientOpts []option.ClientOption
	if cfg.credentialsFile != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(cfg.credentialsFile))
	}

	client, err := storage.NewClient(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("creating storage client: %w", err)
	}

	return &Uploader{
		client:       client,
		bucket:       client.Bucket(bucketName),
		bucketName:   bucketName,
		addTimestamp: cfg.addTimestamp,
		now:          time.Now,
		logger:       logger,
	}, nil
}

// Close releases the underlying storage client.
func (u *Uploader) Close() error {
	return u.client.Close()
}

// EnsureBucket creates the bucket in the given project if it does not exist.
func (u *Uploader) EnsureBucket(ctx context.Context, projectID string) error {
	_, err := u.bucket.Attrs(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, storage.ErrBucketNotExist) {
		return fmt.Errorf("checking bucket %q: %w", u.bucketName, err)
	}

	u.logger.Info("creating_bucket", "bucket", u.bucketName)
	if err := u.bucket.Create(ctx, projectID, nil); err != nil {
		return fmt.Errorf("creating bucket %q: %w", u.bucketName, err)
	}
	return nil
}

// UploadFile uploads one local file and returns its gs:// URI. objectName
// defaults to the file's base name.
func (u *Uploader) UploadFile(ctx context.Context, localPath, objectName string) (string, error) {
	file, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("%w: %s", briza.ErrMissingSource, localPath)
	}
	defer file.Close()

	if objectName == "" {
		objectName = filepath.Base(localPath)
	}
	if u.addTimestamp {
		objectName = path.Join(u.now().UTC().Format("20060102_150405"), objectName)
	}

	w := u.bucket.Object(objectName).NewWriter(ctx)
	if _, err := io.Copy(w, file); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("uploading %s: %w", localPath, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalizing upload of %s: %w", localPath, err)
	}

	uri := fmt.Sprintf("gs://%s/%s", u.bucketName, objectName)
	u.logger.Info("file_uploaded", "local_path", localPath, "uri", uri)
	return uri, nil
}

// UploadDirectory uploads every file in dir matching pattern
// (non-recursive), placing objects under prefix. Returns the uploaded URIs
// in enumeration order.
func (u *Uploader) UploadDirectory(ctx context.Context, dir, prefix, pattern string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", briza.ErrMissingSource, dir)
	}
	if pattern == "" {
		pattern = briza.DefaultFilePattern
	}

	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("%w: bad pattern %q", briza.ErrInvalidConfig, pattern)
	}
	if len(matches) == 0 {
		u.logger.Warn("no_files_found", "dir", dir, "pattern", pattern)
		return nil, nil
	}

	uris := make([]string, 0, len(matches))
	for _, localPath := range matches {
		objectName := path.Join(prefix, filepath.Base(localPath))
		uri, err := u.UploadFile(ctx, localPath, objectName)
		if err != nil {
			return uris, err
		}
		uris = append(uris, uri)
	}

	u.logger.Info("directory_uploaded", "dir", dir, "files", len(uris))
	return uris, nil
}

// Verify Uploader implements the BlobStore interface at compile time
var _ briza.BlobStore = (*Uploader)(nil)
