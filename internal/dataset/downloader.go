// Package dataset downloads the source dataset from the Kaggle API.
package dataset

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rcampelo/briza/pkg/briza"
)

// DefaultBaseURL is the Kaggle public API root.
const DefaultBaseURL = "https://www.kaggle.com/api/v1"

// Downloader fetches Kaggle datasets as zip archives and extracts them under
// a local download directory. Downloads are skipped when extracted CSVs are
// already present, unless forced.
type Downloader struct {
	client      *retryablehttp.Client
	baseURL     string
	username    string
	key         string
	downloadDir string
	logger      briza.Logger
}

// DownloaderOption is a functional option for configuring a Downloader.
type DownloaderOption func(*Downloader)

// WithBaseURL overrides the Kaggle API root (used by tests).
func WithBaseURL(url string) DownloaderOption {
	return func(d *Downloader) {
		d.baseURL = strings.TrimRight(url, "/")
	}
}

// WithHTTPClient overrides the retrying HTTP client.
func WithHTTPClient(client *retryablehttp.Client) DownloaderOption {
	return func(d *Downloader) {
		d.client = client
	}
}

// NewDownloader creates a Downloader authenticating with the given Kaggle
// credentials. Panics on a nil logger.
func NewDownloader(downloadDir, username, key string, logger briza.Logger, opts ...DownloaderOption) *Downloader {
	if logger == nil {
		panic("logger cannot be nil")
	}

	client := retryablehttp.NewClient()
	client.RetryMax = 3
	client.Logger = nil

	d := &Downloader{
		client:      client,
		baseURL:     DefaultBaseURL,
		username:    username,
		key:         key,
		downloadDir: downloadDir,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Download fetches a dataset identified as "owner/slug" and extracts it into
// <downloadDir>/<slug>. When the directory already contains CSV files and
// force is false, the download is skipped and the existing directory
// returned.
func (d *Downloader) Download(ctx context.Context, dataset string, force bool) (string, error) {
	owner, slug, ok := strings.Cut(dataset, "/")
	if !ok || owner == "" || slug == "" {
		return "", fmt.Errorf("%w: dataset must be owner/slug, got %q", briza.ErrInvalidConfig, dataset)
	}

	targetDir := filepath.Join(d.downloadDir, slug)

	if !force {
		existing, _ := filepath.Glob(filepath.Join(targetDir, "*.csv"))
		if len(existing) > 0 {
			d.logger.Info("dataset_already_exists",
				"dataset", dataset, "dir", targetDir, "files", len(existing))
			return targetDir, nil
		}
	}

	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return "", fmt.Errorf("creating dataset directory: %w", err)
	}

	d.logger.Info("downloading_dataset", "dataset", dataset, "force", force)

	archivePath, err := d.fetchArchive(ctx, owner, slug, targetDir)
	if err != nil {
		return "", err
	}
	defer os.Remove(archivePath)

	if err := extractArchive(archivePath, targetDir); err != nil {
		return "", fmt.Errorf("extracting %s: %w", archivePath, err)
	}

	csvs, _ := filepath.Glob(filepath.Join(targetDir, "*.csv"))
	d.logger.Info("dataset_downloaded", "dataset", dataset, "dir", targetDir, "files", len(csvs))
	return targetDir, nil
}

func (d *Downloader) fetchArchive(ctx context.Context, owner, slug, targetDir string) (string, error) {
	url := fmt.Sprintf("%s/datasets/download/%s/%s", d.baseURL, owner, slug)

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("building download request: %w", err)
	}
	req.SetBasicAuth(d.username, d.key)

	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("downloading %s/%s: %w", owner, slug, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("downloading %s/%s: unexpected status %s", owner, slug, resp.Status)
	}

	archive, err := os.CreateTemp(targetDir, slug+"-*.zip")
	if err != nil {
		return "", fmt.Errorf("creating archive file: %w", err)
	}
	defer archive.Close()

	if _, err := io.Copy(archive, resp.Body); err != nil {
		os.Remove(archive.Name())
		return "", fmt.Errorf("writing archive: %w", err)
	}
	return archive.Name(), nil
}

// extractArchive unpacks every regular file in the zip into targetDir.
// Entry names are flattened and validated so a crafted archive cannot write
// outside targetDir.
func extractArchive(archivePath, targetDir string) error {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return err
	}
	defer zr.Close()

	for _, entry := range zr.File {
		if entry.FileInfo().IsDir() {
			continue
		}

		name := filepath.Base(filepath.Clean(entry.Name))
		if name == "." || name == ".." || name == string(filepath.Separator) {
			continue
		}

		if err := extractEntry(entry, filepath.Join(targetDir, name)); err != nil {
			return err
		}
	}
	return nil
}

func extractEntry(entry *zip.File, dest string) error {
	src, err := entry.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, src)
	return err
}
