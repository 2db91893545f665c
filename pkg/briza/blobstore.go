package briza

import "context"

// BlobStore abstracts the object-storage side of the pipeline (raw file
// archival before warehouse loading). The shipped implementation targets
// Google Cloud Storage.
type BlobStore interface {
	// UploadFile uploads a local file under the given object name and
	// returns the resulting storage URI.
	UploadFile(ctx context.Context, localPath, objectName string) (string, error)

	// UploadDirectory uploads every file in dir matching pattern
	// (non-recursive) under prefix and returns the uploaded URIs.
	UploadDirectory(ctx context.Context, dir, prefix, pattern string) ([]string, error)
}
