package fingerprint

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
)

// chunkSize bounds the read buffer so large files never load fully into memory.
const chunkSize = 64 * 1024

// Fingerprinter is an interface for computing content fingerprints.
// This abstraction allows the loader to swap digest strategies in tests.
type Fingerprinter interface {
	// Sum computes the fingerprint of everything readable from r.
	Sum(r io.Reader) (string, error)

	// SumFile computes the fingerprint of the file at path.
	SumFile(path string) (string, error)
}

// XXHash64 implements fingerprinting using the xxHash64 checksum.
//
// XXHash64 is a zero-size type and is safe for concurrent use by multiple
// goroutines. Using value semantics (pass by value) eliminates heap
// allocations.
type XXHash64 struct{}

// New creates a new xxHash64-based fingerprinter.
// Returns by value to avoid heap allocation (XXHash64 is a zero-size type).
func New() XXHash64 {
	return XXHash64{}
}

// Sum computes the xxHash64 digest of r's content as a 16-character hex string.
func (XXHash64) Sum(r io.Reader) (string, error) {
	digest := xxhash.New()
	buf := make([]byte, chunkSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			// xxhash.Digest.Write never returns an error.
			_, _ = digest.Write(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("reading content: %w", err)
		}
	}
	sum := digest.Sum(nil)
	return hex.EncodeToString(sum), nil
}

// SumFile computes the fingerprint of the file at path.
func (f XXHash64) SumFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()
	return f.Sum(file)
}

// Verify XXHash64 implements Fingerprinter at compile time
var _ Fingerprinter = XXHash64{}
