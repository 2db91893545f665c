// Package fingerprint provides content fingerprinting for source files.
//
// A fingerprint is a fixed-length hexadecimal digest deterministic in the
// file's exact byte content (order-sensitive, whitespace-sensitive). It is a
// content-identity checksum, not a cryptographic primitive: the idempotency
// ledger only needs stability across repeated invocations on identical
// bytes, so the implementation uses xxHash64 rather than a cryptographic
// hash.
//
// Files are processed incrementally in bounded-size chunks, so the cost is
// O(file size) with O(1) auxiliary memory apart from the digest state.
//
// # Example Usage
//
//	fp := fingerprint.New()
//	digest, err := fp.SumFile("data/raw/olist_orders_dataset.csv")
//
// # Thread Safety
//
// XXHash64 is safe for concurrent use by multiple goroutines.
package fingerprint
