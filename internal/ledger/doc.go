// Package ledger implements the append-only load ledger.
//
// The ledger holds one row per load attempt in the _load_metadata table of
// the staging dataset. It is the only shared mutable resource of the
// pipeline and is append-only: rows are written exactly once, immediately
// after an attempt concludes, and never updated or deleted.
//
// The ledger answers one question for idempotent loading: has this exact
// file content already been successfully loaded into this table? If any
// SUCCESS row exists for a (table_name, file_hash) pair, the content is
// already durably present in truncate-replace form and the load can be
// skipped.
//
// Failure modes are deliberately asymmetric:
//
//   - Idempotency queries fail open: any query error degrades to "not yet
//     loaded". A false negative costs a redundant reload; a false positive
//     would silently skip ingesting new data, which is worse.
//   - Record writes fail closed: a load whose outcome cannot be durably
//     recorded is a hard error, because an unrecorded success breaks the
//     idempotency guarantee for every future run.
package ledger
