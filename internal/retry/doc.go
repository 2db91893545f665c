// Package retry provides transient-failure handling for warehouse
// connections: an exponential backoff strategy with jitter, a PostgreSQL
// and network error classifier, and an executor that ties them together.
//
// Only connection establishment is retried. Bulk loads are never retried
// here: a failed load must surface so the ledger records the FAILED attempt.
package retry
