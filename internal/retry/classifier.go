package retry

import (
	"errors"
	"net"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQLErrorClassifier classifies PostgreSQL and network errors as
// transient or fatal.
// See: https://www.postgresql.org/docs/current/errcodes-appendix.html
type PostgreSQLErrorClassifier struct{}

// NewPostgreSQLErrorClassifier creates a new PostgreSQL error classifier.
func NewPostgreSQLErrorClassifier() *PostgreSQLErrorClassifier {
	return &PostgreSQLErrorClassifier{}
}

// IsTransient determines if an error is temporary and retryable.
func (c *PostgreSQLErrorClassifier) IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return isTransientPgCode(pgErr.Code)
	}

	if c.isNetworkError(err) {
		return true
	}

	return c.isConnectionError(err)
}

// isTransientPgCode checks PostgreSQL SQLSTATE classes for transient
// conditions.
func isTransientPgCode(code string) bool {
	switch {
	case strings.HasPrefix(code, "08"): // Connection Exception
		return true
	case strings.HasPrefix(code, "53"): // Insufficient Resources
		return true
	case strings.HasPrefix(code, "57"): // Operator Intervention
		return true
	}

	switch code {
	case "40001", // serialization_failure
		"40P01", // deadlock_detected
		"55P03": // lock_not_available
		return true
	}

	return false
}

// isNetworkError checks for network-level errors.
func (c *PostgreSQLErrorClassifier) isNetworkError(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return dnsErr.Temporary() || dnsErr.Timeout()
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if opErr.Temporary() || opErr.Timeout() {
			return true
		}
		if opErr.Err != nil {
			switch {
			case errors.Is(opErr.Err, syscall.ECONNREFUSED),
				errors.Is(opErr.Err, syscall.ECONNRESET),
				errors.Is(opErr.Err, syscall.ENETUNREACH),
				errors.Is(opErr.Err, syscall.EHOSTUNREACH):
				return true
			}
		}
	}

	return false
}

// isConnectionError checks for connection-related error messages from pgconn.
func (c *PostgreSQLErrorClassifier) isConnectionError(err error) bool {
	msg := strings.ToLower(err.Error())

	transientPatterns := []string{
		"connection refused",
		"connection reset",
		"connection timeout",
		"connection failure",
		"no such host",
		"network is unreachable",
		"i/o timeout",
		"broken pipe",
		"too many connections",
		"server closed the connection",
		"unexpected eof",
	}

	for _, pattern := range transientPatterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}

	return false
}
