package retry

import (
	"errors"
	"fmt"
	"net"
	"syscall"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestPostgreSQLErrorClassifier_PgCodes(t *testing.T) {
	c := NewPostgreSQLErrorClassifier()

	tests := []struct {
		name      string
		code      string
		transient bool
	}{
		{"Connection exception class", "08006", true},
		{"Insufficient resources class", "53300", true},
		{"Operator intervention class", "57P01", true},
		{"Serialization failure", "40001", true},
		{"Deadlock detected", "40P01", true},
		{"Lock not available", "55P03", true},
		{"Undefined table", "42P01", false},
		{"Syntax error", "42601", false},
		{"Unique violation", "23505", false},
		{"Invalid password", "28P01", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &pgconn.PgError{Code: tt.code}
			if got := c.IsTransient(err); got != tt.transient {
				t.Errorf("IsTransient(code %s) = %v, expected %v", tt.code, got, tt.transient)
			}
		})
	}
}

func TestPostgreSQLErrorClassifier_WrappedPgError(t *testing.T) {
	c := NewPostgreSQLErrorClassifier()

	err := fmt.Errorf("connecting: %w", &pgconn.PgError{Code: "08006"})
	if !c.IsTransient(err) {
		t.Error("wrapped transient PgError should stay transient")
	}
}

func TestPostgreSQLErrorClassifier_NetworkErrors(t *testing.T) {
	c := NewPostgreSQLErrorClassifier()

	tests := []struct {
		name      string
		err       error
		transient bool
	}{
		{
			name:      "Connection refused",
			err:       &net.OpError{Op: "dial", Err: syscall.ECONNREFUSED},
			transient: true,
		},
		{
			name:      "Connection reset",
			err:       &net.OpError{Op: "read", Err: syscall.ECONNRESET},
			transient: true,
		},
		{
			name:      "DNS timeout",
			err:       &net.DNSError{Err: "lookup timeout", IsTimeout: true},
			transient: true,
		},
		{
			name:      "Permanent DNS failure",
			err:       &net.DNSError{Err: "no such host"},
			transient: true, // message pattern "no such host" matches
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.IsTransient(tt.err); got != tt.transient {
				t.Errorf("IsTransient(%v) = %v, expected %v", tt.err, got, tt.transient)
			}
		})
	}
}

func TestPostgreSQLErrorClassifier_MessagePatterns(t *testing.T) {
	c := NewPostgreSQLErrorClassifier()

	tests := []struct {
		name      string
		err       error
		transient bool
	}{
		{"Too many connections", errors.New("FATAL: too many connections"), true},
		{"Server closed connection", errors.New("server closed the connection unexpectedly"), true},
		{"IO timeout", errors.New("read tcp 127.0.0.1:5432: i/o timeout"), true},
		{"Broken pipe", errors.New("write: broken pipe"), true},
		{"Plain failure", errors.New("something else went wrong"), false},
		{"Nil error", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.IsTransient(tt.err); got != tt.transient {
				t.Errorf("IsTransient(%v) = %v, expected %v", tt.err, got, tt.transient)
			}
		})
	}
}
