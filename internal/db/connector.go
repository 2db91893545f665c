// Package db establishes warehouse connection pools.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rcampelo/briza/internal/retry"
	"github.com/rcampelo/briza/pkg/briza"
)

// Connector builds pgx connection pools from a DSN, retrying transient
// connection failures with exponential backoff.
type Connector struct {
	connString string
	logger     briza.Logger
	executor   *retry.Executor
}

// NewConnector creates a Connector for the given connection string
// (PostgreSQL URI or keyword/value DSN). Panics on a nil logger.
func NewConnector(connString string, logger briza.Logger) *Connector {
	if logger == nil {
		panic("logger cannot be nil")
	}

	backoff := retry.NewExponentialBackoff(briza.DefaultRetryMaxAttempts,
		retry.WithInitialDelay(briza.DefaultRetryInitialDelay),
		retry.WithMaxDelay(briza.DefaultRetryMaxDelay),
	)
	executor := retry.NewExecutor(retry.NewPostgreSQLErrorClassifier(), backoff)

	return &Connector{
		connString: connString,
		logger:     logger,
		executor:   executor,
	}
}

// Connect establishes a connection pool and verifies it with a ping.
// The returned pool should be closed by the caller when done.
func (c *Connector) Connect(ctx context.Context) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(c.connString)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing connection string: %w", briza.ErrInvalidConfig, err)
	}

	var pool *pgxpool.Pool
	executor := c.executor.WithOnRetry(func(attempt int, err error, delay time.Duration) {
		c.logger.Warn("warehouse_connect_retry",
			"attempt", attempt+1, "delay", delay.String(), "error", err.Error())
	})

	err = executor.Execute(ctx, func(ctx context.Context) error {
		p, err := pgxpool.NewWithConfig(ctx, cfg)
		if err != nil {
			return err
		}
		if err := p.Ping(ctx); err != nil {
			p.Close()
			return err
		}
		pool = p
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", briza.ErrConnectionFailed, err)
	}

	c.logger.Info("warehouse_connected", "host", cfg.ConnConfig.Host, "database", cfg.ConnConfig.Database)
	return pool, nil
}
