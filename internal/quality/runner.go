package quality

import (
	"context"
	"fmt"

	"github.com/rcampelo/briza/pkg/briza"
)

// Failure describes one violated constraint.
type Failure struct {
	Table      string
	Constraint string
	Detail     string
}

func (f Failure) String() string {
	return fmt.Sprintf("%s: %s: %s", f.Table, f.Constraint, f.Detail)
}

// Report collects the outcome of running a suite.
type Report struct {
	ChecksRun int
	Failures  []Failure
}

// Passed reports whether every constraint held.
func (r *Report) Passed() bool {
	return len(r.Failures) == 0
}

// Runner executes check suites against a warehouse dataset.
type Runner struct {
	warehouse briza.Warehouse
	dataset   string
	logger    briza.Logger
}

// NewRunner creates a Runner. Panics on nil dependencies.
func NewRunner(warehouse briza.Warehouse, dataset string, logger briza.Logger) *Runner {
	if warehouse == nil {
		panic("warehouse cannot be nil")
	}
	if dataset == "" {
		panic("dataset cannot be empty")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Runner{warehouse: warehouse, dataset: dataset, logger: logger}
}

// Run evaluates every check in the suite. Constraint violations are
// collected in the Report; the returned error wraps ErrQualityFailed only
// when at least one constraint is violated. Query errors abort the run.
func (r *Runner) Run(ctx context.Context, suite *Suite) (*Report, error) {
	report := &Report{}

	for _, check := range suite.Checks {
		r.logger.Info("checking_table", "table", check.Table)
		report.ChecksRun++

		rows, err := r.countRows(ctx, fmt.Sprintf("SELECT count(*) FROM %s.%s", r.dataset, check.Table))
		if err != nil {
			return nil, fmt.Errorf("counting rows in %s.%s: %w", r.dataset, check.Table, err)
		}
		if rows < check.MinRows {
			report.Failures = append(report.Failures, Failure{
				Table:      check.Table,
				Constraint: "min_rows",
				Detail:     fmt.Sprintf("expected at least %d rows, found %d", check.MinRows, rows),
			})
		}

		for _, column := range check.NotNull {
			nulls, err := r.countRows(ctx, fmt.Sprintf(
				"SELECT count(*) FROM %s.%s WHERE %s IS NULL", r.dataset, check.Table, column))
			if err != nil {
				return nil, fmt.Errorf("checking nulls in %s.%s.%s: %w", r.dataset, check.Table, column, err)
			}
			if nulls > 0 {
				report.Failures = append(report.Failures, Failure{
					Table:      check.Table,
					Constraint: "not_null",
					Detail:     fmt.Sprintf("column %s has %d null values", column, nulls),
				})
			}
		}

		for _, column := range check.Unique {
			dupes, err := r.countRows(ctx, fmt.Sprintf(
				"SELECT count(*) FROM (SELECT %s FROM %s.%s GROUP BY %s HAVING count(*) > 1) d",
				column, r.dataset, check.Table, column))
			if err != nil {
				return nil, fmt.Errorf("checking uniqueness of %s.%s.%s: %w", r.dataset, check.Table, column, err)
			}
			if dupes > 0 {
				report.Failures = append(report.Failures, Failure{
					Table:      check.Table,
					Constraint: "unique",
					Detail:     fmt.Sprintf("column %s has %d duplicated values", column, dupes),
				})
			}
		}
	}

	if !report.Passed() {
		for _, failure := range report.Failures {
			r.logger.Error("quality_check_failed", "table", failure.Table,
				"constraint", failure.Constraint, "detail", failure.Detail)
		}
		return report, fmt.Errorf("%w: %d of %d checks violated",
			briza.ErrQualityFailed, len(report.Failures), report.ChecksRun)
	}

	r.logger.Info("quality_checks_passed", "checks", report.ChecksRun)
	return report, nil
}

func (r *Runner) countRows(ctx context.Context, query string) (int64, error) {
	rows, err := r.warehouse.Query(ctx, query)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return 0, err
		}
		return 0, fmt.Errorf("query returned no rows")
	}

	var count int64
	if err := rows.Scan(&count); err != nil {
		return 0, err
	}
	return count, rows.Err()
}
