// Package quality validates loaded tables against declarative check suites.
package quality

import (
	"fmt"
	"os"

	"github.com/rcampelo/briza/pkg/briza"
	"gopkg.in/yaml.v3"
)

// Check declares the constraints one table must satisfy.
type Check struct {
	Table   string   `yaml:"table"`
	MinRows int64    `yaml:"min_rows"`
	NotNull []string `yaml:"not_null"`
	Unique  []string `yaml:"unique"`
}

// Suite is an ordered list of table checks.
type Suite struct {
	Checks []Check `yaml:"checks"`
}

// LoadSuite reads and validates a YAML check suite.
func LoadSuite(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", briza.ErrMissingSource, path)
	}

	var suite Suite
	if err := yaml.Unmarshal(data, &suite); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %w", briza.ErrInvalidConfig, path, err)
	}
	if len(suite.Checks) == 0 {
		return nil, fmt.Errorf("%w: %s declares no checks", briza.ErrInvalidConfig, path)
	}
	for i, check := range suite.Checks {
		if check.Table == "" {
			return nil, fmt.Errorf("%w: check %d has no table", briza.ErrInvalidConfig, i)
		}
	}
	return &suite, nil
}
