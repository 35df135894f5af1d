// Package config loads the tycore.yaml tunables file: the recursion and
// pathological-union threshold defaults, plus the default solve-for scope
// list a harness should seed a fresh TypeVarContext with.
//
// Grounded on the teacher's internal/ext/config.go (funxy.yaml loading via
// gopkg.in/yaml.v3, a FindConfig upward directory walk, and a validate/
// setDefaults pair called from ParseConfig) — generalized from a Go-binding
// dependency manifest to a small tunables file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/solace-lang/tycore/internal/types"
)

// Config is the top-level tycore.yaml document.
type Config struct {
	// MaxTypeRecursionCount bounds recursive descent in the solver and
	// narrowing engine. Zero means "use the built-in default".
	MaxTypeRecursionCount int `yaml:"max_type_recursion_count,omitempty"`

	// MaxSubtypesForInferredType is the pathological-union threshold past
	// which the solver widens an accreting narrow bound to object instead
	// of keeping every subtype. Zero means "use the built-in default".
	MaxSubtypesForInferredType int `yaml:"max_subtypes_for_inferred_type,omitempty"`

	// SolveForDefaults lists the scope ids a fresh TypeVarContext should be
	// seeded with when a harness doesn't derive them from a call site —
	// used by cmd/tyeval's scenario runner to exercise the solver without a
	// full checker wired in front of it.
	SolveForDefaults []string `yaml:"solve_for_defaults,omitempty"`
}

// LoadConfig reads and parses a tycore.yaml file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig parses tycore.yaml content from bytes. The path argument is
// used only for error messages.
func ParseConfig(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	cfg.setDefaults()
	return &cfg, nil
}

// FindConfig searches for tycore.yaml starting from dir and walking up to
// parent directories, mirroring the teacher's funxy.yaml discovery walk.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "tycore.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		candidate = filepath.Join(dir, "tycore.yml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func (c *Config) validate(path string) error {
	if c.MaxTypeRecursionCount < 0 {
		return fmt.Errorf("%s: max_type_recursion_count must not be negative", path)
	}
	if c.MaxSubtypesForInferredType < 0 {
		return fmt.Errorf("%s: max_subtypes_for_inferred_type must not be negative", path)
	}
	return nil
}

func (c *Config) setDefaults() {
	if c.MaxTypeRecursionCount == 0 {
		c.MaxTypeRecursionCount = types.MaxTypeRecursionCount
	}
	if c.MaxSubtypesForInferredType == 0 {
		c.MaxSubtypesForInferredType = types.MaxSubtypesForInferredType
	}
}

// NewBudget constructs a types.Budget from the resolved tunables.
func (c *Config) NewBudget(cancelled func() bool) *types.Budget {
	return types.NewBudgetWithLimits(c.MaxTypeRecursionCount, c.MaxSubtypesForInferredType, cancelled)
}
