package config

import "testing"

func TestParseConfigFillsDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(""), "test.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MaxTypeRecursionCount != 100 {
		t.Errorf("max_type_recursion_count = %d, want 100", cfg.MaxTypeRecursionCount)
	}
	if cfg.MaxSubtypesForInferredType != 64 {
		t.Errorf("max_subtypes_for_inferred_type = %d, want 64", cfg.MaxSubtypesForInferredType)
	}
}

func TestParseConfigHonorsExplicitValues(t *testing.T) {
	yaml := `
max_type_recursion_count: 10
max_subtypes_for_inferred_type: 8
solve_for_defaults: ["module", "func:main"]
`
	cfg, err := ParseConfig([]byte(yaml), "test.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MaxTypeRecursionCount != 10 {
		t.Errorf("max_type_recursion_count = %d, want 10", cfg.MaxTypeRecursionCount)
	}
	if len(cfg.SolveForDefaults) != 2 || cfg.SolveForDefaults[1] != "func:main" {
		t.Errorf("solve_for_defaults = %v, want [module func:main]", cfg.SolveForDefaults)
	}
}

func TestParseConfigRejectsNegativeRecursionBound(t *testing.T) {
	_, err := ParseConfig([]byte("max_type_recursion_count: -1\n"), "test.yaml")
	if err == nil {
		t.Fatalf("expected an error for a negative recursion bound")
	}
}

func TestNewBudgetUsesResolvedMax(t *testing.T) {
	cfg, _ := ParseConfig([]byte("max_type_recursion_count: 2\n"), "test.yaml")
	b := cfg.NewBudget(nil)
	if !b.Enter() {
		t.Fatalf("first Enter should succeed")
	}
	if !b.Enter() {
		t.Fatalf("second Enter should succeed")
	}
	if b.Enter() {
		t.Fatalf("third Enter should exhaust the budget of 2")
	}
}
