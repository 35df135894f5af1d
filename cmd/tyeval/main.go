// Command tyeval is a scenario runner for the narrowing engine and
// constraint solver: it runs internal/scenarios' fixture battery through
// pkg/evalapi and reports the outcome to the terminal.
//
// Grounded on the teacher's cmd/funxy/main.go / pkg/cli.runModule shape —
// a run-everything-then-report-a-summary driver with a colorized,
// isatty-gated output mode (the teacher's internal/evaluator/
// builtins_term.go gates ANSI codes on isatty.IsTerminal /
// isatty.IsCygwinTerminal the same way) — generalized from "run a Funxy
// source file" to "run a fixed battery of solver/narrowing scenarios"
// since this repo has no surface-syntax parser of its own; the parse
// tree each scenario needs is always built in-process instead.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"

	"github.com/solace-lang/tycore/internal/config"
	"github.com/solace-lang/tycore/internal/scenarios"
)

func main() {
	maxRecursion := flag.Int("max-recursion", 0, "override the recursion bound from tycore.yaml (0 keeps the configured value)")
	flag.Parse()

	runID := uuid.New()
	color := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

	cfgPath, err := config.FindConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "tyeval: resolving config: %s\n", err)
		os.Exit(1)
	}
	var cfg *config.Config
	if cfgPath == "" {
		cfg, err = config.ParseConfig(nil, "<defaults>")
	} else {
		cfg, err = config.LoadConfig(cfgPath)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "tyeval: %s\n", err)
		os.Exit(1)
	}
	if *maxRecursion > 0 {
		cfg.MaxTypeRecursionCount = *maxRecursion
	}

	budget := cfg.NewBudget(nil)

	fmt.Printf("tyeval run %s\n", runID)
	if cfgPath != "" {
		fmt.Printf("config: %s\n", cfgPath)
	} else {
		fmt.Println("config: built-in defaults (no tycore.yaml found)")
	}
	fmt.Println()

	failed := 0
	for _, s := range scenarios.All {
		r := s(budget, cfg.SolveForDefaults)
		printResult(r, color)
		if !r.Passed {
			failed++
		}
	}

	fmt.Println()
	fmt.Printf("%d scenario(s), %d failed\n", len(scenarios.All), failed)
	if failed > 0 {
		os.Exit(1)
	}
}

func printResult(r scenarios.Result, color bool) {
	status := "PASS"
	if !r.Passed {
		status = "FAIL"
	}
	if color {
		code := "32" // green
		if !r.Passed {
			code = "31" // red
		}
		fmt.Printf("\x1b[%sm[%s]\x1b[0m %-40s %s\n", code, status, r.Name, r.Detail)
		return
	}
	fmt.Printf("[%s] %-40s %s\n", status, r.Name, r.Detail)
}
