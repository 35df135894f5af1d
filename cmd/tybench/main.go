// Command tybench repeatedly times internal/scenarios' fixture battery
// and persists each run's timings to a SQLite database, printing a
// regression comparison against the previous run stored there.
//
// Grounded on the teacher's cmd/funxy/main.go driver shape (parse flags,
// do the work, print a summary, exit non-zero on regression) generalized
// from "run a program" to "run a timing battery N times"; the SQLite
// persistence itself has no direct teacher precedent (no example repo in
// the pack uses database/sql against sqlite at a call site — see
// DESIGN.md), so it is grounded purely on modernc.org/sqlite's own
// database/sql driver contract: register as a driver name, sql.Open,
// ordinary *sql.DB calls.
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"time"

	_ "modernc.org/sqlite"

	"github.com/solace-lang/tycore/internal/config"
	"github.com/solace-lang/tycore/internal/scenarios"
)

func main() {
	dbPath := flag.String("db", "tybench.db", "path to the SQLite database storing historical samples")
	iterations := flag.Int("n", 200, "number of times to run the scenario battery per sample")
	flag.Parse()

	cfgPath, err := config.FindConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "tybench: resolving config: %s\n", err)
		os.Exit(1)
	}
	var cfg *config.Config
	if cfgPath == "" {
		cfg, err = config.ParseConfig(nil, "<defaults>")
	} else {
		cfg, err = config.LoadConfig(cfgPath)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "tybench: %s\n", err)
		os.Exit(1)
	}

	db, err := sql.Open("sqlite", *dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tybench: opening %s: %s\n", *dbPath, err)
		os.Exit(1)
	}
	defer db.Close()

	if err := ensureSchema(db); err != nil {
		fmt.Fprintf(os.Stderr, "tybench: %s\n", err)
		os.Exit(1)
	}

	baseline, err := previousAverage(db)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tybench: reading history: %s\n", err)
		os.Exit(1)
	}

	elapsed, failed := runBattery(cfg, *iterations)
	if failed > 0 {
		fmt.Fprintf(os.Stderr, "tybench: %d scenario failure(s) during timing, aborting\n", failed)
		os.Exit(1)
	}

	avgNanos := elapsed.Nanoseconds() / int64(*iterations)
	if err := recordSample(db, *iterations, avgNanos); err != nil {
		fmt.Fprintf(os.Stderr, "tybench: recording sample: %s\n", err)
		os.Exit(1)
	}

	fmt.Printf("ran %d scenario(s) x %d iterations in %s (avg %dns/iteration)\n",
		len(scenarios.All), *iterations, elapsed, avgNanos)

	if baseline == 0 {
		fmt.Println("no prior sample to compare against")
		return
	}
	delta := float64(avgNanos-baseline) / float64(baseline) * 100
	fmt.Printf("previous average: %dns/iteration (%+.1f%%)\n", baseline, delta)
	if delta > 25 {
		fmt.Println("regression: more than 25% slower than the last recorded sample")
		os.Exit(1)
	}
}

func runBattery(cfg *config.Config, iterations int) (time.Duration, int) {
	budget := cfg.NewBudget(nil)
	start := time.Now()
	failed := 0
	for i := 0; i < iterations; i++ {
		for _, s := range scenarios.All {
			if r := s(budget, cfg.SolveForDefaults); !r.Passed {
				failed++
			}
		}
	}
	return time.Since(start), failed
}

func ensureSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS samples (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			iterations INTEGER NOT NULL,
			avg_nanos INTEGER NOT NULL
		)
	`)
	return err
}

func previousAverage(db *sql.DB) (int64, error) {
	var avg sql.NullInt64
	err := db.QueryRow(`SELECT avg_nanos FROM samples ORDER BY id DESC LIMIT 1`).Scan(&avg)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return avg.Int64, nil
}

func recordSample(db *sql.DB, iterations int, avgNanos int64) error {
	_, err := db.Exec(`INSERT INTO samples (iterations, avg_nanos) VALUES (?, ?)`, iterations, avgNanos)
	return err
}
