// Package main provides a performance benchmarking tool for the tempdash CLI.
// It measures how long snapshot runs take across window capacities, once without
// a journal and once with the sqlite journal, and writes the timings to CSV.
//
// Prerequisites:
// - tempdash binary installed and available in PATH
//
// Usage: go run benchmark/main.go [ticks]
//
//	ticks: Number of ticks per snapshot run (default 1000)
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"
)

// BenchmarkResult holds the averaged timings for one capacity.
type BenchmarkResult struct {
	Capacity    int
	Ticks       int
	NoJournal   string
	JournalCold string
	JournalWarm string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	Ticks       int
	Timeout     time.Duration
	NoneRuns    int
	JournalRuns int
	Capacities  []int
	Home        string
}

func main() {
	ticks := 1000
	if len(os.Args) == 2 {
		n, err := strconv.Atoi(os.Args[1])
		if err != nil || n <= 0 {
			fmt.Printf("Usage: %s [ticks]\n", os.Args[0])
			os.Exit(1)
		}
		ticks = n
	}

	if _, err := exec.LookPath("tempdash"); err != nil {
		fmt.Println("Prerequisites check failed: tempdash binary not found in PATH")
		os.Exit(1)
	}

	// Keep the sqlite journal away from the real home directory
	home, err := os.MkdirTemp("", "tempdash-benchmark-*")
	if err != nil {
		fmt.Printf("Failed to create temp dir: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = os.RemoveAll(home) }()

	config := BenchmarkConfig{
		Ticks:       ticks,
		Timeout:     2 * time.Minute,
		NoneRuns:    3,
		JournalRuns: 4,
		Capacities:  []int{10, 100, 500, 1000},
		Home:        home,
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// runBenchmarks executes the snapshot suite for every configured capacity.
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	fmt.Printf("Starting benchmark: %d capacities, %d ticks, %v timeout, no-journal: %d runs, journal: %d runs\n",
		len(config.Capacities), config.Ticks, config.Timeout, config.NoneRuns, config.JournalRuns)

	var results []BenchmarkResult
	for _, capacity := range config.Capacities {
		results = append(results, runBenchmarkSuite(config, capacity))
	}
	return results
}

// runBenchmarkSuite runs the no-journal and journal phases for one capacity.
func runBenchmarkSuite(config BenchmarkConfig, capacity int) BenchmarkResult {
	fmt.Printf("Benchmarking capacity %d\n", capacity)

	_, noneTimes := runBenchmark(config, capacity, "none", config.NoneRuns)
	cold, warmTimes := runBenchmark(config, capacity, "sqlite", config.JournalRuns)

	result := BenchmarkResult{
		Capacity:    capacity,
		Ticks:       config.Ticks,
		NoJournal:   average(noneTimes),
		JournalCold: "TIMEOUT",
		JournalWarm: average(warmTimes),
	}
	if cold > 0 {
		result.JournalCold = fmt.Sprintf("%.3fs", cold)
	}

	fmt.Printf("  No-journal average: %s, Journal cold: %s, Journal warm average: %s\n",
		result.NoJournal, result.JournalCold, result.JournalWarm)
	return result
}

// runBenchmark runs snapshot numRuns times and returns the first time and the rest.
func runBenchmark(config BenchmarkConfig, capacity int, backend string, numRuns int) (coldTime float64, warmTimes []float64) {
	args := []string{
		"snapshot",
		"--interval", "10ms",
		"--capacity", strconv.Itoa(capacity),
		"--ticks", strconv.Itoa(config.Ticks),
		"--seed", "42",
		"--output", "json",
		"--output-file", filepath.Join(config.Home, "snapshot.json"),
		"--journal-backend", backend,
	}

	var times []float64
	for range numRuns {
		ctx, cancel := context.WithTimeout(context.Background(), config.Timeout)
		cmd := exec.CommandContext(ctx, "tempdash", args...)
		cmd.Env = append(os.Environ(), "HOME="+config.Home, "TEMPDASH_COLOR=no")

		start := time.Now()
		if output, err := cmd.CombinedOutput(); err != nil {
			fmt.Printf("  run failed: %v\n%s", err, string(output))
		} else {
			times = append(times, time.Since(start).Seconds())
		}
		cancel()
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	// Without a journal there is no cold start to separate out
	if backend == "none" {
		return coldTime, times
	}
	return coldTime, warmTimes
}

func average(times []float64) string {
	if len(times) == 0 {
		return "TIMEOUT"
	}
	var sum float64
	for _, t := range times {
		sum += t
	}
	return fmt.Sprintf("%.3fs", sum/float64(len(times)))
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(os.TempDir(), fmt.Sprintf("tempdash_benchmark_%s.csv", timestamp))

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"capacity", "ticks", "no_journal_avg", "journal_cold", "journal_warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, r := range results {
		record := []string{strconv.Itoa(r.Capacity), strconv.Itoa(r.Ticks), r.NoJournal, r.JournalCold, r.JournalWarm}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, r := range results {
		fmt.Printf("  capacity %-6d: No-journal: %s, Cold: %s, Warm: %s\n", r.Capacity, r.NoJournal, r.JournalCold, r.JournalWarm)
	}
}
