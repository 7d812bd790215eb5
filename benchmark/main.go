// Package main provides a performance benchmarking tool for the studytrack CLI.
// It generates answer datasets of increasing size, imports each one into a fresh
// SQLite store and measures the views, treating the first successful run as cold
// and averaging the rest as warm. Results are written to CSV for documentation.
//
// Prerequisites:
// - studytrack binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory for generated datasets and stores (default: a temp dir)
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"
)

// BenchmarkResult holds the timings of one command on one dataset.
type BenchmarkResult struct {
	Dataset  string
	Command  string
	ColdTime string
	WarmTime string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir  string
	Timeout  time.Duration
	Runs     int
	Datasets map[string]int
	Order    []string
	Commands map[string][]string
	CmdOrder []string
}

var subjects = []string{"math", "physics", "chemistry", "biology", "history", "geography", "portuguese", "english"}

func main() {
	workDir := ""
	switch len(os.Args) {
	case 1:
		dir, err := os.MkdirTemp("", "studytrack-bench-")
		if err != nil {
			fmt.Printf("Failed to create work dir: %v\n", err)
			os.Exit(1)
		}
		workDir = dir
	case 2:
		workDir = os.Args[1]
	default:
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		WorkDir: workDir,
		Timeout: 5 * time.Minute,
		Runs:    5,
		Datasets: map[string]int{
			"small":  1_000,
			"medium": 50_000,
			"large":  500_000,
		},
		Order: []string{"small", "medium", "large"},
		Commands: map[string][]string{
			"evolution":  {"evolution", "--start", "1 year ago", "--output", "json"},
			"percentage": {"evolution", "--start", "1 year ago", "--metric", "percentage", "--periods", "24", "--output", "json"},
			"subjects":   {"subjects", "--output", "json"},
			"weekly":     {"weekly", "--output", "json"},
			"summary":    {"summary", "--output", "json"},
		},
		CmdOrder: []string{"evolution", "percentage", "subjects", "weekly", "summary"},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	results, err := runBenchmarks(config)
	if err != nil {
		fmt.Printf("Benchmark failed: %v\n", err)
		os.Exit(1)
	}

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(config, results)
}

// checkPrerequisites verifies that the studytrack binary and work dir exist
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("studytrack"); err != nil {
		return errors.New("studytrack binary not found in PATH")
	}
	return os.MkdirAll(config.WorkDir, 0o755)
}

// runBenchmarks generates, imports and measures every dataset
func runBenchmarks(config BenchmarkConfig) ([]BenchmarkResult, error) {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d datasets, %v timeout, %d runs per command\n",
		len(config.Order), config.Timeout, config.Runs)

	for _, name := range config.Order {
		size := config.Datasets[name]
		fmt.Printf("Benchmarking %s (%d answers)\n", name, size)

		dataFile := filepath.Join(config.WorkDir, name+".csv")
		if err := generateDataset(dataFile, size); err != nil {
			return nil, fmt.Errorf("generate %s: %w", name, err)
		}

		dbFile := filepath.Join(config.WorkDir, name+".db")
		_ = os.Remove(dbFile)
		env := append(os.Environ(),
			"STUDYTRACK_DB_BACKEND=sqlite",
			"STUDYTRACK_DB_CONNECT="+dbFile,
		)

		importTime, err := timeCommand(config, env, []string{"import", dataFile})
		if err != nil {
			return nil, fmt.Errorf("import %s: %w", name, err)
		}
		results = append(results, BenchmarkResult{
			Dataset:  name,
			Command:  "import",
			ColdTime: formatSeconds(importTime),
			WarmTime: "-",
		})

		for _, command := range config.CmdOrder {
			results = append(results, runBenchmarkSuite(config, env, name, command))
		}
	}

	return results, nil
}

// runBenchmarkSuite runs a command several times against one store
func runBenchmarkSuite(config BenchmarkConfig, env []string, dataset, command string) BenchmarkResult {
	fmt.Printf("  Running %s (%d runs)\n", command, config.Runs)

	var times []float64
	for range config.Runs {
		elapsed, err := timeCommand(config, env, config.Commands[command])
		if err != nil {
			fmt.Printf("    run failed: %v\n", err)
			continue
		}
		times = append(times, elapsed)
	}

	result := BenchmarkResult{Dataset: dataset, Command: command, ColdTime: "FAILED", WarmTime: "FAILED"}
	if len(times) > 0 {
		result.ColdTime = formatSeconds(times[0])
	}
	if len(times) > 1 {
		var sum float64
		for _, t := range times[1:] {
			sum += t
		}
		result.WarmTime = formatSeconds(sum / float64(len(times)-1))
	}

	fmt.Printf("  Cold time: %s, Warm average: %s\n", result.ColdTime, result.WarmTime)
	return result
}

// timeCommand runs studytrack once and returns the elapsed seconds
func timeCommand(config BenchmarkConfig, env, args []string) (float64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), config.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "studytrack", args...)
	cmd.Env = env

	start := time.Now()
	output, err := cmd.CombinedOutput()
	if err != nil {
		return 0, fmt.Errorf("%w: %s", err, output)
	}
	return time.Since(start).Seconds(), nil
}

// generateDataset writes size random answers spread over the last two years
func generateDataset(path string, size int) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	rng := rand.New(rand.NewPCG(42, uint64(size)))
	now := time.Now().UTC()
	span := int64(2 * 365 * 24 * time.Hour)

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"question_id", "subject", "topic", "answer", "is_correct", "answered_at"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for i := range size {
		subject := subjects[rng.IntN(len(subjects))]
		answeredAt := now.Add(-time.Duration(rng.Int64N(span)))
		record := []string{
			"q-" + strconv.Itoa(rng.IntN(size/4+1)),
			subject,
			subject + "-" + strconv.Itoa(rng.IntN(10)),
			string(rune('A' + rng.IntN(5))),
			strconv.FormatBool(rng.Float64() < 0.65),
			answeredAt.Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record %d: %w", i, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatSeconds(s float64) string {
	return fmt.Sprintf("%.3fs", s)
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(os.TempDir(), fmt.Sprintf("studytrack_benchmark_%s.csv", timestamp))

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

	if err := writer.Write([]string{"dataset", "cmd", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, result := range results {
		if err := writer.Write([]string{result.Dataset, result.Command, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results grouped by command
func printSummary(config BenchmarkConfig, results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, command := range append([]string{"import"}, config.CmdOrder...) {
		fmt.Printf("%s:\n", command)
		for _, result := range results {
			if result.Command == command {
				fmt.Printf("  %-8s: Cold: %s, Warm: %s\n", result.Dataset, result.ColdTime, result.WarmTime)
			}
		}
	}
}
