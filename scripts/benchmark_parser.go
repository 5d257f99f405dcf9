// Command benchmark_parser turns `go test -bench` output from the hive
// package into a markdown summary table, grouping variants of the same
// operation (dense vs half-erased iteration, cold vs reserved insertion).
//
// Usage:
//
//	go test -bench . -benchmem ./hive | go run scripts/benchmark_parser.go
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strconv"
)

// BenchmarkResult represents one parsed benchmark line.
type BenchmarkResult struct {
	Name        string
	Operation   string
	Variant     string
	Iterations  int
	NsPerOp     float64
	BytesPerOp  int64
	AllocsPerOp int64
}

var (
	inputFile  = flag.String("input", "", "Input file with benchmark output (stdin if not specified)")
	outputFile = flag.String("output", "", "Output markdown file (stdout if not specified)")
	quiet      = flag.Bool("quiet", false, "Suppress progress output")
)

// e.g. "BenchmarkIterate_HalfErased-8   	     100	  10123456 ns/op	       0 B/op	       0 allocs/op"
var benchLine = regexp.MustCompile(
	`^Benchmark(\w+?)(?:_(\w+))?(?:-\d+)?\s+(\d+)\s+([\d.]+) ns/op(?:\s+(\d+) B/op\s+(\d+) allocs/op)?`)

func main() {
	flag.Parse()

	in := os.Stdin
	if *inputFile != "" {
		f, err := os.Open(*inputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening input file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}

	results := parseBenchmarks(bufio.NewScanner(in))
	if !*quiet {
		fmt.Fprintf(os.Stderr, "Parsed %d benchmark results\n", len(results))
	}

	out := os.Stdout
	if *outputFile != "" {
		f, err := os.Create(*outputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}
	writeMarkdown(out, results)
}

func parseBenchmarks(scanner *bufio.Scanner) []BenchmarkResult {
	var results []BenchmarkResult
	for scanner.Scan() {
		m := benchLine.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}
		r := BenchmarkResult{
			Name:      m[1],
			Operation: m[1],
			Variant:   m[2],
		}
		if r.Variant == "" {
			r.Variant = "default"
		}
		r.Iterations, _ = strconv.Atoi(m[3])
		r.NsPerOp, _ = strconv.ParseFloat(m[4], 64)
		if m[5] != "" {
			r.BytesPerOp, _ = strconv.ParseInt(m[5], 10, 64)
			r.AllocsPerOp, _ = strconv.ParseInt(m[6], 10, 64)
		}
		results = append(results, r)
	}
	return results
}

func writeMarkdown(out *os.File, results []BenchmarkResult) {
	byOp := map[string][]BenchmarkResult{}
	var ops []string
	for _, r := range results {
		if _, ok := byOp[r.Operation]; !ok {
			ops = append(ops, r.Operation)
		}
		byOp[r.Operation] = append(byOp[r.Operation], r)
	}
	sort.Strings(ops)

	fmt.Fprintln(out, "# Hive benchmark summary")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "| Operation | Variant | ns/op | B/op | allocs/op |")
	fmt.Fprintln(out, "|---|---|---:|---:|---:|")
	for _, op := range ops {
		group := byOp[op]
		sort.Slice(group, func(i, j int) bool { return group[i].Variant < group[j].Variant })
		for _, r := range group {
			fmt.Fprintf(out, "| %s | %s | %s | %d | %d |\n",
				r.Operation, r.Variant, formatNs(r.NsPerOp), r.BytesPerOp, r.AllocsPerOp)
		}
	}
}

func formatNs(ns float64) string {
	switch {
	case ns >= 1e6:
		return fmt.Sprintf("%.2fms", ns/1e6)
	case ns >= 1e3:
		return fmt.Sprintf("%.2fµs", ns/1e3)
	default:
		return fmt.Sprintf("%.1fns", ns)
	}
}
