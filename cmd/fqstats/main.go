// fqstats prints summary statistics for FASTA and FASTQ files.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/telatin/fqstats/internal/report"
	"github.com/telatin/fqstats/internal/stats"
)

var version = "dev"

const (
	exitSuccess = 0
	exitError   = 1
)

type config struct {
	gc       bool
	plotFile string
	inputs   []string
}

func main() {
	os.Exit(run())
}

func run() int {
	cfg, done := parseFlags()
	if done {
		return exitSuccess
	}

	if cfg.plotFile != "" && len(cfg.inputs) > 1 {
		fmt.Fprintln(os.Stderr, "error: -plot accepts a single input")
		return exitError
	}

	// Each input is one independent pipeline run; files are processed
	// concurrently and printed in argument order.
	results := make([]*stats.Stats, len(cfg.inputs))
	failures := make([]error, len(cfg.inputs))

	var g errgroup.Group
	for i, path := range cfg.inputs {
		i, path := i, path
		g.Go(func() error {
			s, err := summarizeFile(path, report.Options{GC: cfg.gc})
			if err != nil {
				failures[i] = err
				return nil
			}
			results[i] = s
			return nil
		})
	}
	_ = g.Wait() // per-file errors are collected, never propagated

	failed := false
	for i := range cfg.inputs {
		if failures[i] != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", failures[i])
			failed = true
			continue
		}
		report.Render(os.Stdout, results[i])
	}

	if cfg.plotFile != "" && results[0] != nil {
		if err := writePlot(cfg.plotFile, results[0].Lengths); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return exitError
		}
	}

	if failed {
		return exitError
	}
	return exitSuccess
}

func parseFlags() (config, bool) {
	var cfg config
	var showVersion, showHelp bool

	flag.BoolVar(&cfg.gc, "gc", false, "compute GC fraction")
	flag.StringVar(&cfg.plotFile, "plot", "", "write length-distribution SVG to file (single input only)")
	flag.BoolVar(&showVersion, "version", false, "show version and exit")
	flag.BoolVar(&showHelp, "h", false, "show help")

	flag.Usage = usage
	flag.Parse()

	if showHelp {
		flag.Usage()
		return cfg, true
	}

	if showVersion {
		fmt.Printf("fqstats version %s\n", version)
		return cfg, true
	}

	cfg.inputs = flag.Args()
	if len(cfg.inputs) == 0 {
		cfg.inputs = []string{"-"}
	}

	return cfg, false
}

func usage() {
	fmt.Fprintf(os.Stderr, `fqstats - FASTA/FASTQ summary statistics

Usage:
  fqstats [options] [file ...]    Summarize sequence files
  fqstats [options]               Summarize stdin

Options:
`)
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, `
Examples:
  fqstats reads.fastq                       Summarize a FASTQ file
  fqstats -gc assembly.fasta.gz             Gzip input with GC fraction
  fqstats a.fasta b.fasta c.fastq           Summarize several files
  fqstats -plot lengths.svg reads.fq        Write a length histogram
  cat reads.fq | fqstats                    Summarize from stdin
`)
}

// summarizeFile reads one input and runs the statistics pipeline on it.
// Stdin carries no filename, so compression detection falls back to
// magic-byte sniffing.
func summarizeFile(path string, opts report.Options) (*stats.Stats, error) {
	if path == "" || path == "-" {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return report.Summarize("", raw, opts)
	}

	raw, err := os.ReadFile(path) //nolint:gosec // CLI tool needs to open user-specified files
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return report.Summarize(path, raw, opts)
}

func writePlot(path string, lengths []int) error {
	svg, err := report.LengthPlotSVG(lengths)
	if err != nil {
		return fmt.Errorf("building plot: %w", err)
	}
	if err := os.WriteFile(path, []byte(svg), 0o644); err != nil { //nolint:gosec // user-specified output path
		return fmt.Errorf("writing plot: %w", err)
	}
	return nil
}
