// Package report composes the decode, parse and summarize stages into
// one pipeline and renders the result for display.
package report

import (
	"fmt"
	"io"

	"github.com/telatin/fqstats/internal/decode"
	"github.com/telatin/fqstats/internal/parser"
	"github.com/telatin/fqstats/internal/stats"
)

// Options configures one pipeline run.
type Options struct {
	GC bool // also compute the GC fraction
}

// Summarize runs the full pipeline over one input buffer: decode raw
// bytes to text, parse records, aggregate statistics. Each call is
// independent; nothing is retained across calls.
func Summarize(name string, raw []byte, opts Options) (*stats.Stats, error) {
	text, err := decode.Decode(name, raw)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", displayName(name), err)
	}

	p, err := parser.New(text)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", displayName(name), err)
	}

	s, err := stats.Summarize(displayName(name), p, stats.Options(opts))
	if err != nil {
		return nil, err
	}
	s.Format = p.Format().String()
	return s, nil
}

// Render writes a human-readable statistics block. Fields that are
// undefined for an empty input are printed as "n/a" rather than as
// zero values that look real.
func Render(w io.Writer, s *stats.Stats) {
	fmt.Fprintf(w, "%s (%s)\n", s.Name, s.Format)
	fmt.Fprintf(w, "  sequences:    %d\n", s.Records)
	fmt.Fprintf(w, "  total bases:  %d\n", s.TotalBases)

	if s.Records == 0 {
		fmt.Fprintf(w, "  min length:   n/a\n")
		fmt.Fprintf(w, "  max length:   n/a\n")
		fmt.Fprintf(w, "  mean length:  n/a\n")
		fmt.Fprintf(w, "  N50:          n/a\n")
		return
	}

	fmt.Fprintf(w, "  min length:   %d\n", s.Shortest)
	fmt.Fprintf(w, "  max length:   %d\n", s.Longest)
	fmt.Fprintf(w, "  mean length:  %.2f\n", s.MeanLength)
	fmt.Fprintf(w, "  length sd:    %.2f\n", s.StdDev)
	fmt.Fprintf(w, "  N50:          %d\n", s.N50)
	fmt.Fprintf(w, "  N90:          %d\n", s.N90)
	fmt.Fprintf(w, "  auN:          %.2f\n", s.AuN)
	if s.HasGC {
		fmt.Fprintf(w, "  GC:           %.2f%%\n", s.GC*100)
	}
}

func displayName(name string) string {
	if name == "" {
		return "stdin"
	}
	return name
}
