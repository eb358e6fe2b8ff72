// Package stats aggregates sequence records into summary statistics.
package stats

import (
	"errors"
	"io"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// RecordSource yields sequence records one at a time, returning io.EOF
// when exhausted. *parser.Parser satisfies it.
type RecordSource interface {
	Next() ([]byte, error)
}

// Options configures aggregation.
type Options struct {
	GC bool // also compute the GC fraction
}

// Stats is the summary for one input. When Records is zero the
// length-derived fields (Shortest, MeanLength, StdDev, N50, N90, AuN,
// GC) are undefined and must not be rendered as real values.
type Stats struct {
	Name       string
	Format     string
	Records    int
	TotalBases int64
	Longest    int
	Shortest   int
	MeanLength float64
	StdDev     float64
	N50        int
	N90        int
	AuN        float64
	GC         float64
	HasGC      bool

	// Lengths holds the per-record lengths in input order, kept for
	// the length-distribution plot.
	Lengths []int
}

// Summarize folds all records from src into a Stats value. It never
// fails on its own: the returned error is only a propagated source
// error, and zero records is a valid outcome, not a failure.
func Summarize(name string, src RecordSource, opts Options) (*Stats, error) {
	s := &Stats{Name: name, HasGC: opts.GC}

	var gcCount int64
	for {
		rec, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		n := len(rec)
		if s.Records == 0 || n > s.Longest {
			s.Longest = n
		}
		if s.Records == 0 || n < s.Shortest {
			s.Shortest = n
		}
		s.Records++
		s.TotalBases += int64(n)
		s.Lengths = append(s.Lengths, n)

		if opts.GC {
			for _, b := range rec {
				switch b {
				case 'G', 'g', 'C', 'c':
					gcCount++
				}
			}
		}
	}

	if s.Records == 0 {
		return s, nil
	}

	lengths := make([]float64, len(s.Lengths))
	var sumSquared float64
	for i, n := range s.Lengths {
		lengths[i] = float64(n)
		sumSquared += float64(n) * float64(n)
	}
	s.MeanLength = stat.Mean(lengths, nil)
	if s.Records > 1 {
		s.StdDev = stat.StdDev(lengths, nil)
	}
	s.AuN = sumSquared / float64(s.TotalBases)

	sorted := make([]int, len(s.Lengths))
	copy(sorted, s.Lengths)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))
	s.N50 = nx(sorted, s.TotalBases, 50)
	s.N90 = nx(sorted, s.TotalBases, 90)

	if opts.GC {
		s.GC = float64(gcCount) / float64(s.TotalBases)
	}

	return s, nil
}

// nx returns the Nx order statistic: with lengths sorted in descending
// order, the length at which the running sum first reaches x percent of
// the total base count. The threshold uses integer floor division, so
// N50 on an odd total is total/2 truncated. Returns 0 when the
// threshold is never reached (only possible with no records).
func nx(sortedDesc []int, totalBases int64, x int64) int {
	threshold := totalBases * x / 100
	var running int64
	for _, n := range sortedDesc {
		running += int64(n)
		if running >= threshold {
			return n
		}
	}
	return 0
}
