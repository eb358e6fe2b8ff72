package report

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// LengthPlotSVG renders the sequence length distribution as an SVG line
// plot, binning lengths into at most 100 buckets.
func LengthPlotSVG(lengths []int) (string, error) {
	if len(lengths) == 0 {
		return "", errors.New("no sequences to plot")
	}

	p := plot.New()
	p.Title.Text = "Sequence Length Distribution"
	p.X.Label.Text = "Length (bp)"
	p.Y.Label.Text = "Sequence Count"

	minLen, maxLen := lengths[0], lengths[0]
	for _, l := range lengths {
		if l < minLen {
			minLen = l
		}
		if l > maxLen {
			maxLen = l
		}
	}

	binCount := 100
	if span := maxLen - minLen + 1; span < binCount {
		binCount = span
	}
	binWidth := float64(maxLen-minLen+1) / float64(binCount)

	counts := make([]float64, binCount)
	for _, l := range lengths {
		bin := int(float64(l-minLen) / binWidth)
		if bin >= binCount {
			bin = binCount - 1
		}
		counts[bin]++
	}

	points := make(plotter.XYs, binCount)
	for i := range counts {
		points[i].X = float64(minLen) + binWidth*(float64(i)+0.5)
		points[i].Y = counts[i]
	}

	line, err := plotter.NewLine(points)
	if err != nil {
		return "", fmt.Errorf("building length plot: %w", err)
	}
	line.LineStyle.Color = color.RGBA{R: 50, G: 100, B: 200, A: 255}
	line.LineStyle.Width = vg.Points(2)
	p.Add(line)
	p.Legend.Add("Sequence Count", line)
	p.Legend.Top = true

	var buf bytes.Buffer
	writer, err := p.WriterTo(10*vg.Inch, 4*vg.Inch, "svg")
	if err != nil {
		return "", fmt.Errorf("rendering length plot: %w", err)
	}
	if _, err := writer.WriteTo(&buf); err != nil {
		return "", fmt.Errorf("rendering length plot: %w", err)
	}
	return buf.String(), nil
}
