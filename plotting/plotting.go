// Package plotting renders diagnostic charts for prepared data and training
// runs: error histograms, cost and accuracy curves, and function overlays.
//
// All drawing is done by gonum.org/v1/plot; this package only shapes the
// inputs and styles the result.
package plotting

import (
	"image/color"
	"path/filepath"
	"sort"

	"github.com/YuminosukeSato/dataprep/metrics"
	"github.com/YuminosukeSato/dataprep/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const (
	// DefaultBins is the histogram bin count used when none is given.
	DefaultBins = 16
	// DefaultWorstFraction is the share of points marked in FunctionOverlay.
	DefaultWorstFraction = 0.05

	// DefaultWidth and DefaultHeight size saved images.
	DefaultWidth  = 6 * vg.Inch
	DefaultHeight = 4 * vg.Inch
)

var (
	actualColor = color.RGBA{G: 190, B: 190, A: 255}
	netColor    = color.RGBA{R: 220, A: 255}
)

// ErrorHistogram bins values, typically per-sample test errors.
func ErrorHistogram(values []float64, bins int, title string) (*plot.Plot, error) {
	if len(values) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "plotting.ErrorHistogram")
	}
	if bins < 1 {
		return nil, errors.NewValidationError("bins", "must be positive", bins)
	}

	h, err := plotter.NewHist(plotter.Values(values), bins)
	if err != nil {
		return nil, errors.Wrap(err, "histogram")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Error"
	p.Y.Label.Text = "Count"
	p.Add(h)
	return p, nil
}

// Curve draws a single line such as cost per epoch or training accuracy.
func Curve(xys plotter.XYs, title, xLabel, yLabel string) (*plot.Plot, error) {
	if len(xys) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "plotting.Curve")
	}
	l, err := plotter.NewLine(xys)
	if err != nil {
		return nil, errors.Wrap(err, "line")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Add(l, plotter.NewGrid())
	return p, nil
}

// FunctionOverlay draws the actual function and a network's approximation of
// it. Points of net whose squared error is among the worst worstFraction of
// all points are marked with a cross.
func FunctionOverlay(actual, net plotter.XYs, worstFraction float64, title, name string) (*plot.Plot, error) {
	worst, err := WorstIndices(actual, net, worstFraction)
	if err != nil {
		return nil, err
	}

	actualLine, err := plotter.NewLine(actual)
	if err != nil {
		return nil, errors.Wrap(err, "actual line")
	}
	actualLine.Color = actualColor

	netLine, err := plotter.NewLine(net)
	if err != nil {
		return nil, errors.Wrap(err, "net line")
	}
	netLine.Color = netColor

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.Add(actualLine, netLine)
	p.Legend.Add(name, actualLine)
	p.Legend.Add("network", netLine)

	if len(worst) > 0 {
		marked := make(plotter.XYs, len(worst))
		for k, i := range worst {
			marked[k] = net[i]
		}
		s, err := plotter.NewScatter(marked)
		if err != nil {
			return nil, errors.Wrap(err, "worst points")
		}
		s.GlyphStyle = draw.GlyphStyle{
			Color:  netColor,
			Radius: vg.Points(3),
			Shape:  draw.CrossGlyph{},
		}
		p.Add(s)
	}
	return p, nil
}

// WorstIndices returns the indices of the points whose squared difference
// between actual and net Y values is among the int(fraction*n) largest,
// worst first. Every point tied with the smallest of those values is
// included, so the result can be longer than int(fraction*n).
func WorstIndices(actual, net plotter.XYs, fraction float64) ([]int, error) {
	if len(actual) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "plotting.WorstIndices")
	}
	if len(actual) != len(net) {
		return nil, errors.NewDimensionError("plotting.WorstIndices", len(actual), len(net), 0)
	}
	if fraction < 0 || fraction > 1 {
		return nil, errors.NewValidationError("worst_fraction", "must be within [0, 1]", fraction)
	}

	sqErr, err := metrics.SquaredErrors(Ys(actual), Ys(net))
	if err != nil {
		return nil, err
	}
	idx := make([]int, len(actual))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return sqErr[idx[a]] > sqErr[idx[b]] })

	k := int(fraction * float64(len(actual)))
	if k == 0 {
		return idx[:0], nil
	}
	threshold := sqErr[idx[k-1]]
	for k < len(idx) && sqErr[idx[k]] >= threshold {
		k++
	}
	return idx[:k], nil
}

// Ys returns the Y values of xys.
func Ys(xys plotter.XYs) []float64 {
	ys := make([]float64, len(xys))
	for i, xy := range xys {
		ys[i] = xy.Y
	}
	return ys
}

// Save writes p to path. The image format follows the file extension.
func Save(p *plot.Plot, path string, width, height vg.Length) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := mkdirAll(dir); err != nil {
			return err
		}
	}
	if err := p.Save(width, height, path); err != nil {
		return errors.Wrapf(err, "save plot %s", path)
	}
	return nil
}
