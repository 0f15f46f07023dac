package explorer

import (
	"fmt"
	"log"
	"math"
	"path/filepath"

	"go-hep.org/x/hep/hbook"

	"TreeScope/internal/calculator"
	"TreeScope/internal/fitter"
	"TreeScope/internal/model"
	"TreeScope/internal/render"
)

const (
	DefaultBins   = 100
	DefaultBins2D = 50
	DefaultImage  = "histogram.png"
)

// DrawOptions control a 1D draw. Zero values select the defaults.
type DrawOptions struct {
	Bins  int
	Range model.Range
	Fit   model.FitKind
	Cut   string
}

// Draw2DOptions control a 2D draw. Zero values select the defaults.
type Draw2DOptions struct {
	Bins   int
	XRange model.Range
	YRange model.Range
	Cut    string
}

// Draw histograms the named branch after applying the cut, optionally fits a
// Gaussian, shows the plot, and records the filtered values as the plot state.
// A cut that fails to parse or evaluate is logged and ignored.
func (t *Tree) Draw(branch string, opts DrawOptions) (*model.DrawResult, error) {
	if opts.Fit != model.FitNone && opts.Fit != model.FitGaussian {
		return nil, fmt.Errorf("unsupported fit %q", opts.Fit)
	}
	bins, err := binCount(opts.Bins, DefaultBins)
	if err != nil {
		return nil, err
	}

	series, err := t.Branch(branch)
	if err != nil {
		return nil, err
	}

	values := series.Values
	mask := t.cutMask(opts.Cut, len(values))
	if mask != nil {
		if values, err = calculator.ApplyMask(values, mask); err != nil {
			return nil, err
		}
	}

	rng, err := calculator.HistRange(values, opts.Range)
	if err != nil {
		return nil, fmt.Errorf("histogram range for %q: %w", branch, err)
	}
	h := fill1D(values, bins, rng)

	res := &model.DrawResult{
		Label:         branch,
		Cut:           opts.Cut,
		CutApplied:    mask != nil,
		EntriesBefore: series.Len(),
		EntriesAfter:  len(values),
		Bins:          bins,
		XRange:        rng,
		X:             values,
	}

	hd := render.Hist1D{Label: branch, Hist: h, Legend: true}
	if opts.Fit == model.FitGaussian {
		// The fit sees every selected value, not only those inside the display range.
		fitRng, err := calculator.HistRange(values, model.Range{})
		if err != nil {
			return nil, fmt.Errorf("fit range for %q: %w", branch, err)
		}
		centers, counts := calculator.BinCenters(fill1D(values, bins, fitRng))
		fr := fitter.Gaussian(centers, counts, values)
		if !fr.Converged {
			log.Printf("[WARN] gaussian fit of %q failed: %s", branch, fr.Reason)
		}
		res.Fit = &fr
		hd.Fit = &fr
		hd.FitX = rng
		if lo, hi, err := calculator.Range(values); err == nil {
			hd.FitX = model.Range{Min: lo, Max: hi}
		}
	}

	p, err := render.Histogram(hd)
	if err != nil {
		return res, err
	}
	_, counts := calculator.BinCenters(h)
	fig := &render.Figure{
		Name:   branch,
		Title:  p.Title.Text,
		Plot:   p,
		Counts: counts,
		Range:  rng,
	}
	if err := t.viewer.Show(fig); err != nil {
		return res, fmt.Errorf("show %q: %w", branch, err)
	}
	t.remember(branch, values)
	return res, nil
}

// Draw2D histograms yBranch against xBranch. One cut mask is computed and
// applied to both axes, so the filtered X and Y stay index-aligned.
func (t *Tree) Draw2D(xBranch, yBranch string, opts Draw2DOptions) (*model.DrawResult, error) {
	bins, err := binCount(opts.Bins, DefaultBins2D)
	if err != nil {
		return nil, err
	}

	xs, err := t.Branch(xBranch)
	if err != nil {
		return nil, err
	}
	ys, err := t.Branch(yBranch)
	if err != nil {
		return nil, err
	}
	if xs.Len() != ys.Len() {
		return nil, fmt.Errorf("branches %q and %q differ in length: %d vs %d", xBranch, yBranch, xs.Len(), ys.Len())
	}

	x, y := xs.Values, ys.Values
	mask := t.cutMask(opts.Cut, len(x))
	if mask != nil {
		if x, err = calculator.ApplyMask(x, mask); err != nil {
			return nil, err
		}
		if y, err = calculator.ApplyMask(y, mask); err != nil {
			return nil, err
		}
	}

	xr, err := calculator.HistRange(x, opts.XRange)
	if err != nil {
		return nil, fmt.Errorf("histogram range for %q: %w", xBranch, err)
	}
	yr, err := calculator.HistRange(y, opts.YRange)
	if err != nil {
		return nil, fmt.Errorf("histogram range for %q: %w", yBranch, err)
	}

	h := hbook.NewH2D(bins, xr.Min, xr.Max, bins, yr.Min, yr.Max)
	for i := range x {
		h.Fill(closeRight(x[i], xr), closeRight(y[i], yr), 1)
	}

	res := &model.DrawResult{
		Label:         xBranch,
		YLabel:        yBranch,
		Cut:           opts.Cut,
		CutApplied:    mask != nil,
		EntriesBefore: xs.Len(),
		EntriesAfter:  len(x),
		Bins:          bins,
		XRange:        xr,
		YRange:        yr,
		X:             x,
		Y:             y,
	}

	p := render.Histogram2D(xBranch, yBranch, h)
	fig := &render.Figure{Name: xBranch + "_vs_" + yBranch, Title: p.Title.Text, Plot: p}
	if err := t.viewer.Show(fig); err != nil {
		return res, fmt.Errorf("show %q vs %q: %w", xBranch, yBranch, err)
	}
	return res, nil
}

// SaveHistogram re-renders the last 1D draw into filename and returns its
// absolute path. Without a previous draw it logs a notice and writes nothing.
func (t *Tree) SaveHistogram(filename string) (string, error) {
	if t.last.Empty() {
		log.Println("[INFO] no histogram to save, run Draw first")
		return "", nil
	}
	if filename == "" {
		filename = DefaultImage
	}

	rng, err := calculator.HistRange(t.last.Values, model.Range{})
	if err != nil {
		return "", fmt.Errorf("histogram range for %q: %w", t.last.Label, err)
	}
	p, err := render.Histogram(render.Hist1D{
		Label: t.last.Label,
		Hist:  fill1D(t.last.Values, DefaultBins, rng),
	})
	if err != nil {
		return "", err
	}
	if err := render.Save(p, filename, t.width, t.height); err != nil {
		return "", err
	}

	abs, err := filepath.Abs(filename)
	if err != nil {
		abs = filename
	}
	log.Printf("[INFO] histogram saved as: %s", abs)
	return abs, nil
}

func binCount(bins, def int) (int, error) {
	switch {
	case bins == 0:
		return def, nil
	case bins < 0:
		return 0, fmt.Errorf("bins must be positive, got %d", bins)
	default:
		return bins, nil
	}
}

func fill1D(values []float64, bins int, rng model.Range) *hbook.H1D {
	h := hbook.NewH1D(bins, rng.Min, rng.Max)
	for _, v := range values {
		h.Fill(closeRight(v, rng), 1)
	}
	return h
}

// closeRight moves a value sitting exactly on the upper edge into the last
// bin, so the range is closed on the right like the data-derived range implies.
func closeRight(v float64, rng model.Range) float64 {
	if v == rng.Max {
		return math.Nextafter(rng.Max, rng.Min)
	}
	return v
}
