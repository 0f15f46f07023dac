package render

import (
	"fmt"
	"image/color"

	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"

	"TreeScope/internal/fitter"
	"TreeScope/internal/model"
)

var (
	fillColor = color.NRGBA{R: 135, G: 206, B: 235, A: 178} // skyblue, alpha 0.7
	fitColor  = color.NRGBA{R: 220, A: 255}
)

// Hist1D describes a one-dimensional histogram figure.
type Hist1D struct {
	Label  string
	Hist   *hbook.H1D
	Fit    *model.FitResult
	FitX   model.Range // x span of the fitted curve
	Legend bool
}

// Histogram builds a new plot of a 1D histogram. Every call owns its own plot.
func Histogram(hd Hist1D) (*hplot.Plot, error) {
	p := hplot.New()
	p.Title.Text = fmt.Sprintf("%s Distribution", hd.Label)
	p.X.Label.Text = hd.Label
	p.Y.Label.Text = "Counts"

	h := hplot.NewH1D(hd.Hist)
	h.FillColor = fillColor
	h.LineStyle.Color = color.Black
	h.LineStyle.Width = vg.Points(1)
	p.Add(h)
	if hd.Legend {
		p.Legend.Add(hd.Label, h)
	}

	if hd.Fit != nil {
		if hd.Fit.Converged {
			fr := *hd.Fit
			fn := plotter.NewFunction(func(x float64) float64 {
				return fitter.Gauss(x, fr.Amplitude, fr.Mean, fr.Sigma)
			})
			fn.XMin = hd.FitX.Min
			fn.XMax = hd.FitX.Max
			fn.Samples = 1000
			fn.LineStyle.Color = fitColor
			fn.LineStyle.Width = vg.Points(1.5)
			fn.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
			p.Add(fn)
			if hd.Legend {
				p.Legend.Add(fmt.Sprintf("Gaussian Fit μ=%.2f, σ=%.2f", fr.Mean, fr.Sigma), fn)
			}
		} else {
			lbl, err := fitFailedLabel(hd.Hist)
			if err != nil {
				return nil, err
			}
			p.Add(lbl)
		}
	}

	p.Add(hplot.NewGrid())
	return p, nil
}

// fitFailedLabel places a red notice at the horizontal center, near the top of the data.
func fitFailedLabel(h *hbook.H1D) (*plotter.Labels, error) {
	x := 0.5 * (h.XMin() + h.XMax())
	var y float64
	for _, b := range h.Binning.Bins {
		if b.SumW() > y {
			y = b.SumW()
		}
	}
	lbl, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    []plotter.XY{{X: x, Y: 0.9 * y}},
		Labels: []string{"Fit failed"},
	})
	if err != nil {
		return nil, fmt.Errorf("fit annotation: %w", err)
	}
	for i := range lbl.TextStyle {
		lbl.TextStyle[i].Color = fitColor
		lbl.TextStyle[i].XAlign = text.XCenter
	}
	return lbl, nil
}

// Histogram2D builds a heat map of h titled "<x> vs <y>".
func Histogram2D(xLabel, yLabel string, h *hbook.H2D) *hplot.Plot {
	p := hplot.New()
	p.Title.Text = fmt.Sprintf("%s vs %s", xLabel, yLabel)
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Add(hplot.NewH2D(h, palette.Heat(64, 1)))
	p.Add(hplot.NewGrid())
	return p
}

// Save writes p as an image; the format follows the file extension.
func Save(p *hplot.Plot, path string, width, height vg.Length) error {
	if err := p.Save(width, height, path); err != nil {
		return fmt.Errorf("save plot %s: %w", path, err)
	}
	return nil
}
