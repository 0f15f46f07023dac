package render

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go-hep.org/x/hep/hbook"

	"TreeScope/internal/model"
)

func sampleHist() *hbook.H1D {
	h := hbook.NewH1D(4, 0, 4)
	for _, v := range []float64{0.5, 1.5, 1.6, 2.5, 2.6, 2.7, 3.5} {
		h.Fill(v, 1)
	}
	return h
}

func TestHistogram_Titles(t *testing.T) {
	p, err := Histogram(Hist1D{Label: "pt", Hist: sampleHist(), Legend: true})
	require.NoError(t, err)
	assert.Equal(t, "pt Distribution", p.Title.Text)
	assert.Equal(t, "pt", p.X.Label.Text)
	assert.Equal(t, "Counts", p.Y.Label.Text)
}

func TestHistogram_SaveWithFitAndFailure(t *testing.T) {
	dir := t.TempDir()
	for name, fit := range map[string]*model.FitResult{
		"ok.png":     {Kind: model.FitGaussian, Converged: true, Amplitude: 3, Mean: 2, Sigma: 1},
		"failed.png": {Kind: model.FitGaussian, Reason: "did not converge"},
	} {
		p, err := Histogram(Hist1D{Label: "x", Hist: sampleHist(), Fit: fit, FitX: model.Range{Min: 0, Max: 4}, Legend: true})
		require.NoError(t, err)
		path := filepath.Join(dir, name)
		require.NoError(t, Save(p, path, DefaultWidth, DefaultHeight))
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
}

func TestHistogram2D(t *testing.T) {
	h := hbook.NewH2D(5, 0, 5, 5, 0, 5)
	h.Fill(1, 2, 1)
	h.Fill(3, 4, 1)
	p := Histogram2D("x", "y", h)
	assert.Equal(t, "x vs y", p.Title.Text)

	path := filepath.Join(t.TempDir(), "xy.png")
	require.NoError(t, Save(p, path, DefaultWidth, DefaultHeight))
	assert.FileExists(t, path)
}

func TestTextHistogram(t *testing.T) {
	fig := &Figure{
		Title:  "pt Distribution",
		Counts: []float64{1, 2, 3, 1},
		Range:  model.Range{Min: 0, Max: 4},
	}
	out := TextHistogram(fig, 2, 10)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "pt Distribution", lines[0])
	assert.Contains(t, lines[1], "######")
	assert.True(t, strings.HasSuffix(lines[1], " 3"))
	assert.Contains(t, lines[2], strings.Repeat("#", 10))
	assert.True(t, strings.HasSuffix(lines[2], " 4"))

	out = TextHistogram(&Figure{Title: "x vs y"}, 20, 50)
	assert.Contains(t, out, "no 1D data")
}

func TestViewers(t *testing.T) {
	p, err := Histogram(Hist1D{Label: "a/b", Hist: sampleHist()})
	require.NoError(t, err)
	fig := &Figure{Name: "a/b", Title: p.Title.Text, Plot: p, Counts: []float64{1, 2}, Range: model.Range{Max: 4}}

	dir := t.TempDir()
	var buf bytes.Buffer
	file := filepath.Join(dir, "sub", "fixed.png")
	viewers := MultiViewer{
		NopViewer{},
		NewDirViewer(dir),
		&FileViewer{Path: file, Width: DefaultWidth, Height: DefaultHeight},
		NewTermViewer(&buf),
	}
	require.NoError(t, viewers.Show(fig))

	assert.FileExists(t, filepath.Join(dir, "a_b.png"))
	assert.FileExists(t, file)
	assert.Contains(t, buf.String(), "a/b Distribution")
}
