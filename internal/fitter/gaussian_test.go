package fitter

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go-hep.org/x/hep/hbook"

	"TreeScope/internal/calculator"
	"TreeScope/internal/model"
)

func gaussianSample(n int, mean, sigma float64, seed int64) []float64 {
	rnd := rand.New(rand.NewSource(seed))
	out := make([]float64, n)
	for i := range out {
		out[i] = mean + sigma*rnd.NormFloat64()
	}
	return out
}

func TestGaussian_RecoversParameters(t *testing.T) {
	data := gaussianSample(10000, 5, 1, 1)
	lo, hi, err := calculator.Range(data)
	require.NoError(t, err)

	h := hbook.NewH1D(100, lo, hi+1e-9)
	for _, v := range data {
		h.Fill(v, 1)
	}
	centers, counts := calculator.BinCenters(h)

	res := Gaussian(centers, counts, data)
	require.True(t, res.Converged, res.Reason)
	assert.Equal(t, model.FitGaussian, res.Kind)
	assert.InDelta(t, 5.0, res.Mean, 0.1)
	assert.InDelta(t, 1.0, res.Sigma, 0.1)
	assert.Greater(t, res.Amplitude, 0.0)
}

func TestGaussian_ReportsFailure(t *testing.T) {
	res := Gaussian([]float64{1, 2}, []float64{3, 4}, []float64{1, 2})
	assert.False(t, res.Converged)
	assert.NotEmpty(t, res.Reason)

	res = Gaussian([]float64{1, 2, 3}, []float64{0, 5, 0}, []float64{2, 2, 2, 2, 2})
	assert.False(t, res.Converged)
	assert.Contains(t, res.Reason, "zero spread")

	res = Gaussian([]float64{1, 2, 3}, []float64{0, 5}, []float64{1, 2, 3})
	assert.False(t, res.Converged)

	res = Gaussian([]float64{11, 15, 19}, []float64{0, 0, 0}, []float64{1, 2, 3})
	assert.False(t, res.Converged)
	assert.Contains(t, res.Reason, "no entries")
}

func TestGauss(t *testing.T) {
	assert.Equal(t, 10.0, Gauss(3, 10, 3, 2))
	assert.InDelta(t, 10*0.60653066, Gauss(5, 10, 3, 2), 1e-6)
}
