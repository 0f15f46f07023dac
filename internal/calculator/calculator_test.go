package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go-hep.org/x/hep/hbook"

	"TreeScope/internal/model"
)

func TestRange(t *testing.T) {
	lo, hi, err := Range([]float64{3, -2, 7, 0})
	require.NoError(t, err)
	assert.Equal(t, -2.0, lo)
	assert.Equal(t, 7.0, hi)

	_, _, err = Range(nil)
	assert.Error(t, err)
}

func TestHistRange(t *testing.T) {
	r, err := HistRange([]float64{1, 2, 3}, model.Range{})
	require.NoError(t, err)
	assert.Equal(t, model.Range{Min: 1, Max: 3}, r)

	r, err = HistRange([]float64{1, 2, 3}, model.Range{Min: -5, Max: 5})
	require.NoError(t, err)
	assert.Equal(t, model.Range{Min: -5, Max: 5}, r)

	r, err = HistRange([]float64{4, 4}, model.Range{})
	require.NoError(t, err)
	assert.Equal(t, model.Range{Min: 3.5, Max: 4.5}, r)

	r, err = HistRange(nil, model.Range{})
	require.NoError(t, err)
	assert.Equal(t, model.Range{Min: 0, Max: 1}, r)

	_, err = HistRange([]float64{1}, model.Range{Min: 2, Max: 1})
	assert.Error(t, err)
}

func TestMeanStdDev(t *testing.T) {
	mean, std, err := MeanStdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	require.NoError(t, err)
	assert.InDelta(t, 5.0, mean, 1e-12)
	assert.InDelta(t, 2.138089935, std, 1e-6)

	_, _, err = MeanStdDev([]float64{1})
	assert.Error(t, err)
}

func TestApplyMask(t *testing.T) {
	out, err := ApplyMask([]float64{1, 2, 3, 4}, []bool{true, false, false, true})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 4}, out)

	_, err = ApplyMask([]float64{1, 2}, []bool{true})
	assert.Error(t, err)
}

func TestBinCenters(t *testing.T) {
	h := hbook.NewH1D(4, 0, 4)
	h.Fill(0.5, 1)
	h.Fill(2.2, 1)
	h.Fill(2.7, 1)

	centers, counts := BinCenters(h)
	assert.Equal(t, []float64{0.5, 1.5, 2.5, 3.5}, centers)
	assert.Equal(t, []float64{1, 0, 2, 0}, counts)
	assert.Equal(t, 2.0, MaxCount(counts))
	assert.Equal(t, 0.0, MaxCount(nil))
}
