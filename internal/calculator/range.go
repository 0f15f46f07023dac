package calculator

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"

	"TreeScope/internal/model"
)

// Range returns the smallest and largest value of the series.
func Range(values []float64) (min, max float64, err error) {
	if len(values) == 0 {
		return 0, 0, errors.New("no values provided")
	}
	return floats.Min(values), floats.Max(values), nil
}

// HistRange picks the histogram axis range. An explicit range wins; otherwise
// the data's own min/max is used, widened by 0.5 on each side when degenerate.
// An empty series falls back to [0, 1].
func HistRange(values []float64, explicit model.Range) (model.Range, error) {
	if !explicit.IsZero() {
		if explicit.Max <= explicit.Min {
			return model.Range{}, errors.New("range max must be greater than min")
		}
		return explicit, nil
	}
	lo, hi, err := Range(values)
	if err != nil {
		return model.Range{Min: 0, Max: 1}, nil
	}
	if math.IsInf(lo, 0) || math.IsInf(hi, 0) || math.IsNaN(lo) || math.IsNaN(hi) {
		return model.Range{}, errors.New("values are not finite")
	}
	if lo == hi {
		lo -= 0.5
		hi += 0.5
	}
	return model.Range{Min: lo, Max: hi}, nil
}
