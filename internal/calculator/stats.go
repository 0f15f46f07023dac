package calculator

import (
	"errors"

	"gonum.org/v1/gonum/stat"
)

// MeanStdDev returns the sample mean and unbiased sample standard deviation.
func MeanStdDev(values []float64) (mean, std float64, err error) {
	if len(values) < 2 {
		return 0, 0, errors.New("not enough values for standard deviation")
	}
	mean, std = stat.MeanStdDev(values, nil)
	return mean, std, nil
}

// ApplyMask keeps values[i] where mask[i] is true, preserving order.
func ApplyMask(values []float64, mask []bool) ([]float64, error) {
	if len(values) != len(mask) {
		return nil, errors.New("mask length does not match values")
	}
	out := make([]float64, 0, len(values))
	for i, keep := range mask {
		if keep {
			out = append(out, values[i])
		}
	}
	return out, nil
}
