package fitter

import (
	"fmt"
	"math"

	"go-hep.org/x/hep/fit"
	"gonum.org/v1/gonum/optimize"

	"TreeScope/internal/calculator"
	"TreeScope/internal/model"
)

// Gauss evaluates amp*exp(-0.5*((x-mean)/sigma)^2).
func Gauss(x, amp, mean, sigma float64) float64 {
	v := (x - mean) / sigma
	return amp * math.Exp(-0.5*v*v)
}

// Gaussian fits a Gaussian to histogram bin centers and counts by least
// squares. The fit is seeded with the largest count and the sample mean and
// standard deviation of data. A fit that cannot start or does not converge is
// reported through FitResult.Converged rather than as an error.
func Gaussian(centers, counts, data []float64) model.FitResult {
	res := model.FitResult{Kind: model.FitGaussian}

	if len(centers) != len(counts) {
		res.Reason = "bin centers and counts differ in length"
		return res
	}
	if len(centers) < 3 {
		res.Reason = "need at least 3 bins"
		return res
	}
	if calculator.MaxCount(counts) <= 0 {
		res.Reason = "histogram has no entries"
		return res
	}
	mean, std, err := calculator.MeanStdDev(data)
	if err != nil {
		res.Reason = err.Error()
		return res
	}
	if std == 0 {
		res.Reason = "data has zero spread"
		return res
	}

	result, err := fit.Curve1D(
		fit.Func1D{
			F: func(x float64, ps []float64) float64 {
				return Gauss(x, ps[0], ps[1], ps[2])
			},
			X:  centers,
			Y:  counts,
			N:  3,
			Ps: []float64{calculator.MaxCount(counts), mean, std},
		},
		nil, &optimize.NelderMead{},
	)
	if err != nil {
		res.Reason = fmt.Sprintf("minimize: %v", err)
		return res
	}
	if err := result.Status.Err(); err != nil {
		res.Reason = fmt.Sprintf("status: %v", err)
		return res
	}

	ps := result.X
	for _, p := range ps {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			res.Reason = "fit produced non-finite parameters"
			return res
		}
	}
	if ps[2] == 0 {
		res.Reason = "fit collapsed to zero width"
		return res
	}

	res.Amplitude = ps[0]
	res.Mean = ps[1]
	res.Sigma = math.Abs(ps[2])
	res.Converged = true
	return res
}
