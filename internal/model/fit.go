package model

// FitKind selects the model fitted over a 1D histogram.
type FitKind string

const (
	FitNone     FitKind = ""
	FitGaussian FitKind = "gaus"
)

// FitResult is the outcome of fitting A*exp(-0.5*((x-mu)/sigma)^2) to bin counts.
type FitResult struct {
	Kind      FitKind
	Amplitude float64
	Mean      float64
	Sigma     float64
	Converged bool
	Reason    string // set when Converged is false
}
