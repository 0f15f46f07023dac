package model

// DrawResult describes what a 1D or 2D draw produced.
type DrawResult struct {
	Label         string
	YLabel        string // 2D draws only
	Cut           string
	CutApplied    bool
	EntriesBefore int
	EntriesAfter  int
	Bins          int
	XRange        Range
	YRange        Range // 2D draws only
	Fit           *FitResult

	// Filtered values; Y is only set for 2D draws and is index-aligned with X.
	X []float64
	Y []float64
}
