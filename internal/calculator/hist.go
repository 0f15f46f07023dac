package calculator

import "go-hep.org/x/hep/hbook"

// BinCenters returns the center and count of every in-range bin of h.
func BinCenters(h *hbook.H1D) (centers, counts []float64) {
	bins := h.Binning.Bins
	centers = make([]float64, len(bins))
	counts = make([]float64, len(bins))
	for i, b := range bins {
		centers[i] = b.XMid()
		counts[i] = b.SumW()
	}
	return centers, counts
}

// MaxCount returns the largest bin count, or 0 for no bins.
func MaxCount(counts []float64) float64 {
	var max float64
	for _, c := range counts {
		if c > max {
			max = c
		}
	}
	return max
}
