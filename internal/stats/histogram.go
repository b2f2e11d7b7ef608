package stats

// HistogramBin is one bin of an equal-width histogram.
type HistogramBin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// Histogram bins values into nbins equal-width bins spanning
// [min, max]. The final bin is closed on both ends so the maximum
// value is always counted. A degenerate range (all values equal)
// collapses into the first bin.
func Histogram(values []float64, nbins int) []HistogramBin {
	if len(values) == 0 || nbins <= 0 {
		return nil
	}

	lo, hi := Min(values), Max(values)
	width := (hi - lo) / float64(nbins)

	bins := make([]HistogramBin, nbins)
	for i := range bins {
		bins[i].Lower = lo + float64(i)*width
		bins[i].Upper = lo + float64(i+1)*width
	}
	bins[nbins-1].Upper = hi

	for _, v := range values {
		idx := nbins - 1
		if width > 0 {
			idx = int((v - lo) / width)
			if idx >= nbins {
				idx = nbins - 1
			}
		} else {
			idx = 0
		}
		bins[idx].Count++
	}

	return bins
}
