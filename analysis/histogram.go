package analysis

import (
	"github.com/aclements/go-moremath/stats"
)

// Splits the range of the given values into equally wide bins. The maximum value is counted in the
// last bin. A range of a single value is widened by 0.5 on each side.
func histogramBins(values []float64, binCount int) []Bin {
	if binCount <= 0 {
		binCount = defaultHistogramBins
	}

	low, high := stats.Bounds(values)
	if low == high {
		low -= 0.5
		high += 0.5
	}

	histogram := stats.NewLinearHist(low, high, binCount)
	for _, value := range values {
		histogram.Add(value)
	}
	under, counts, over := histogram.Counts()

	width := (high - low) / float64(binCount)
	bins := make([]Bin, binCount)
	for i := range bins {
		bins[i] = Bin{
			Lower: low + float64(i)*width,
			Upper: low + float64(i+1)*width,
			Count: int(counts[i]),
		}
	}
	bins[0].Count += int(under)
	bins[binCount-1].Count += int(over)

	return bins
}
