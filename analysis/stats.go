package analysis

import (
	"math"
	"sort"
)

// mean returns the arithmetic mean, 0 for empty input.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// median returns the middle value (average of the two middle values for even
// length), 0 for empty input.
func median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// trimmedMean sorts the values, drops floor(n*trim) entries from each tail and
// averages the rest.
func trimmedMean(values []float64, trim float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	cut := int(math.Floor(float64(n) * trim))
	kept := sorted[cut : n-cut]
	if len(kept) == 0 {
		return 0
	}
	return mean(kept)
}

// RobustThreshold computes the population density threshold from reliable
// route densities. The median is robust to single extreme outliers; the mean
// is kept for comparability but is outlier-sensitive and not recommended.
//
// Empty input returns 0. A zero threshold means every positive density tests
// as above threshold, which matches the historical behavior when a period has
// no reliable routes; callers wanting to suppress that should check for an
// empty reliable set themselves.
func RobustThreshold(densities []float64, method ThresholdMethod, trimPercent float64) float64 {
	valid := make([]float64, 0, len(densities))
	for _, d := range densities {
		if !math.IsNaN(d) {
			valid = append(valid, d)
		}
	}
	if len(valid) == 0 {
		return 0
	}

	switch method {
	case ThresholdMedian:
		return median(valid)
	case ThresholdTrimmedMean:
		return trimmedMean(valid, trimPercent)
	default:
		return mean(valid)
	}
}

// ConfidenceScore rates an assessment 0-100 by sample size. Routes below the
// PAX floor score 0 outright. Otherwise case count saturates at 20 cases and
// passenger volume at 100k, weighted 60/40 toward case-count reliability.
func ConfidenceScore(inadCount int, paxCount, minPAX int64) int {
	if paxCount < minPAX {
		return 0
	}

	inadScore := math.Min(100, float64(inadCount)/20*100)
	paxScore := math.Min(100, float64(paxCount)/100000*100)

	return int(0.6*inadScore + 0.4*paxScore)
}
