// sim/metrics_utils.go
package sim

import "math"

// CalculatePercentile returns the p-th percentile (0-100) of data, which must
// be sorted ascending, interpolating linearly between closest ranks.
// Returns 0 for empty input.
func CalculatePercentile(data []float64, p float64) float64 {
	n := len(data)
	if n == 0 {
		return 0
	}
	rank := p / 100.0 * float64(n-1)
	lowerIdx := int(math.Floor(rank))
	upperIdx := int(math.Ceil(rank))
	if upperIdx >= n {
		return data[n-1]
	}
	if lowerIdx == upperIdx {
		return data[lowerIdx]
	}
	return data[lowerIdx] + (data[upperIdx]-data[lowerIdx])*(rank-float64(lowerIdx))
}

// Round2 rounds to two decimals, the precision used in reports.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
