package geo

import "math"

func Sign(i float64) int {
	if i < 0 {
		return -1
	}
	if i > 0 {
		return 1
	}
	return 0
}

// IntervalsOverlap reports whether the open intervals (lo1, hi1) and
// (lo2, hi2) intersect.
func IntervalsOverlap(lo1, hi1, lo2, hi2 float64) bool {
	return lo1 < hi2 && lo2 < hi1
}

// compare a and b and consider them equal if
// difference is less than precision e (e.g. e=0.001)
func PrecisionCompare(a, b, e float64) int {
	if math.Abs(a-b) < e {
		return 0
	}
	if a < b {
		return -1
	}
	return 1
}
