package reports

import "math"

// PercentChange computes the percentage movement from previous to current,
// rounded to two decimals. A zero baseline has no defined percentage and
// yields nil instead of a division by zero.
func PercentChange(current, previous float64) *float64 {
	if previous == 0 {
		return nil
	}
	pct := round2((current - previous) / previous * 100)
	return &pct
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
