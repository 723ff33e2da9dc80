package store

import "math"

// Round1 quantizes a rating to one fractional digit. Every rating that
// enters the store goes through this, so filter comparisons and stored
// values share the same fixed-point representation.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
