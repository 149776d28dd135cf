package engine

import "math"

// RoundForDisplay rounds a value to the given number of decimals for
// presentation. Computation always runs on full precision; rounding happens
// once, at the edge, so chained solver calls never compound rounding error.
func RoundForDisplay(value *float64, decimals int) *float64 {
	if value == nil {
		return nil
	}
	factor := math.Pow(10, float64(decimals))
	rounded := math.Round(*value*factor) / factor
	return &rounded
}
