package aggregator

import "math"

// Round rounds x to places decimals, ties to even. This matches NumPy's
// around (scale, rint, unscale), which produced the reference reports.
func Round(x float64, places int) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	scale := math.Pow(10, float64(places))
	return math.RoundToEven(x*scale) / scale
}

// Hours converts seconds to hours rounded to places decimals
func Hours(seconds float64, places int) float64 {
	return Round(seconds/3600, places)
}
