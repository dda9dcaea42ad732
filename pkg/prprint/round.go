package prprint

import "math"

// Float is the set of values this package formats.
type Float interface {
	~float32 | ~float64
}

// Round applies mode to v at the given number of fractional digits.
// NaN and infinities are returned unchanged under every mode.
func Round[F Float](v F, precision int, mode Rounding) F {
	x := float64(v)
	if mode == Keep || math.IsNaN(x) || math.IsInf(x, 0) {
		return v
	}
	scale := math.Pow(10, float64(clampPrecision(precision)))
	scaled := x * scale
	if math.IsInf(scale, 0) || math.IsInf(scaled, 0) {
		// Nothing left below this precision to round away.
		return v
	}
	switch mode {
	case Upward:
		scaled = math.Ceil(scaled)
	case Downward:
		scaled = math.Floor(scaled)
	case ToNearest:
		scaled = math.Round(scaled)
	case TowardZero:
		scaled = math.Trunc(scaled)
	default:
		return v
	}
	return F(scaled / scale)
}
