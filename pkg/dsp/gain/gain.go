// Package gain converts between decibels and linear amplitude and applies
// gain ramps produced by parameter smoothers.
package gain

import "math"

// MinDb is treated as silence: conversions at or below it return zero
// amplitude.
const MinDb = -200.0

// DbToLinear converts decibels to linear amplitude.
func DbToLinear(db float32) float32 {
	if db <= MinDb {
		return 0
	}
	return float32(math.Pow(10, float64(db)/20))
}

// LinearToDb converts linear amplitude to decibels. Non-positive values
// return MinDb.
func LinearToDb(linear float32) float32 {
	if linear <= 0 {
		return MinDb
	}
	return 20 * float32(math.Log10(float64(linear)))
}

// Apply scales a buffer in place by one linear gain factor.
func Apply(buf []float32, g float32) {
	for i := range buf {
		buf[i] *= g
	}
}

// ApplyRampDb writes out[i] = in[i] scaled by db[i], where db is a
// per-sample decibel ramp such as one filled by Smoother.NextBlock. The
// three slices must have equal length; in and out may alias.
func ApplyRampDb(in, out, db []float32) {
	for i := range out {
		out[i] = in[i] * DbToLinear(db[i])
	}
}
