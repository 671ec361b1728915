package param

import (
	"fmt"
	"math"
)

// Range maps between a parameter's plain value (its natural unit, e.g. dB or
// Hz) and the normalized [0,1] form hosts and GUIs work with. Implementations
// must be pure and strictly monotonic so round trips are exact up to floating
// point precision.
type Range interface {
	// Min returns the lower bound of the plain range (inclusive).
	Min() float32
	// Max returns the upper bound of the plain range (inclusive).
	Max() float32
	// Normalize converts a plain value to [0,1]. The input is clamped to
	// [Min,Max] first; NaN clamps to Min.
	Normalize(plain float32) float32
	// Denormalize converts a normalized value to a plain value. The input is
	// clamped to [0,1] first; NaN clamps to 0.
	Denormalize(normalized float32) float32
	// NextStep returns the plain value one adjustment step above plain. The
	// finer flag subdivides the step size for fine-adjustment gestures.
	NextStep(plain float32, finer bool) float32
	// PreviousStep returns the plain value one adjustment step below plain.
	PreviousStep(plain float32, finer bool) float32
	// Validate reports whether the range bounds are usable. An invalid range
	// is a programming error and must fail plugin construction.
	Validate() error
}

// Normalized step sizes used by NextStep/PreviousStep on continuous ranges.
const (
	coarseStep = 0.01
	fineStep   = 0.001
)

// SkewFactor converts an intuitive skew amount into the factor used by
// SkewedRange. Positive values widen the end of the range, negative values
// widen the start, zero is equivalent to a linear range.
func SkewFactor(amount float32) float32 {
	return float32(math.Pow(2, float64(amount)))
}

// LinearRange distributes plain values uniformly between Min and Max.
type LinearRange struct {
	MinValue float32
	MaxValue float32
}

// Linear creates a linear range.
func Linear(min, max float32) LinearRange {
	return LinearRange{MinValue: min, MaxValue: max}
}

// Min returns the lower bound.
func (r LinearRange) Min() float32 { return r.MinValue }

// Max returns the upper bound.
func (r LinearRange) Max() float32 { return r.MaxValue }

// Normalize converts a plain value to [0,1].
func (r LinearRange) Normalize(plain float32) float32 {
	plain = clamp32(plain, r.MinValue, r.MaxValue)
	return (plain - r.MinValue) / (r.MaxValue - r.MinValue)
}

// Denormalize converts a normalized value to a plain value.
func (r LinearRange) Denormalize(normalized float32) float32 {
	normalized = clamp32(normalized, 0, 1)
	return r.MinValue + normalized*(r.MaxValue-r.MinValue)
}

// NextStep returns the next plain value in normalized steps.
func (r LinearRange) NextStep(plain float32, finer bool) float32 {
	return r.Denormalize(r.Normalize(plain) + stepSize(finer))
}

// PreviousStep returns the previous plain value in normalized steps.
func (r LinearRange) PreviousStep(plain float32, finer bool) float32 {
	return r.Denormalize(r.Normalize(plain) - stepSize(finer))
}

// Validate checks the range bounds.
func (r LinearRange) Validate() error {
	return validateBounds(r.MinValue, r.MaxValue)
}

// SkewedRange applies a power-law curve so one end of the range gets more
// normalized resolution than the other. A factor above 1 widens the end of
// the range, a factor between 0 and 1 widens the start. Use SkewFactor to
// derive a factor from an intuitive amount.
type SkewedRange struct {
	MinValue float32
	MaxValue float32
	Factor   float32
}

// Skewed creates a skewed range.
func Skewed(min, max, factor float32) SkewedRange {
	return SkewedRange{MinValue: min, MaxValue: max, Factor: factor}
}

// Min returns the lower bound.
func (r SkewedRange) Min() float32 { return r.MinValue }

// Max returns the upper bound.
func (r SkewedRange) Max() float32 { return r.MaxValue }

// Normalize converts a plain value to [0,1] through the skew curve.
func (r SkewedRange) Normalize(plain float32) float32 {
	plain = clamp32(plain, r.MinValue, r.MaxValue)
	proportion := float64((plain - r.MinValue) / (r.MaxValue - r.MinValue))
	return clamp32(float32(math.Pow(proportion, float64(r.Factor))), 0, 1)
}

// Denormalize converts a normalized value to a plain value through the
// inverse skew curve.
func (r SkewedRange) Denormalize(normalized float32) float32 {
	normalized = clamp32(normalized, 0, 1)
	proportion := float32(math.Pow(float64(normalized), 1/float64(r.Factor)))
	return r.MinValue + proportion*(r.MaxValue-r.MinValue)
}

// NextStep returns the next plain value in normalized steps, respecting the
// skew curve.
func (r SkewedRange) NextStep(plain float32, finer bool) float32 {
	return r.Denormalize(r.Normalize(plain) + stepSize(finer))
}

// PreviousStep returns the previous plain value in normalized steps.
func (r SkewedRange) PreviousStep(plain float32, finer bool) float32 {
	return r.Denormalize(r.Normalize(plain) - stepSize(finer))
}

// Validate checks the range bounds and skew factor.
func (r SkewedRange) Validate() error {
	if err := validateBounds(r.MinValue, r.MaxValue); err != nil {
		return err
	}
	if !(r.Factor > 0) || math.IsInf(float64(r.Factor), 0) {
		return fmt.Errorf("param: skew factor must be positive and finite, got %v", r.Factor)
	}
	return nil
}

// SteppedRange quantizes the range to StepCount evenly spaced plain values.
// Denormalize always returns one of those values; NextStep and PreviousStep
// move by one discrete index.
type SteppedRange struct {
	MinValue  float32
	MaxValue  float32
	StepCount int
}

// Stepped creates a stepped range with stepCount discrete values.
func Stepped(min, max float32, stepCount int) SteppedRange {
	return SteppedRange{MinValue: min, MaxValue: max, StepCount: stepCount}
}

// Min returns the lower bound.
func (r SteppedRange) Min() float32 { return r.MinValue }

// Max returns the upper bound.
func (r SteppedRange) Max() float32 { return r.MaxValue }

// Normalize converts a plain value to [0,1].
func (r SteppedRange) Normalize(plain float32) float32 {
	plain = clamp32(plain, r.MinValue, r.MaxValue)
	return (plain - r.MinValue) / (r.MaxValue - r.MinValue)
}

// Denormalize converts a normalized value to the nearest of the StepCount
// discrete plain values.
func (r SteppedRange) Denormalize(normalized float32) float32 {
	normalized = clamp32(normalized, 0, 1)
	index := math.Round(float64(normalized) * float64(r.StepCount-1))
	return r.MinValue + float32(index)*r.stride()
}

// NextStep returns the plain value one index above plain. With finer set the
// step is subdivided, which continuous controls use for fine gestures.
func (r SteppedRange) NextStep(plain float32, finer bool) float32 {
	step := r.stride()
	if finer {
		step /= fineStepDivisor
	}
	return clamp32(plain+step, r.MinValue, r.MaxValue)
}

// PreviousStep returns the plain value one index below plain.
func (r SteppedRange) PreviousStep(plain float32, finer bool) float32 {
	step := r.stride()
	if finer {
		step /= fineStepDivisor
	}
	return clamp32(plain-step, r.MinValue, r.MaxValue)
}

// Validate checks the range bounds and step count.
func (r SteppedRange) Validate() error {
	if err := validateBounds(r.MinValue, r.MaxValue); err != nil {
		return err
	}
	if r.StepCount < 2 {
		return fmt.Errorf("param: stepped range needs at least 2 steps, got %d", r.StepCount)
	}
	return nil
}

// fineStepDivisor subdivides a discrete step for fine-adjustment gestures.
const fineStepDivisor = 4

func (r SteppedRange) stride() float32 {
	return (r.MaxValue - r.MinValue) / float32(r.StepCount-1)
}

func stepSize(finer bool) float32 {
	if finer {
		return fineStep
	}
	return coarseStep
}

func validateBounds(min, max float32) error {
	if math.IsNaN(float64(min)) || math.IsNaN(float64(max)) ||
		math.IsInf(float64(min), 0) || math.IsInf(float64(max), 0) {
		return fmt.Errorf("param: range bounds must be finite, got [%v, %v]", min, max)
	}
	if min >= max {
		return fmt.Errorf("param: range min %v must be strictly less than max %v", min, max)
	}
	return nil
}

// clamp32 clamps v to [lo,hi]. NaN clamps to lo so a bad value can never
// escape the mapping layer.
func clamp32(v, lo, hi float32) float32 {
	if v != v {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
