// Package param provides the parameter model for realtime audio plugins:
// value ranges, lock-free parameter cells, smoothing, and the flat registry
// the rest of the framework is driven by.
package param

import (
	"math"
	"sync/atomic"
)

// SmoothingStyle selects the ramp shape a parameter uses when its value
// changes.
type SmoothingStyle int

const (
	// NoSmoothing snaps straight to the target.
	NoSmoothing SmoothingStyle = iota
	// LinearSmoothing ramps with a constant per-sample increment.
	LinearSmoothing
	// LogarithmicSmoothing ramps multiplicatively so the perceptual step size
	// stays constant. Values must be positive; anything at or below zero is
	// clamped to a small epsilon before the ramp is computed.
	LogarithmicSmoothing
	// OversampledLinearSmoothing is linear smoothing whose step count is
	// multiplied by a shared runtime oversampling factor, keeping ramps in
	// sync when the effective sample rate changes.
	OversampledLinearSmoothing
)

// ResetPolicy controls what a smoother does after a transport discontinuity
// such as processing resume.
type ResetPolicy int

const (
	// SnapOnReset jumps the smoother straight to the current value.
	SnapOnReset ResetPolicy = iota
	// FadeOnReset ramps from the last smoothed value to the current value.
	FadeOnReset
)

// logSmoothingEpsilon is the smallest magnitude logarithmic smoothing will
// ramp through. Multiplicative ramps cannot cross or touch zero.
const logSmoothingEpsilon = 1e-6

// Oversampling is a runtime oversampling factor shared between smoothers so
// their effective ramp lengths stay consistent when the host's effective
// sample rate changes. Read and written lock-free.
type Oversampling struct {
	factor atomic.Uint32
}

// NewOversampling creates a shared oversampling setting with factor 1.
func NewOversampling() *Oversampling {
	o := &Oversampling{}
	o.SetFactor(1)
	return o
}

// Factor returns the current oversampling factor.
func (o *Oversampling) Factor() float32 {
	return math.Float32frombits(o.factor.Load())
}

// SetFactor stores a new oversampling factor. Values below 1 are clamped
// to 1.
func (o *Oversampling) SetFactor(factor float32) {
	if !(factor >= 1) {
		factor = 1
	}
	o.factor.Store(math.Float32bits(factor))
}

// Smoother produces one interpolated value per sample when ramping a
// parameter from its previous value to a new target. All internal state is
// single precision. The final ramp step is special-cased to land exactly on
// the target, and once converged the smoother keeps yielding the target
// unchanged. A smoother belongs to the audio thread; it is not safe for
// concurrent use.
type Smoother struct {
	style      SmoothingStyle
	stepsLeft  int
	totalSteps int
	// Additive increment for linear styles, multiplicative ratio for the
	// logarithmic style.
	stepSize float32
	current  float32
	target   float32

	// Consulted by OversampledLinearSmoothing at SetTarget time. Nil means
	// factor 1.
	oversampling *Oversampling
}

// NewSmoother creates a smoother with the given style, snapped to an initial
// value.
func NewSmoother(style SmoothingStyle, initial float32) *Smoother {
	s := &Smoother{style: style}
	s.Reset(initial)
	return s
}

// Configure sets the style and shared oversampling setting. Called once
// during plugin construction, before processing starts.
func (s *Smoother) Configure(style SmoothingStyle, oversampling *Oversampling) {
	s.style = style
	s.oversampling = oversampling
}

// Style returns the smoother's ramp style.
func (s *Smoother) Style() SmoothingStyle { return s.style }

// Target returns the value the smoother is ramping toward.
func (s *Smoother) Target() float32 { return s.target }

// Current returns the most recently produced value.
func (s *Smoother) Current() float32 { return s.current }

// IsSmoothing reports whether a ramp is still in progress.
func (s *Smoother) IsSmoothing() bool { return s.stepsLeft > 0 }

// StepsLeft returns the number of samples remaining in the current ramp.
func (s *Smoother) StepsLeft() int { return s.stepsLeft }

// Reset snaps the smoother to a value, ending any ramp. Used at
// initialization and, under SnapOnReset, after transport discontinuities.
func (s *Smoother) Reset(value float32) {
	s.current = value
	s.target = value
	s.stepsLeft = 0
	s.totalSteps = 0
	s.stepSize = 0
}

// SetTarget starts a ramp from the current value to target over steps
// samples. Zero steps, or the NoSmoothing style, snaps immediately. For
// OversampledLinearSmoothing the step count is multiplied by the shared
// oversampling factor.
func (s *Smoother) SetTarget(target float32, steps int) {
	s.target = target

	if s.style == OversampledLinearSmoothing && s.oversampling != nil {
		steps = int(math.Round(float64(steps) * float64(s.oversampling.Factor())))
	}
	if s.style == NoSmoothing || steps <= 0 {
		s.current = target
		s.stepsLeft = 0
		s.totalSteps = 0
		s.stepSize = 0
		return
	}

	s.stepsLeft = steps
	s.totalSteps = steps

	switch s.style {
	case LogarithmicSmoothing:
		current := s.current
		if current < logSmoothingEpsilon {
			current = logSmoothingEpsilon
			s.current = current
		}
		to := target
		if to < logSmoothingEpsilon {
			to = logSmoothingEpsilon
		}
		s.stepSize = float32(math.Pow(float64(to/current), 1/float64(steps)))
	default:
		s.stepSize = (target - s.current) / float32(steps)
	}
}

// Next advances the ramp by one sample and returns the new value. After the
// ramp completes it keeps returning the exact target.
func (s *Smoother) Next() float32 {
	if s.stepsLeft <= 0 {
		return s.target
	}

	s.stepsLeft--
	if s.stepsLeft == 0 {
		// Land exactly on the target instead of accumulating the last step,
		// so there is no residual floating-point drift.
		s.current = s.target
		return s.current
	}

	switch s.style {
	case LogarithmicSmoothing:
		s.current *= s.stepSize
	default:
		s.current += s.stepSize
	}
	return s.current
}

// NextBlock fills out with one smoothed value per sample, advancing the ramp
// by len(out) samples. The fast path after convergence is a plain fill with
// the target value.
func (s *Smoother) NextBlock(out []float32) {
	i := 0
	for ; i < len(out) && s.stepsLeft > 0; i++ {
		out[i] = s.Next()
	}
	for ; i < len(out); i++ {
		out[i] = s.target
	}
}
