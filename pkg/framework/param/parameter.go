package param

import (
	"fmt"
	"math"
	"strconv"
	"sync/atomic"
)

// Flags describe parameter behavior toward hosts and GUIs.
type Flags uint32

const (
	// CanAutomate marks the parameter as host-automatable.
	CanAutomate Flags = 1 << 0
	// IsHidden hides the parameter from generic host UIs.
	IsHidden Flags = 1 << 1
	// IsBypass marks the plugin's bypass parameter.
	IsBypass Flags = 1 << 2
	// PolyModulatable allows per-voice modulation of the parameter.
	PolyModulatable Flags = 1 << 3
)

// MaxPolyVoices is the number of per-voice modulation slots each
// poly-modulatable parameter carries. Voice ids outside [0,MaxPolyVoices) are
// rejected at the call site.
const MaxPolyVoices = 64

// Parameter is a single plugin-controllable value. The plain value, the
// monophonic modulation offset, and the per-voice modulation offsets are all
// stored in lock-free atomics so the audio thread and non-realtime threads
// (GUI, host, background worker) can read and write them concurrently without
// tearing. Each cell is independent; no ordering is guaranteed across cells.
type Parameter struct {
	id           string
	name         string
	unit         string
	rng          Range
	defaultPlain float32
	flags        Flags

	smoothing   SmoothingStyle
	smoothingMs float32

	// Plain value and modulation offsets as Float32bits.
	value   atomic.Uint32
	monoMod atomic.Uint32
	polyMod [MaxPolyVoices]atomic.Uint32

	// Owned by the audio thread. Re-targeted by comparing its target against
	// the cell's current value once per block or per automation event, never
	// via callbacks.
	smoother Smoother

	formatFunc func(float32) string
	parseFunc  func(string) (float32, error)
}

// ID returns the parameter's stable string id.
func (p *Parameter) ID() string { return p.id }

// Name returns the display name.
func (p *Parameter) Name() string { return p.name }

// Unit returns the unit label, e.g. "dB".
func (p *Parameter) Unit() string { return p.unit }

// Range returns the parameter's value range.
func (p *Parameter) Range() Range { return p.rng }

// Default returns the default plain value.
func (p *Parameter) Default() float32 { return p.defaultPlain }

// Flags returns the parameter's flags.
func (p *Parameter) Flags() Flags { return p.flags }

// SmoothingStyle returns the configured smoothing style.
func (p *Parameter) SmoothingStyle() SmoothingStyle { return p.smoothing }

// SmoothingMs returns the configured smoothing duration in milliseconds.
func (p *Parameter) SmoothingMs() float32 { return p.smoothingMs }

// Smoother returns the parameter's smoother. It must only be used from the
// audio thread.
func (p *Parameter) Smoother() *Smoother { return &p.smoother }

// Plain returns the current plain value. Wait-free.
func (p *Parameter) Plain() float32 {
	return math.Float32frombits(p.value.Load())
}

// SetPlain stores a plain value, clamped to the range. Wait-free and safe
// from any thread. NaN and infinities are clamped at the mapping layer and
// never reach the cell.
func (p *Parameter) SetPlain(plain float32) {
	plain = clamp32(plain, p.rng.Min(), p.rng.Max())
	p.value.Store(math.Float32bits(plain))
}

// Normalized returns the current value in [0,1].
func (p *Parameter) Normalized() float32 {
	return p.rng.Normalize(p.Plain())
}

// SetNormalized stores a value given in [0,1].
func (p *Parameter) SetNormalized(normalized float32) {
	p.SetPlain(p.rng.Denormalize(normalized))
}

// ResetToDefault restores the default plain value and clears all modulation.
func (p *Parameter) ResetToDefault() {
	p.SetPlain(p.defaultPlain)
	p.SetModulationOffset(0)
	for i := range p.polyMod {
		p.polyMod[i].Store(0)
	}
}

// SetModulationOffset stores the monophonic modulation offset. The offset is
// additive and not clamped here; clamping happens when the modulated value is
// read.
func (p *Parameter) SetModulationOffset(offset float32) {
	if offset != offset {
		offset = 0
	}
	p.monoMod.Store(math.Float32bits(offset))
}

// ModulationOffset returns the current monophonic modulation offset.
func (p *Parameter) ModulationOffset() float32 {
	return math.Float32frombits(p.monoMod.Load())
}

// SetVoiceModulation stores the polyphonic modulation offset for one voice.
// Returns false if the voice id is out of range or the parameter does not
// allow poly modulation.
func (p *Parameter) SetVoiceModulation(voice int, offset float32) bool {
	if voice < 0 || voice >= MaxPolyVoices || p.flags&PolyModulatable == 0 {
		return false
	}
	if offset != offset {
		offset = 0
	}
	p.polyMod[voice].Store(math.Float32bits(offset))
	return true
}

// VoiceModulation returns the polyphonic modulation offset for one voice.
func (p *Parameter) VoiceModulation(voice int) float32 {
	if voice < 0 || voice >= MaxPolyVoices {
		return 0
	}
	return math.Float32frombits(p.polyMod[voice].Load())
}

// ModulatedValue returns clamp(plain + monoOffset) computed at read time. The
// clamped result is never written back so removing modulation restores the
// unmodulated value exactly.
func (p *Parameter) ModulatedValue() float32 {
	return clamp32(p.Plain()+p.ModulationOffset(), p.rng.Min(), p.rng.Max())
}

// VoiceValue returns a voice's effective value: the plain value plus the
// monophonic and that voice's polyphonic offset, clamped to the range.
func (p *Parameter) VoiceValue(voice int) float32 {
	v := p.Plain() + p.ModulationOffset() + p.VoiceModulation(voice)
	return clamp32(v, p.rng.Min(), p.rng.Max())
}

// SyncSmoother re-targets the smoother if the cell's modulated value moved
// away from the smoother's current target. Called from the audio thread once
// per block or per automation sub-block; steps is the ramp length in samples.
func (p *Parameter) SyncSmoother(steps int) {
	target := p.ModulatedValue()
	if p.smoother.Target() != target {
		p.smoother.SetTarget(target, steps)
	}
}

// ResetSmoother applies the reset policy after a transport discontinuity.
// With SnapOnReset the smoother jumps straight to the current value, with
// FadeOnReset it ramps there over steps samples.
func (p *Parameter) ResetSmoother(policy ResetPolicy, steps int) {
	target := p.ModulatedValue()
	switch policy {
	case FadeOnReset:
		p.smoother.SetTarget(target, steps)
	default:
		p.smoother.Reset(target)
	}
}

// SetFormatter sets custom value formatting and parsing in plain units.
func (p *Parameter) SetFormatter(format func(float32) string, parse func(string) (float32, error)) {
	p.formatFunc = format
	p.parseFunc = parse
}

// FormatValue formats a normalized value for display.
func (p *Parameter) FormatValue(normalized float32) string {
	plain := p.rng.Denormalize(normalized)
	if p.formatFunc != nil {
		return p.formatFunc(plain)
	}
	if _, ok := p.rng.(SteppedRange); ok {
		return fmt.Sprintf("%.0f", plain)
	}
	return fmt.Sprintf("%.2f", plain)
}

// ParseValue parses a display string to a normalized value.
func (p *Parameter) ParseValue(str string) (float32, error) {
	if p.parseFunc != nil {
		plain, err := p.parseFunc(str)
		if err != nil {
			return 0, err
		}
		return p.rng.Normalize(plain), nil
	}
	plain, err := strconv.ParseFloat(str, 32)
	if err != nil {
		return 0, err
	}
	return p.rng.Normalize(float32(plain)), nil
}

// validate checks the parameter's configuration. Called by the registry when
// the parameter is added; failures abort plugin construction.
func (p *Parameter) validate() error {
	if p.id == "" {
		return fmt.Errorf("param: parameter %q has an empty id", p.name)
	}
	if p.rng == nil {
		return fmt.Errorf("param %q: no range configured", p.id)
	}
	if err := p.rng.Validate(); err != nil {
		return fmt.Errorf("param %q: %w", p.id, err)
	}
	if p.defaultPlain < p.rng.Min() || p.defaultPlain > p.rng.Max() {
		return fmt.Errorf("param %q: default %v outside range [%v, %v]",
			p.id, p.defaultPlain, p.rng.Min(), p.rng.Max())
	}
	return nil
}
