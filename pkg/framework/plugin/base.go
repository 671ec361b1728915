package plugin

import (
	"fmt"
	"io"

	"github.com/justyntemme/plugcore/pkg/framework/bus"
	"github.com/justyntemme/plugcore/pkg/framework/param"
	"github.com/justyntemme/plugcore/pkg/framework/process"
	"github.com/justyntemme/plugcore/pkg/framework/state"
)

// Base carries the plumbing every processor needs: registry, bus layout,
// state manager and, once Initialize has run, the processing context.
// Concrete processors embed it and implement Process.
type Base struct {
	info   Info
	params *param.Registry
	buses  *bus.Configuration
	state  *state.Manager
	ctx    *process.Context

	active bool

	onInitialize func(sampleRate float64, maxBlockSize int) error
	onActivate   func(active bool) error
}

// NewBase creates the processor plumbing. A nil bus configuration defaults
// to stereo in, stereo out.
func NewBase(info Info, buses *bus.Configuration) *Base {
	if buses == nil {
		buses = bus.NewStereo()
	}
	b := &Base{
		info:   info,
		params: param.NewRegistry(),
		buses:  buses,
	}
	b.state = state.NewManager(b.params)
	return b
}

// Info implements Processor.
func (b *Base) Info() Info { return b.info }

// Parameters implements Processor.
func (b *Base) Parameters() *param.Registry { return b.params }

// Buses implements Processor.
func (b *Base) Buses() *bus.Configuration { return b.buses }

// State returns the state manager for preset save and load.
func (b *Base) State() *state.Manager { return b.state }

// Context returns the processing context, or nil before Initialize.
func (b *Base) Context() *process.Context { return b.ctx }

// SampleRate returns the sample rate announced at Initialize, or 0 before.
func (b *Base) SampleRate() float64 {
	if b.ctx == nil {
		return 0
	}
	return b.ctx.SampleRate()
}

// Initialize implements Processor. It builds the processing context, wiring
// every parameter's smoother to the shared oversampling setting, and then
// runs the OnInitialize hook if one is set.
func (b *Base) Initialize(sampleRate float64, maxBlockSize int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("plugin: invalid sample rate %v", sampleRate)
	}
	if maxBlockSize <= 0 {
		return fmt.Errorf("plugin: invalid max block size %d", maxBlockSize)
	}
	b.ctx = process.NewContext(sampleRate, maxBlockSize, b.params)

	if b.onInitialize != nil {
		return b.onInitialize(sampleRate, maxBlockSize)
	}
	return nil
}

// SetActive implements Processor. Going inactive-to-active is a transport
// discontinuity, so smoothers are reset per the context's policy.
func (b *Base) SetActive(active bool) error {
	if active && !b.active && b.ctx != nil {
		b.ctx.Reset()
	}
	b.active = active

	if b.onActivate != nil {
		return b.onActivate(active)
	}
	return nil
}

// Latency implements Processor. Default is zero.
func (b *Base) Latency() int { return 0 }

// Tail implements Processor. Default is zero.
func (b *Base) Tail() int { return 0 }

// SaveState writes the parameter state.
func (b *Base) SaveState(w io.Writer) error { return b.state.Save(w) }

// LoadState restores the parameter state.
func (b *Base) LoadState(r io.Reader) error { return b.state.Load(r) }

// OnInitialize installs a hook that runs after the context is built.
func (b *Base) OnInitialize(fn func(sampleRate float64, maxBlockSize int) error) {
	b.onInitialize = fn
}

// OnActivate installs a hook that runs on every activation change.
func (b *Base) OnActivate(fn func(active bool) error) {
	b.onActivate = fn
}
