package process

import (
	"math"

	"github.com/justyntemme/plugcore/pkg/framework/event"
	"github.com/justyntemme/plugcore/pkg/framework/param"
)

// Context holds the per-instance processing state the audio thread works
// with: the parameter registry, the shared oversampling setting, and
// pre-allocated scratch buffers. It is created once, outside the realtime
// window, after the host announces sample rate and maximum block size; no
// method on it allocates afterwards.
type Context struct {
	sampleRate   float64
	maxBlockSize int

	params  *param.Registry
	ordered []*param.Parameter

	oversampling *param.Oversampling
	resetPolicy  param.ResetPolicy

	workBuffer []float32
	tempBuffer []float32
}

// NewContext creates a processing context and wires every parameter's
// smoother to the shared oversampling setting, snapped to its current value.
func NewContext(sampleRate float64, maxBlockSize int, params *param.Registry) *Context {
	c := &Context{
		sampleRate:   sampleRate,
		maxBlockSize: maxBlockSize,
		params:       params,
		ordered:      params.All(),
		oversampling: param.NewOversampling(),
		resetPolicy:  param.SnapOnReset,
		workBuffer:   make([]float32, maxBlockSize),
		tempBuffer:   make([]float32, maxBlockSize),
	}
	for _, p := range c.ordered {
		p.Smoother().Configure(p.SmoothingStyle(), c.oversampling)
		p.Smoother().Reset(p.ModulatedValue())
	}
	return c
}

// SampleRate returns the host sample rate.
func (c *Context) SampleRate() float64 { return c.sampleRate }

// MaxBlockSize returns the largest block the host will deliver.
func (c *Context) MaxBlockSize() int { return c.maxBlockSize }

// Params returns the parameter registry.
func (c *Context) Params() *param.Registry { return c.params }

// Oversampling returns the shared runtime oversampling setting consulted by
// oversampling-aware smoothers.
func (c *Context) Oversampling() *param.Oversampling { return c.oversampling }

// SetResetPolicy selects how smoothers behave after a transport
// discontinuity: snap to the current value or fade toward it.
func (c *Context) SetResetPolicy(policy param.ResetPolicy) {
	c.resetPolicy = policy
}

// Param returns a parameter by id, or nil.
func (c *Context) Param(id string) *param.Parameter {
	return c.params.Get(id)
}

// Plain returns a parameter's current (unsmoothed) plain value.
func (c *Context) Plain(id string) float32 {
	if p := c.params.Get(id); p != nil {
		return p.ModulatedValue()
	}
	return 0
}

// WorkBuffer returns the pre-allocated scratch buffer re-sliced to n
// samples.
func (c *Context) WorkBuffer(n int) []float32 {
	return c.workBuffer[:n]
}

// TempBuffer returns the second pre-allocated scratch buffer re-sliced to n
// samples.
func (c *Context) TempBuffer(n int) []float32 {
	return c.tempBuffer[:n]
}

// SmootherSteps converts a parameter's smoothing duration to a ramp length
// in samples at the current sample rate.
func (c *Context) SmootherSteps(p *param.Parameter) int {
	return int(math.Round(float64(p.SmoothingMs()) / 1000 * c.sampleRate))
}

// SyncSmoothers re-targets every smoother whose parameter cell changed since
// the last call. Runs once per block and once per automation sub-block.
func (c *Context) SyncSmoothers() {
	for _, p := range c.ordered {
		p.SyncSmoother(c.SmootherSteps(p))
	}
}

// Reset applies the configured reset policy to every smoother. Called on
// transport discontinuities such as processing resume; the host guarantees
// this never runs concurrently with ProcessBlock.
func (c *Context) Reset() {
	for _, p := range c.ordered {
		p.ResetSmoother(c.resetPolicy, c.SmootherSteps(p))
	}
}

// ProcessBlock drives one processing call: the queued automation and
// modulation events are applied in sample-offset order, the buffer is split
// at event boundaries, and fn produces the samples for each sub-block with
// every smoother already re-targeted for that range. Within fn, per-sample
// smoothed values come from the parameters' smoothers (Next or NextBlock).
func (c *Context) ProcessBlock(buf *Buffer, events *event.Queue, fn func(bl Block)) {
	if events == nil {
		c.SyncSmoothers()
		fn(buf.Block(0, buf.Samples()))
		return
	}

	events.SplitBlock(int32(buf.Samples()), c.params, func(start, end int32) {
		c.SyncSmoothers()
		fn(buf.Block(int(start), int(end)))
	})
}
