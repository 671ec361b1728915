// Package plugin ties the parameter, bus, event and processing layers into
// a single processor shell that host adapters drive through a small
// lifecycle interface.
package plugin

import (
	"github.com/justyntemme/plugcore/pkg/framework/bus"
	"github.com/justyntemme/plugcore/pkg/framework/event"
	"github.com/justyntemme/plugcore/pkg/framework/param"
	"github.com/justyntemme/plugcore/pkg/framework/process"
)

// Processor is the lifecycle a host adapter drives. Initialize and
// SetActive run outside the realtime window; Process runs on the audio
// thread and must not allocate.
type Processor interface {
	// Info returns static plugin metadata.
	Info() Info

	// Parameters returns the parameter registry. The registry is built
	// during construction and is read-only afterwards.
	Parameters() *param.Registry

	// Buses returns the audio bus layout.
	Buses() *bus.Configuration

	// Initialize is called once the host knows the sample rate and the
	// largest block it will deliver. Buffers sized off maxBlockSize are
	// allocated here.
	Initialize(sampleRate float64, maxBlockSize int) error

	// SetActive toggles processing. Deactivation followed by activation is
	// a transport discontinuity: smoothers are reset per the configured
	// policy.
	SetActive(active bool) error

	// Process renders one block. Events carry the block's automation and
	// modulation changes; nil means no changes this block.
	Process(buf *process.Buffer, events *event.Queue)

	// Latency returns the plugin's processing latency in samples.
	Latency() int

	// Tail returns how many samples of output remain after input stops.
	Tail() int
}

// SimpleProcessor wraps a plain process function in a full Processor, for
// effects that need no state beyond their parameters.
type SimpleProcessor struct {
	*Base
	processFn func(ctx *process.Context, bl process.Block)
}

// NewSimpleProcessor builds a processor around a single block function.
// The function is invoked once per automation sub-block with smoothers
// already re-targeted for that range.
func NewSimpleProcessor(info Info, buses *bus.Configuration, fn func(ctx *process.Context, bl process.Block)) *SimpleProcessor {
	return &SimpleProcessor{
		Base:      NewBase(info, buses),
		processFn: fn,
	}
}

// Process implements Processor.
func (s *SimpleProcessor) Process(buf *process.Buffer, events *event.Queue) {
	ctx := s.Context()
	ctx.ProcessBlock(buf, events, func(bl process.Block) {
		s.processFn(ctx, bl)
	})
}
