package event

import (
	"sort"
	"sync/atomic"

	"github.com/justyntemme/plugcore/pkg/framework/debug"
	"github.com/justyntemme/plugcore/pkg/framework/param"
)

// DefaultCapacity is the event capacity a queue pre-allocates. Hosts rarely
// send more than a few dozen events per block.
const DefaultCapacity = 1024

// Queue collects the automation and modulation events for one processing
// block and applies them to parameter cells in non-decreasing sample-offset
// order, ties broken by arrival order. Storage is pre-allocated; pushing and
// processing never allocate.
//
// A queue is filled and drained by the audio thread within a single process
// call. It is not safe for concurrent use.
type Queue struct {
	events []Event
	sorted bool

	// Events rejected because the queue was full or their offset fell
	// outside the block. Readable from any thread.
	dropped atomic.Uint64
}

// NewQueue creates a queue with DefaultCapacity.
func NewQueue() *Queue {
	return NewQueueWithCapacity(DefaultCapacity)
}

// NewQueueWithCapacity creates a queue holding at most capacity events.
func NewQueueWithCapacity(capacity int) *Queue {
	return &Queue{
		events: make([]Event, 0, capacity),
		sorted: true,
	}
}

// Push adds an event for the current block. Returns false, without
// allocating, when the queue is full.
func (q *Queue) Push(ev Event) bool {
	if len(q.events) == cap(q.events) {
		q.dropped.Add(1)
		return false
	}
	q.events = append(q.events, ev)
	if n := len(q.events); n > 1 && q.events[n-2].Offset > ev.Offset {
		q.sorted = false
	}
	return true
}

// Len returns the number of queued events.
func (q *Queue) Len() int {
	return len(q.events)
}

// Clear drops all queued events, keeping the allocation.
func (q *Queue) Clear() {
	q.events = q.events[:0]
	q.sorted = true
}

// Dropped returns the total number of events discarded since the queue was
// created, either because the queue was full or because an offset violated
// the block bounds.
func (q *Queue) Dropped() uint64 {
	return q.dropped.Load()
}

// SplitBlock partitions [0,blockLen) into contiguous sub-ranges whose
// boundaries are the distinct event offsets. All events at a boundary are
// applied to their parameter cells before fn runs for the following
// sub-range, so fn can re-derive smoother targets and then produce that
// range's samples. Events with offsets outside [0,blockLen) are a host
// protocol violation: they are discarded, counted, and reported through the
// debug log, never fatal.
//
// The queue is cleared afterwards; events are consumed exactly once.
func (q *Queue) SplitBlock(blockLen int32, params *param.Registry, fn func(start, end int32)) {
	if blockLen <= 0 {
		q.Clear()
		return
	}

	q.sortEvents()

	start := int32(0)
	for i := range q.events {
		ev := &q.events[i]
		if ev.Offset < 0 || ev.Offset >= blockLen {
			q.dropped.Add(1)
			debug.Warn("event: discarding %s event for %q: offset %d outside block of %d samples",
				ev.Kind, ev.ParamID, ev.Offset, blockLen)
			continue
		}
		if ev.Offset > start {
			fn(start, ev.Offset)
			start = ev.Offset
		}
		q.apply(params, ev)
	}
	if start < blockLen {
		fn(start, blockLen)
	}

	q.Clear()
}

// ApplyAll applies every valid queued event immediately, without block
// splitting. Used by callers that only need block-rate accuracy.
func (q *Queue) ApplyAll(blockLen int32, params *param.Registry) {
	q.sortEvents()
	for i := range q.events {
		ev := &q.events[i]
		if ev.Offset < 0 || ev.Offset >= blockLen {
			q.dropped.Add(1)
			continue
		}
		q.apply(params, ev)
	}
	q.Clear()
}

func (q *Queue) apply(params *param.Registry, ev *Event) {
	p := params.Get(ev.ParamID)
	if p == nil {
		q.dropped.Add(1)
		debug.Warn("event: discarding %s event for unknown parameter %q", ev.Kind, ev.ParamID)
		return
	}

	switch ev.Kind {
	case Automation:
		p.SetPlain(ev.Value)
	case MonoModulation:
		p.SetModulationOffset(ev.Value)
	case PolyModulation:
		if !p.SetVoiceModulation(int(ev.Voice), ev.Value) {
			q.dropped.Add(1)
			debug.Warn("event: discarding poly-modulation event for %q: voice %d rejected",
				ev.ParamID, ev.Voice)
		}
	}
}

// sortEvents stable-sorts by offset so ties keep arrival order. Skipped when
// the host already delivered events in order, which is the common case.
func (q *Queue) sortEvents() {
	if q.sorted {
		return
	}
	sort.SliceStable(q.events, func(i, j int) bool {
		return q.events[i].Offset < q.events[j].Offset
	})
	q.sorted = true
}
