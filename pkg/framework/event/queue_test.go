package event

import (
	"testing"

	"github.com/justyntemme/plugcore/pkg/framework/param"
)

func testRegistry(t *testing.T) *param.Registry {
	t.Helper()
	reg := param.NewRegistry()
	err := reg.Add(
		param.New("gain", "Gain").Linear(-30, 0).Default(0).Build(),
		param.New("cutoff", "Cutoff").Linear(20, 20000).Default(1000).PolyModulatable().Build(),
	)
	if err != nil {
		t.Fatal(err)
	}
	return reg
}

type splitRange struct{ start, end int32 }

func TestSplitBlockBoundaries(t *testing.T) {
	reg := testRegistry(t)
	q := NewQueue()

	// Two events at offset 5 (tie) and one at 20, in a 32-sample block.
	q.Push(Event{Offset: 5, ParamID: "gain", Value: -10, Kind: Automation})
	q.Push(Event{Offset: 5, ParamID: "gain", Value: -20, Kind: Automation})
	q.Push(Event{Offset: 20, ParamID: "gain", Value: -5, Kind: Automation})

	var ranges []splitRange
	var valueAt5 float32
	q.SplitBlock(32, reg, func(start, end int32) {
		ranges = append(ranges, splitRange{start, end})
		if start == 5 {
			valueAt5 = reg.Get("gain").Plain()
		}
	})

	want := []splitRange{{0, 5}, {5, 20}, {20, 32}}
	if len(ranges) != len(want) {
		t.Fatalf("expected ranges %v, got %v", want, ranges)
	}
	for i := range want {
		if ranges[i] != want[i] {
			t.Errorf("range %d: expected %v, got %v", i, want[i], ranges[i])
		}
	}

	// Both offset-5 events must be applied before samples 5..20 are
	// produced; the later arrival wins the tie.
	if valueAt5 != -20 {
		t.Errorf("expected -20 visible in range [5,20), got %f", valueAt5)
	}
	if got := reg.Get("gain").Plain(); got != -5 {
		t.Errorf("expected final value -5, got %f", got)
	}
	if q.Len() != 0 {
		t.Error("events must be consumed exactly once")
	}
}

func TestSplitBlockUnsortedArrival(t *testing.T) {
	reg := testRegistry(t)
	q := NewQueue()

	q.Push(Event{Offset: 20, ParamID: "gain", Value: -5, Kind: Automation})
	q.Push(Event{Offset: 5, ParamID: "gain", Value: -10, Kind: Automation})

	var ranges []splitRange
	q.SplitBlock(32, reg, func(start, end int32) {
		ranges = append(ranges, splitRange{start, end})
	})

	want := []splitRange{{0, 5}, {5, 20}, {20, 32}}
	if len(ranges) != len(want) {
		t.Fatalf("expected ranges %v, got %v", want, ranges)
	}
	for i := range want {
		if ranges[i] != want[i] {
			t.Errorf("range %d: expected %v, got %v", i, want[i], ranges[i])
		}
	}
}

func TestSplitBlockEventAtZero(t *testing.T) {
	reg := testRegistry(t)
	q := NewQueue()

	q.Push(Event{Offset: 0, ParamID: "gain", Value: -30, Kind: Automation})

	var ranges []splitRange
	var valueAtStart float32
	q.SplitBlock(16, reg, func(start, end int32) {
		ranges = append(ranges, splitRange{start, end})
		if start == 0 {
			valueAtStart = reg.Get("gain").Plain()
		}
	})

	if len(ranges) != 1 || ranges[0] != (splitRange{0, 16}) {
		t.Fatalf("expected a single full range, got %v", ranges)
	}
	if valueAtStart != -30 {
		t.Errorf("offset-0 event must be applied before the first range, got %f", valueAtStart)
	}
}

func TestSplitBlockNoEvents(t *testing.T) {
	reg := testRegistry(t)
	q := NewQueue()

	var ranges []splitRange
	q.SplitBlock(64, reg, func(start, end int32) {
		ranges = append(ranges, splitRange{start, end})
	})

	if len(ranges) != 1 || ranges[0] != (splitRange{0, 64}) {
		t.Errorf("expected one full-block range, got %v", ranges)
	}
}

func TestSplitBlockDiscardsOutOfRangeOffsets(t *testing.T) {
	reg := testRegistry(t)
	q := NewQueue()

	before := q.Dropped()
	q.Push(Event{Offset: -1, ParamID: "gain", Value: -10, Kind: Automation})
	q.Push(Event{Offset: 32, ParamID: "gain", Value: -10, Kind: Automation})
	q.Push(Event{Offset: 100, ParamID: "gain", Value: -10, Kind: Automation})

	var ranges []splitRange
	q.SplitBlock(32, reg, func(start, end int32) {
		ranges = append(ranges, splitRange{start, end})
	})

	if got := reg.Get("gain").Plain(); got != 0 {
		t.Errorf("discarded events must not touch the parameter, got %f", got)
	}
	if len(ranges) != 1 || ranges[0] != (splitRange{0, 32}) {
		t.Errorf("discarded events must not split the block, got %v", ranges)
	}
	if got := q.Dropped() - before; got != 3 {
		t.Errorf("expected 3 dropped events, got %d", got)
	}
}

func TestSplitBlockUnknownParameter(t *testing.T) {
	reg := testRegistry(t)
	q := NewQueue()

	before := q.Dropped()
	q.Push(Event{Offset: 0, ParamID: "ghost", Value: 1, Kind: Automation})
	q.SplitBlock(16, reg, func(start, end int32) {})

	if got := q.Dropped() - before; got != 1 {
		t.Errorf("unknown parameter should count as dropped, got %d", got)
	}
}

func TestModulationEvents(t *testing.T) {
	reg := testRegistry(t)
	q := NewQueue()

	q.Push(Event{Offset: 0, ParamID: "cutoff", Value: 500, Kind: MonoModulation})
	q.Push(Event{Offset: 0, ParamID: "cutoff", Value: 250, Kind: PolyModulation, Voice: 3})
	q.SplitBlock(16, reg, func(start, end int32) {})

	p := reg.Get("cutoff")
	if got := p.ModulatedValue(); got != 1500 {
		t.Errorf("expected mono-modulated value 1500, got %f", got)
	}
	if got := p.VoiceValue(3); got != 1750 {
		t.Errorf("expected voice 3 value 1750, got %f", got)
	}
	if got := p.VoiceValue(0); got != 1500 {
		t.Errorf("voice 0 should only see mono modulation, got %f", got)
	}
	if got := p.Plain(); got != 1000 {
		t.Errorf("modulation must not change the stored plain value, got %f", got)
	}
}

func TestQueueCapacity(t *testing.T) {
	reg := testRegistry(t)
	q := NewQueueWithCapacity(2)

	if !q.Push(Event{Offset: 0, ParamID: "gain"}) {
		t.Error("push below capacity should succeed")
	}
	if !q.Push(Event{Offset: 1, ParamID: "gain"}) {
		t.Error("push at capacity should succeed")
	}
	if q.Push(Event{Offset: 2, ParamID: "gain"}) {
		t.Error("push beyond capacity must fail")
	}
	if q.Dropped() != 1 {
		t.Errorf("expected 1 dropped, got %d", q.Dropped())
	}

	// A full queue still processes what it holds.
	count := 0
	q.SplitBlock(8, reg, func(start, end int32) { count++ })
	if count == 0 {
		t.Error("full queue should still split the block")
	}
}

func TestApplyAll(t *testing.T) {
	reg := testRegistry(t)
	q := NewQueue()

	q.Push(Event{Offset: 3, ParamID: "gain", Value: -12, Kind: Automation})
	q.Push(Event{Offset: 64, ParamID: "gain", Value: -24, Kind: Automation})
	q.ApplyAll(32, reg)

	if got := reg.Get("gain").Plain(); got != -12 {
		t.Errorf("expected -12 (out-of-range event discarded), got %f", got)
	}
	if q.Len() != 0 {
		t.Error("ApplyAll should drain the queue")
	}
}

func BenchmarkSplitBlock(b *testing.B) {
	reg := param.NewRegistry()
	if err := reg.Add(param.New("gain", "Gain").Linear(-30, 0).Build()); err != nil {
		b.Fatal(err)
	}
	q := NewQueue()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		q.Push(Event{Offset: 32, ParamID: "gain", Value: -3, Kind: Automation})
		q.Push(Event{Offset: 96, ParamID: "gain", Value: -6, Kind: Automation})
		q.SplitBlock(128, reg, func(start, end int32) {})
	}
}
