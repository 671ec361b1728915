package param

import (
	"math"
	"sync"
	"testing"
)

func gainParam(t *testing.T) *Parameter {
	t.Helper()
	p := New("gain", "Gain").
		Linear(-30, 0).
		Default(0).
		Unit("dB").
		Smoothing(LinearSmoothing, 10).
		Build()
	return p
}

func TestParameterStoreLoad(t *testing.T) {
	p := gainParam(t)

	if p.Plain() != 0 {
		t.Errorf("parameter should start at its default, got %f", p.Plain())
	}

	p.SetPlain(-15)
	if p.Plain() != -15 {
		t.Errorf("expected -15, got %f", p.Plain())
	}

	t.Run("ClampsToRange", func(t *testing.T) {
		p.SetPlain(-100)
		if p.Plain() != -30 {
			t.Errorf("expected clamp to -30, got %f", p.Plain())
		}
		p.SetPlain(50)
		if p.Plain() != 0 {
			t.Errorf("expected clamp to 0, got %f", p.Plain())
		}
	})

	t.Run("NaNNeverReachesTheCell", func(t *testing.T) {
		p.SetPlain(float32(math.NaN()))
		if v := p.Plain(); v != v {
			t.Error("NaN leaked into the parameter cell")
		}
	})

	t.Run("Normalized", func(t *testing.T) {
		p.SetNormalized(0.5)
		if got := p.Plain(); got != -15 {
			t.Errorf("expected -15, got %f", got)
		}
		if got := p.Normalized(); got != 0.5 {
			t.Errorf("expected 0.5, got %f", got)
		}
	})
}

func TestParameterModulation(t *testing.T) {
	p := gainParam(t)
	p.SetPlain(-10)

	t.Run("AdditiveOffset", func(t *testing.T) {
		p.SetModulationOffset(-5)
		if got := p.ModulatedValue(); got != -15 {
			t.Errorf("expected -15, got %f", got)
		}
	})

	t.Run("ClampedAtReadTimeOnly", func(t *testing.T) {
		p.SetModulationOffset(-40)
		if got := p.ModulatedValue(); got != -30 {
			t.Errorf("expected clamp to -30, got %f", got)
		}
		// The stored value is untouched, so removing modulation restores it.
		p.SetModulationOffset(0)
		if got := p.ModulatedValue(); got != -10 {
			t.Errorf("expected -10 after clearing modulation, got %f", got)
		}
	})
}

func TestParameterVoiceModulation(t *testing.T) {
	p := New("cutoff", "Cutoff").
		Linear(0, 100).
		Default(50).
		PolyModulatable().
		Build()

	t.Run("PerVoiceOffsetsAreIndependent", func(t *testing.T) {
		if !p.SetVoiceModulation(0, 10) {
			t.Fatal("voice 0 modulation rejected")
		}
		if !p.SetVoiceModulation(1, -10) {
			t.Fatal("voice 1 modulation rejected")
		}
		if got := p.VoiceValue(0); got != 60 {
			t.Errorf("voice 0: expected 60, got %f", got)
		}
		if got := p.VoiceValue(1); got != 40 {
			t.Errorf("voice 1: expected 40, got %f", got)
		}
		if got := p.VoiceValue(2); got != 50 {
			t.Errorf("voice 2 should be unmodulated, got %f", got)
		}
	})

	t.Run("MonoAndPolySum", func(t *testing.T) {
		p.SetModulationOffset(5)
		if got := p.VoiceValue(0); got != 65 {
			t.Errorf("expected mono+poly sum 65, got %f", got)
		}
	})

	t.Run("RejectsBadVoiceIDs", func(t *testing.T) {
		if p.SetVoiceModulation(-1, 1) {
			t.Error("negative voice id accepted")
		}
		if p.SetVoiceModulation(MaxPolyVoices, 1) {
			t.Error("out-of-range voice id accepted")
		}
	})

	t.Run("RejectsNonPolyParams", func(t *testing.T) {
		mono := gainParam(t)
		if mono.SetVoiceModulation(0, 1) {
			t.Error("poly modulation accepted on a mono-only parameter")
		}
	})
}

// Parameters are shared between the audio thread and non-realtime threads;
// hammer a cell from several goroutines and make sure reads never observe a
// torn or out-of-range value.
func TestParameterConcurrentAccess(t *testing.T) {
	p := gainParam(t)

	var wg sync.WaitGroup
	stop := make(chan struct{})

	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(seed float32) {
			defer wg.Done()
			v := seed
			for {
				select {
				case <-stop:
					return
				default:
				}
				p.SetPlain(v)
				v -= 0.1
				if v < -30 {
					v = 0
				}
			}
		}(float32(-w))
	}

	for i := 0; i < 100000; i++ {
		v := p.Plain()
		if v < -30 || v > 0 {
			t.Fatalf("read out-of-range value %f", v)
		}
	}
	close(stop)
	wg.Wait()
}

func TestParameterSyncSmoother(t *testing.T) {
	p := gainParam(t)
	sm := p.Smoother()

	// The smoother starts snapped to the default.
	if sm.Target() != 0 {
		t.Fatalf("smoother should start at default, got %f", sm.Target())
	}

	// A GUI-side store is observed by comparison, not by callback.
	p.SetPlain(-30)
	p.SyncSmoother(10)
	if sm.Target() != -30 {
		t.Errorf("smoother target should follow the cell, got %f", sm.Target())
	}
	if !sm.IsSmoothing() {
		t.Error("smoother should be ramping after a value change")
	}

	// Syncing again without a change must not restart the ramp.
	sm.Next()
	left := sm.StepsLeft()
	p.SyncSmoother(10)
	if sm.StepsLeft() != left {
		t.Error("re-sync without a value change restarted the ramp")
	}
}

func TestParameterResetSmoother(t *testing.T) {
	p := gainParam(t)
	p.SetPlain(-20)

	t.Run("Snap", func(t *testing.T) {
		p.Smoother().Reset(0)
		p.ResetSmoother(SnapOnReset, 64)
		if p.Smoother().IsSmoothing() {
			t.Error("snap reset should not leave a ramp running")
		}
		if got := p.Smoother().Next(); got != -20 {
			t.Errorf("expected -20 after snap reset, got %f", got)
		}
	})

	t.Run("Fade", func(t *testing.T) {
		p.Smoother().Reset(0)
		p.ResetSmoother(FadeOnReset, 64)
		if !p.Smoother().IsSmoothing() {
			t.Error("fade reset should start a ramp")
		}
		if got := p.Smoother().Next(); got >= 0 || got <= -20 {
			t.Errorf("fade reset should ramp toward -20, got %f", got)
		}
	})
}

func TestParameterFormatting(t *testing.T) {
	p := gainParam(t)
	p.SetFormatter(DecibelFormatter, DecibelParser)

	if got := p.FormatValue(1); got != "0.0 dB" {
		t.Errorf("expected \"0.0 dB\", got %q", got)
	}

	n, err := p.ParseValue("-15 dB")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if n != 0.5 {
		t.Errorf("expected normalized 0.5, got %f", n)
	}
}
