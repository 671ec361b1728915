package param

import (
	"math"
	"testing"
)

func TestSmootherLinear(t *testing.T) {
	s := NewSmoother(LinearSmoothing, 0)
	s.SetTarget(1.0, 10)

	t.Run("ExactConvergence", func(t *testing.T) {
		var last float32
		for i := 0; i < 10; i++ {
			last = s.Next()
			expected := float32(i+1) * 0.1
			if math.Abs(float64(last-expected)) > 1e-4 {
				t.Errorf("sample %d: expected %f, got %f", i, expected, last)
			}
		}
		if last != 1.0 {
			t.Errorf("final sample must equal the target exactly, got %f", last)
		}
	})

	t.Run("IdempotentAfterConvergence", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			if got := s.Next(); got != 1.0 {
				t.Fatalf("call %d after convergence: expected exactly 1.0, got %f", i, got)
			}
		}
		if s.IsSmoothing() {
			t.Error("smoother should report converged")
		}
	})
}

func TestSmootherSnap(t *testing.T) {
	t.Run("ZeroSteps", func(t *testing.T) {
		s := NewSmoother(LinearSmoothing, 0)
		s.SetTarget(5, 0)
		if s.IsSmoothing() {
			t.Error("zero steps should snap immediately")
		}
		if got := s.Next(); got != 5 {
			t.Errorf("expected 5, got %f", got)
		}
	})

	t.Run("NoSmoothingStyle", func(t *testing.T) {
		s := NewSmoother(NoSmoothing, 0)
		s.SetTarget(5, 100)
		if got := s.Next(); got != 5 {
			t.Errorf("NoSmoothing should ignore the step count, got %f", got)
		}
	})
}

func TestSmootherLogarithmic(t *testing.T) {
	s := NewSmoother(LogarithmicSmoothing, 20)
	s.SetTarget(20000, 10)

	t.Run("MultiplicativeRamp", func(t *testing.T) {
		prev := float32(20)
		var ratios []float64
		for i := 0; i < 9; i++ {
			v := s.Next()
			if v <= prev {
				t.Fatalf("sample %d: ramp not increasing (%f -> %f)", i, prev, v)
			}
			ratios = append(ratios, float64(v/prev))
			prev = v
		}
		// Constant ratio per sample is what makes the ramp perceptually even.
		for i := 1; i < len(ratios); i++ {
			if math.Abs(ratios[i]-ratios[0]) > 1e-3 {
				t.Errorf("ratio drifted: %f vs %f", ratios[i], ratios[0])
			}
		}
	})

	t.Run("ExactFinalValue", func(t *testing.T) {
		if got := s.Next(); got != 20000 {
			t.Errorf("final sample must equal the target exactly, got %f", got)
		}
	})

	t.Run("NonPositiveStartIsClamped", func(t *testing.T) {
		s := NewSmoother(LogarithmicSmoothing, 0)
		s.SetTarget(100, 4)
		for i := 0; i < 3; i++ {
			if v := s.Next(); v <= 0 || v != v {
				t.Fatalf("ramp from zero produced %f", v)
			}
		}
		if got := s.Next(); got != 100 {
			t.Errorf("expected exact target 100, got %f", got)
		}
	})
}

func TestSmootherOversampled(t *testing.T) {
	os := NewOversampling()
	os.SetFactor(4)

	s := &Smoother{}
	s.Configure(OversampledLinearSmoothing, os)
	s.Reset(0)
	s.SetTarget(1, 10)

	if got := s.StepsLeft(); got != 40 {
		t.Errorf("4x oversampling should stretch 10 steps to 40, got %d", got)
	}

	// Two smoothers sharing the setting stay in sync.
	s2 := &Smoother{}
	s2.Configure(OversampledLinearSmoothing, os)
	s2.Reset(0)
	s2.SetTarget(1, 10)
	for i := 0; i < 40; i++ {
		if a, b := s.Next(), s2.Next(); a != b {
			t.Fatalf("sample %d: smoothers diverged (%f vs %f)", i, a, b)
		}
	}
	if s.Current() != 1 {
		t.Errorf("expected exact convergence, got %f", s.Current())
	}
}

func TestSmootherNextBlock(t *testing.T) {
	s := NewSmoother(LinearSmoothing, 0)
	s.SetTarget(1, 4)

	out := make([]float32, 8)
	s.NextBlock(out)

	expected := []float32{0.25, 0.5, 0.75, 1, 1, 1, 1, 1}
	for i := range expected {
		if math.Abs(float64(out[i]-expected[i])) > 1e-5 {
			t.Errorf("sample %d: expected %f, got %f", i, expected[i], out[i])
		}
	}
	if out[3] != 1 {
		t.Error("ramp end must be exact")
	}
}

func TestSmootherRetarget(t *testing.T) {
	s := NewSmoother(LinearSmoothing, 0)
	s.SetTarget(1, 10)

	for i := 0; i < 5; i++ {
		s.Next()
	}
	mid := s.Current()

	// Re-targeting mid-ramp must ramp from the current value, not the old
	// target.
	s.SetTarget(0, 5)
	first := s.Next()
	if first >= mid {
		t.Errorf("expected ramp back down from %f, got %f", mid, first)
	}
	for i := 0; i < 4; i++ {
		s.Next()
	}
	if s.Current() != 0 {
		t.Errorf("expected exact convergence to 0, got %f", s.Current())
	}
}

func BenchmarkSmootherNextBlock(b *testing.B) {
	s := NewSmoother(LinearSmoothing, 0)
	out := make([]float32, 512)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.SetTarget(float32(i%2), 256)
		s.NextBlock(out)
	}
}
