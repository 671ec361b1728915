package param

import (
	"testing"
)

func TestGainParameter(t *testing.T) {
	p := GainParameter("gain", "Gain").Build()

	if p.Unit() != "dB" {
		t.Errorf("expected dB unit, got %q", p.Unit())
	}
	if p.Plain() != 0 {
		t.Errorf("expected 0 dB default, got %f", p.Plain())
	}
	if p.SmoothingStyle() != LinearSmoothing {
		t.Error("gain should use linear smoothing")
	}
	if got := p.FormatValue(0); got != "-∞ dB" {
		t.Errorf("range bottom should format as -∞ dB, got %q", got)
	}
}

func TestFrequencyParameter(t *testing.T) {
	p := FrequencyParameter("cutoff", "Cutoff", 20, 20000, 1000).Build()

	if _, ok := p.Range().(SkewedRange); !ok {
		t.Error("frequency parameters should use a skewed range")
	}
	if p.SmoothingStyle() != LogarithmicSmoothing {
		t.Error("frequency parameters should smooth logarithmically")
	}

	// The skew gives the low end more than its linear share of the
	// normalized range.
	if n := p.Range().Normalize(1000); n < 0.2 {
		t.Errorf("1 kHz should land well into the normalized range, got %f", n)
	}
}

func TestChoiceParameter(t *testing.T) {
	p := Choice("mode", "Mode", []ChoiceOption{
		{Name: "Clean"},
		{Name: "Crunch", Aliases: []string{"drive"}},
		{Name: "Fuzz"},
	}).Build()

	if got := p.FormatValue(0.5); got != "Crunch" {
		t.Errorf("expected Crunch, got %q", got)
	}

	n, err := p.ParseValue("drive")
	if err != nil {
		t.Fatalf("alias parse failed: %v", err)
	}
	if plain := p.Range().Denormalize(n); plain != 1 {
		t.Errorf("alias should map to index 1, got %f", plain)
	}

	if _, err := p.ParseValue("unknown"); err == nil {
		t.Error("unknown option should fail to parse")
	}
}

func TestBypassParameter(t *testing.T) {
	p := BypassParameter("bypass", "Bypass").Build()

	if p.Flags()&IsBypass == 0 {
		t.Error("bypass flag not set")
	}
	if got := p.FormatValue(0); got != "Off" {
		t.Errorf("expected Off, got %q", got)
	}
	if got := p.FormatValue(1); got != "On" {
		t.Errorf("expected On, got %q", got)
	}
}
