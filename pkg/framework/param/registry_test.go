package param

import (
	"testing"
)

func TestRegistryAdd(t *testing.T) {
	r := NewRegistry()

	err := r.Add(
		New("gain", "Gain").Linear(-30, 0).Default(0).Build(),
		New("mix", "Mix").Linear(0, 100).Default(100).Build(),
	)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if r.Count() != 2 {
		t.Errorf("expected 2 parameters, got %d", r.Count())
	}
	if p := r.Get("gain"); p == nil || p.Name() != "Gain" {
		t.Error("lookup by id failed")
	}
	if p := r.Get("nope"); p != nil {
		t.Error("unknown id should return nil")
	}
}

func TestRegistryDuplicateIDFails(t *testing.T) {
	r := NewRegistry()

	if err := r.Add(New("gain", "Gain").Build()); err != nil {
		t.Fatalf("first Add failed: %v", err)
	}
	if err := r.Add(New("gain", "Gain 2").Build()); err == nil {
		t.Error("duplicate id must fail registration")
	}
}

func TestRegistryInvalidParameterFails(t *testing.T) {
	r := NewRegistry()

	t.Run("InvalidRange", func(t *testing.T) {
		if err := r.Add(New("bad", "Bad").Linear(1, 1).Build()); err == nil {
			t.Error("min == max must fail registration")
		}
	})

	t.Run("DefaultOutsideRange", func(t *testing.T) {
		if err := r.Add(New("bad2", "Bad").Linear(0, 1).Default(2).Build()); err == nil {
			t.Error("default outside the range must fail registration")
		}
	})

	t.Run("EmptyID", func(t *testing.T) {
		if err := r.Add(New("", "Anon").Build()); err == nil {
			t.Error("empty id must fail registration")
		}
	})
}

func TestRegistryPreservesInsertionOrder(t *testing.T) {
	r := NewRegistry()
	ids := []string{"delta", "alpha", "candy", "bravo"}
	for _, id := range ids {
		if err := r.Add(New(id, id).Build()); err != nil {
			t.Fatalf("Add(%q) failed: %v", id, err)
		}
	}

	for i, id := range ids {
		if p := r.GetByIndex(i); p == nil || p.ID() != id {
			t.Errorf("index %d: expected %q", i, id)
		}
	}
	if r.GetByIndex(-1) != nil || r.GetByIndex(len(ids)) != nil {
		t.Error("out-of-range index should return nil")
	}

	all := r.All()
	for i, id := range ids {
		if all[i].ID() != id {
			t.Errorf("All()[%d]: expected %q, got %q", i, id, all[i].ID())
		}
	}
}

func TestRegistryAddGroup(t *testing.T) {
	r := NewRegistry()

	err := r.AddGroup("osc1",
		New("level", "Level").Linear(0, 1).Build(),
		New("detune", "Detune").Linear(-1, 1).Default(0).Build(),
	)
	if err != nil {
		t.Fatalf("AddGroup failed: %v", err)
	}

	if p := r.Get("osc1/level"); p == nil {
		t.Error("flattened group id osc1/level not found")
	}
	if p := r.Get("level"); p != nil {
		t.Error("group member should not be reachable without its prefix")
	}
}

func TestRegistryResetAll(t *testing.T) {
	r := NewRegistry()
	p := New("gain", "Gain").Linear(-30, 0).Default(-6).Build()
	if err := r.Add(p); err != nil {
		t.Fatal(err)
	}

	p.SetPlain(-20)
	p.SetModulationOffset(3)
	r.ResetAll()

	if got := p.Plain(); got != -6 {
		t.Errorf("expected default -6, got %f", got)
	}
	if got := p.ModulationOffset(); got != 0 {
		t.Errorf("expected modulation cleared, got %f", got)
	}
}
