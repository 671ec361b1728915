package plugin

import "testing"

func TestInfoUIDStable(t *testing.T) {
	info := Info{ID: "com.plugcore.examples.gain"}
	a := info.UID()
	b := info.UID()
	if a != b {
		t.Error("UID not deterministic for the same ID")
	}

	var zero [16]byte
	if a == zero {
		t.Error("UID is all zeroes")
	}
}

func TestInfoUIDDistinct(t *testing.T) {
	ids := []string{
		"com.plugcore.examples.gain",
		"com.plugcore.examples.delay",
		"com.plugcore.examples.gain2",
	}
	seen := make(map[[16]byte]string)
	for _, id := range ids {
		uid := Info{ID: id}.UID()
		if prev, ok := seen[uid]; ok {
			t.Errorf("UID collision between %q and %q", prev, id)
		}
		seen[uid] = id
	}
}
