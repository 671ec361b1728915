// Package event carries sample-accurate automation and modulation events
// from a host adapter into the parameter engine, and splits processing blocks
// at event boundaries so smoothers can be re-targeted mid-block.
package event

// Kind discriminates how an event's value is applied to its parameter.
type Kind uint8

const (
	// Automation replaces the parameter's plain value.
	Automation Kind = iota
	// MonoModulation replaces the shared additive modulation offset.
	MonoModulation
	// PolyModulation replaces one voice's additive modulation offset. The
	// event's Voice field selects the voice.
	PolyModulation
)

// String returns a readable name for the kind.
func (k Kind) String() string {
	switch k {
	case Automation:
		return "automation"
	case MonoModulation:
		return "mono-modulation"
	case PolyModulation:
		return "poly-modulation"
	default:
		return "unknown"
	}
}

// Event is one parameter change within a processing block. Offset is the
// sample position inside the block, Value is a plain value (or an additive
// offset for the modulation kinds). Events are produced by the host adapter
// per block and consumed exactly once.
type Event struct {
	Offset  int32
	ParamID string
	Value   float32
	Kind    Kind
	Voice   int32
}
