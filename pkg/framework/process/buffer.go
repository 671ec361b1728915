// Package process provides the audio-thread side of the engine: the
// non-owning buffer view over host channel data and the processing context
// that drives sample-accurate automation and parameter smoothing.
package process

// Bus is a named group of channel slices belonging to an auxiliary input or
// output port (e.g. a sidechain).
type Bus struct {
	Name     string
	Channels [][]float32
}

// Buffer is a non-owning view over the host's channel sample slices for one
// processing call. It is bound fresh per call without allocating and must
// not outlive the call. Input and output may alias the same memory
// (in-place processing); DSP code must not assume they differ.
type Buffer struct {
	numSamples int
	input      [][]float32
	output     [][]float32
	auxIn      []Bus
	auxOut     []Bus
}

// NewBuffer creates a reusable buffer view. The aux bus lists are
// pre-allocated so per-call binding stays allocation-free.
func NewBuffer() *Buffer {
	return &Buffer{
		auxIn:  make([]Bus, 0, 8),
		auxOut: make([]Bus, 0, 8),
	}
}

// Bind points the view at the host's main input and output slices for one
// call and drops any previously bound aux buses. Output channels the input
// does not cover are zero-filled here, before any DSP code runs, so declared
// excess channels never expose stale data.
func (b *Buffer) Bind(input, output [][]float32, numSamples int) {
	b.numSamples = numSamples
	b.input = input
	b.output = output
	b.auxIn = b.auxIn[:0]
	b.auxOut = b.auxOut[:0]

	for ch := len(input); ch < len(output); ch++ {
		clear(output[ch][:numSamples])
	}
}

// BindAuxInput attaches a named auxiliary input bus for this call.
func (b *Buffer) BindAuxInput(name string, channels [][]float32) {
	b.auxIn = append(b.auxIn, Bus{Name: name, Channels: channels})
}

// BindAuxOutput attaches a named auxiliary output bus for this call. Aux
// outputs are zero-filled: they have no corresponding input to carry over.
func (b *Buffer) BindAuxOutput(name string, channels [][]float32) {
	for ch := range channels {
		clear(channels[ch][:b.numSamples])
	}
	b.auxOut = append(b.auxOut, Bus{Name: name, Channels: channels})
}

// Samples returns the number of samples per channel in this call.
func (b *Buffer) Samples() int { return b.numSamples }

// InputChannels returns the number of main input channels.
func (b *Buffer) InputChannels() int { return len(b.input) }

// OutputChannels returns the number of main output channels.
func (b *Buffer) OutputChannels() int { return len(b.output) }

// In returns a main input channel slice.
func (b *Buffer) In(ch int) []float32 { return b.input[ch][:b.numSamples] }

// Out returns a main output channel slice.
func (b *Buffer) Out(ch int) []float32 { return b.output[ch][:b.numSamples] }

// AuxIn returns a named auxiliary input bus, or nil if not bound.
func (b *Buffer) AuxIn(name string) [][]float32 {
	for i := range b.auxIn {
		if b.auxIn[i].Name == name {
			return b.auxIn[i].Channels
		}
	}
	return nil
}

// AuxOut returns a named auxiliary output bus, or nil if not bound.
func (b *Buffer) AuxOut(name string) [][]float32 {
	for i := range b.auxOut {
		if b.auxOut[i].Name == name {
			return b.auxOut[i].Channels
		}
	}
	return nil
}

// CopyInputToOutput copies the main input channels to the matching output
// channels, skipping channels that alias the same memory so in-place hosts
// never double-read.
func (b *Buffer) CopyInputToOutput() {
	n := len(b.input)
	if len(b.output) < n {
		n = len(b.output)
	}
	for ch := 0; ch < n; ch++ {
		in, out := b.input[ch][:b.numSamples], b.output[ch][:b.numSamples]
		if len(in) > 0 && &in[0] == &out[0] {
			continue
		}
		copy(out, in)
	}
}

// ZeroOutput zero-fills all main output channels.
func (b *Buffer) ZeroOutput() {
	for ch := range b.output {
		clear(b.output[ch][:b.numSamples])
	}
}

// EachChannel calls fn once per channel pair with whole-block slices. For
// output channels without a matching input, in is nil.
func (b *Buffer) EachChannel(fn func(ch int, in, out []float32)) {
	for ch := range b.output {
		var in []float32
		if ch < len(b.input) {
			in = b.input[ch][:b.numSamples]
		}
		fn(ch, in, b.output[ch][:b.numSamples])
	}
}

// EachFrame calls fn once per sample with a Frame giving access to every
// channel at that sample position. Frame is passed by value; no allocation
// happens per sample.
func (b *Buffer) EachFrame(fn func(i int, f Frame)) {
	for i := 0; i < b.numSamples; i++ {
		fn(i, Frame{buffer: b, index: i})
	}
}

// Block returns a sub-range view [start,end) of this buffer. Channel slices
// obtained from the block are re-sliced on access, so no copying or
// allocation occurs.
func (b *Buffer) Block(start, end int) Block {
	if start < 0 {
		start = 0
	}
	if end > b.numSamples {
		end = b.numSamples
	}
	return Block{buffer: b, start: start, end: end}
}

// EachBlock splits the buffer into chunks of at most maxBlockSize samples
// and calls fn for each. Useful for fixed-size inner DSP loops; the last
// chunk may be shorter.
func (b *Buffer) EachBlock(maxBlockSize int, fn func(bl Block)) {
	if maxBlockSize <= 0 {
		maxBlockSize = b.numSamples
	}
	for start := 0; start < b.numSamples; start += maxBlockSize {
		end := start + maxBlockSize
		if end > b.numSamples {
			end = b.numSamples
		}
		fn(Block{buffer: b, start: start, end: end})
	}
}

// Frame is a per-sample view across all channels. It is a small value type;
// copying it is free.
type Frame struct {
	buffer *Buffer
	index  int
}

// Index returns the sample position within the buffer.
func (f Frame) Index() int { return f.index }

// Channels returns the number of output channels at this frame.
func (f Frame) Channels() int { return len(f.buffer.output) }

// In reads an input channel at this sample. Channels without input read as
// zero.
func (f Frame) In(ch int) float32 {
	if ch >= len(f.buffer.input) {
		return 0
	}
	return f.buffer.input[ch][f.index]
}

// Out reads an output channel at this sample.
func (f Frame) Out(ch int) float32 {
	return f.buffer.output[ch][f.index]
}

// SetOut writes an output channel at this sample.
func (f Frame) SetOut(ch int, v float32) {
	f.buffer.output[ch][f.index] = v
}

// Block is a contiguous sub-range of a Buffer, produced by automation block
// splitting or fixed-size chunking. Like Buffer it is a non-owning view.
type Block struct {
	buffer *Buffer
	start  int
	end    int
}

// Start returns the block's first sample position within the parent buffer.
func (bl Block) Start() int { return bl.start }

// End returns the position one past the block's last sample.
func (bl Block) End() int { return bl.end }

// Samples returns the number of samples in the block.
func (bl Block) Samples() int { return bl.end - bl.start }

// InputChannels returns the number of main input channels.
func (bl Block) InputChannels() int { return len(bl.buffer.input) }

// OutputChannels returns the number of main output channels.
func (bl Block) OutputChannels() int { return len(bl.buffer.output) }

// In returns the block's slice of an input channel.
func (bl Block) In(ch int) []float32 {
	return bl.buffer.input[ch][bl.start:bl.end]
}

// Out returns the block's slice of an output channel.
func (bl Block) Out(ch int) []float32 {
	return bl.buffer.output[ch][bl.start:bl.end]
}

// EachChannel calls fn once per channel pair with block-range slices. For
// output channels without a matching input, in is nil.
func (bl Block) EachChannel(fn func(ch int, in, out []float32)) {
	for ch := range bl.buffer.output {
		var in []float32
		if ch < len(bl.buffer.input) {
			in = bl.buffer.input[ch][bl.start:bl.end]
		}
		fn(ch, in, bl.buffer.output[ch][bl.start:bl.end])
	}
}
