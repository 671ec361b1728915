// Package voice hands out the per-voice modulation slots that
// poly-modulatable parameters carry. An instrument asks for a slot on note
// start, routes that voice id through its poly modulation events, and
// releases the slot on note end so its modulation offsets can be cleared
// before the slot is reused.
package voice

import (
	"github.com/justyntemme/plugcore/pkg/framework/param"
)

// StealMode selects which active voice loses its slot when a note arrives
// and every slot is taken.
type StealMode int

const (
	// StealOldest evicts the longest-running voice.
	StealOldest StealMode = iota
	// StealLowest evicts the lowest note.
	StealLowest
	// StealHighest evicts the highest note.
	StealHighest
	// StealNone drops the new note instead of evicting.
	StealNone
)

type slot struct {
	active  bool
	note    uint8
	channel uint8
	age     uint64
}

// Allocator maps sounding notes to modulation voice ids in
// [0, param.MaxPolyVoices). It is driven from the audio thread between
// blocks and does not allocate after construction.
type Allocator struct {
	slots     [param.MaxPolyVoices]slot
	maxVoices int
	stealMode StealMode
	counter   uint64

	onTerminate func(voice int32)
}

// NewAllocator creates an allocator with the given polyphony, clamped to
// param.MaxPolyVoices.
func NewAllocator(maxVoices int) *Allocator {
	if maxVoices < 1 {
		maxVoices = 1
	}
	if maxVoices > param.MaxPolyVoices {
		maxVoices = param.MaxPolyVoices
	}
	return &Allocator{
		maxVoices: maxVoices,
		stealMode: StealOldest,
	}
}

// SetStealMode selects the eviction strategy when polyphony is exceeded.
func (a *Allocator) SetStealMode(mode StealMode) {
	a.stealMode = mode
}

// OnTerminate installs a hook that runs whenever a voice ends, by release
// or by stealing. Instruments use it to zero the voice's modulation
// offsets, e.g. via ClearModulation.
func (a *Allocator) OnTerminate(fn func(voice int32)) {
	a.onTerminate = fn
}

// NoteOn claims a slot for a sounding note and returns its voice id. When
// all slots are busy a voice is stolen per the steal mode; with StealNone
// the note is dropped and -1 returned. A retriggered note keeps its slot.
func (a *Allocator) NoteOn(channel, note uint8) int32 {
	if id := a.find(channel, note); id >= 0 {
		a.counter++
		a.slots[id].age = a.counter
		return id
	}

	id := a.free()
	if id < 0 {
		id = a.steal()
		if id < 0 {
			return -1
		}
		a.terminate(id)
	}

	a.counter++
	a.slots[id] = slot{
		active:  true,
		note:    note,
		channel: channel,
		age:     a.counter,
	}
	return id
}

// NoteOff releases the slot for a sounding note and returns the voice id
// that ended, or -1 if the note was not sounding.
func (a *Allocator) NoteOff(channel, note uint8) int32 {
	id := a.find(channel, note)
	if id < 0 {
		return -1
	}
	a.terminate(id)
	return id
}

// Voice returns the slot id a note is sounding on, or -1.
func (a *Allocator) Voice(channel, note uint8) int32 {
	return a.find(channel, note)
}

// Active returns the number of sounding voices.
func (a *Allocator) Active() int {
	n := 0
	for i := 0; i < a.maxVoices; i++ {
		if a.slots[i].active {
			n++
		}
	}
	return n
}

// Reset terminates every sounding voice.
func (a *Allocator) Reset() {
	for i := 0; i < a.maxVoices; i++ {
		if a.slots[i].active {
			a.terminate(int32(i))
		}
	}
}

// ClearModulation zeroes the voice's modulation offset on every
// poly-modulatable parameter in the registry. Suitable as an OnTerminate
// hook:
//
//	alloc.OnTerminate(func(v int32) { voice.ClearModulation(params, v) })
func ClearModulation(params []*param.Parameter, voice int32) {
	for _, p := range params {
		if p.Flags()&param.PolyModulatable != 0 {
			p.SetVoiceModulation(int(voice), 0)
		}
	}
}

func (a *Allocator) terminate(id int32) {
	a.slots[id].active = false
	if a.onTerminate != nil {
		a.onTerminate(id)
	}
}

func (a *Allocator) find(channel, note uint8) int32 {
	for i := 0; i < a.maxVoices; i++ {
		s := &a.slots[i]
		if s.active && s.note == note && s.channel == channel {
			return int32(i)
		}
	}
	return -1
}

func (a *Allocator) free() int32 {
	for i := 0; i < a.maxVoices; i++ {
		if !a.slots[i].active {
			return int32(i)
		}
	}
	return -1
}

func (a *Allocator) steal() int32 {
	if a.stealMode == StealNone {
		return -1
	}

	best := int32(-1)
	var bestValue uint64
	for i := 0; i < a.maxVoices; i++ {
		s := &a.slots[i]
		if !s.active {
			continue
		}

		var value uint64
		switch a.stealMode {
		case StealOldest:
			// Smaller age stamp means triggered earlier.
			value = ^s.age
		case StealLowest:
			value = uint64(^s.note)
		case StealHighest:
			value = uint64(s.note)
		}
		if best < 0 || value > bestValue {
			best = int32(i)
			bestValue = value
		}
	}
	return best
}
