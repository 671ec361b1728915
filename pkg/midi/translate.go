// Package midi maps incoming MIDI messages onto parameter events. A host
// adapter or standalone driver feeds it raw messages; mapped control
// changes, pitch bend and channel pressure come out as sample-accurate
// events ready for the processing context.
package midi

import (
	"fmt"

	"gitlab.com/gomidi/midi/v2"

	"github.com/justyntemme/plugcore/pkg/framework/event"
	"github.com/justyntemme/plugcore/pkg/framework/param"
)

// OmniChannel accepts messages on any MIDI channel.
const OmniChannel = -1

const (
	maxCC        = 127
	pitchBendMax = 8192 // absolute value range is 0..16383, centered at 8192
)

// Translator converts MIDI messages into parameter events. Mappings are
// configured at setup time; Translate itself does not allocate and is safe
// to call from the audio thread.
type Translator struct {
	params  *param.Registry
	channel int

	cc        [maxCC + 1]*param.Parameter
	pitchBend *param.Parameter
	pressure  *param.Parameter

	noteOn  func(channel, key, velocity uint8, offset int32)
	noteOff func(channel, key uint8, offset int32)
}

// NewTranslator creates a translator for the given registry, listening on
// all channels.
func NewTranslator(params *param.Registry) *Translator {
	return &Translator{
		params:  params,
		channel: OmniChannel,
	}
}

// SetChannel restricts translation to one MIDI channel (0-15), or
// OmniChannel for all.
func (t *Translator) SetChannel(channel int) {
	t.channel = channel
}

// MapCC routes a control change number to a parameter. The controller value
// 0-127 maps linearly onto the parameter's normalized range.
func (t *Translator) MapCC(controller uint8, paramID string) error {
	if controller > maxCC {
		return fmt.Errorf("midi: controller %d out of range", controller)
	}
	p := t.params.Get(paramID)
	if p == nil {
		return fmt.Errorf("midi: unknown parameter %q", paramID)
	}
	t.cc[controller] = p
	return nil
}

// MapPitchBend routes pitch bend to a parameter. Bend maps onto the
// parameter's normalized range with the wheel center at 0.5.
func (t *Translator) MapPitchBend(paramID string) error {
	p := t.params.Get(paramID)
	if p == nil {
		return fmt.Errorf("midi: unknown parameter %q", paramID)
	}
	t.pitchBend = p
	return nil
}

// MapChannelPressure routes channel pressure (aftertouch) to a parameter as
// a mono modulation offset: pressure 0 means no offset, full pressure means
// the distance from the parameter's default to its maximum.
func (t *Translator) MapChannelPressure(paramID string) error {
	p := t.params.Get(paramID)
	if p == nil {
		return fmt.Errorf("midi: unknown parameter %q", paramID)
	}
	t.pressure = p
	return nil
}

// OnNote installs callbacks for note start and end messages, for
// instrument-style processors that manage their own voices.
func (t *Translator) OnNote(on func(channel, key, velocity uint8, offset int32), off func(channel, key uint8, offset int32)) {
	t.noteOn = on
	t.noteOff = off
}

// Translate inspects one message and, if it is mapped, pushes the
// corresponding parameter event at the given sample offset. It reports
// whether the message was consumed.
func (t *Translator) Translate(msg midi.Message, offset int32, q *event.Queue) bool {
	var ch, key, vel uint8

	if msg.GetNoteStart(&ch, &key, &vel) {
		if !t.accepts(ch) || t.noteOn == nil {
			return false
		}
		t.noteOn(ch, key, vel, offset)
		return true
	}
	if msg.GetNoteEnd(&ch, &key) {
		if !t.accepts(ch) || t.noteOff == nil {
			return false
		}
		t.noteOff(ch, key, offset)
		return true
	}

	var controller, value uint8
	if msg.GetControlChange(&ch, &controller, &value) {
		p := t.cc[controller]
		if p == nil || !t.accepts(ch) {
			return false
		}
		plain := p.Range().Denormalize(float32(value) / float32(maxCC))
		return q.Push(event.Event{
			Offset:  offset,
			ParamID: p.ID(),
			Value:   plain,
			Kind:    event.Automation,
		})
	}

	var rel int16
	var abs uint16
	if msg.GetPitchBend(&ch, &rel, &abs) {
		if t.pitchBend == nil || !t.accepts(ch) {
			return false
		}
		normalized := float32(abs) / float32(2*pitchBendMax-1)
		plain := t.pitchBend.Range().Denormalize(normalized)
		return q.Push(event.Event{
			Offset:  offset,
			ParamID: t.pitchBend.ID(),
			Value:   plain,
			Kind:    event.Automation,
		})
	}

	var pressure uint8
	if msg.GetAfterTouch(&ch, &pressure) {
		if t.pressure == nil || !t.accepts(ch) {
			return false
		}
		p := t.pressure
		span := p.Range().Max() - p.Default()
		return q.Push(event.Event{
			Offset:  offset,
			ParamID: p.ID(),
			Value:   span * float32(pressure) / float32(maxCC),
			Kind:    event.MonoModulation,
		})
	}

	return false
}

func (t *Translator) accepts(channel uint8) bool {
	return t.channel == OmniChannel || int(channel) == t.channel
}
