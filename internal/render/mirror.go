package render

import (
	"gitlab.com/gomidi/midi/v2"
)

// Mirror reflects the surface's display state onto a programmer-mode grid
// controller: switch colors go out as RGB SysEx per pad, indicator values as
// CC so a receiving template can draw the ring. The engine stays unaware of
// any of this; Mirror is just one Renderer.
type Mirror struct {
	send func(midi.Message) error
}

// NewMirror wraps a raw send function, usually Manager.OpenSend.
func NewMirror(send func(midi.Message) error) *Mirror {
	return &Mirror{send: send}
}

// Mirror wire details.
const (
	mirrorIndicatorBase = 0  // CC number base for indicator values
	mirrorAnimationBase = 16 // CC number base for animation ids
	mirrorChannel       = 0
)

// padLED maps the 4x4 encoder grid onto programmer-mode LED indices
// (bottom-left 11, top-right 99 layout; encoder 0 is top-left).
func padLED(idx int) uint8 {
	row := idx / 4
	col := idx % 4
	return uint8((8-row)*10 + col + 11)
}

func (r *Mirror) SetIndicator(idx int, value uint8, hasDetent bool, mode uint8, detentColor uint8) {
	_ = r.send(midi.ControlChange(mirrorChannel, uint8(mirrorIndicatorBase+idx), value&0x7F))
}

// SetRGB sets a pad color via SysEx: F0 00 20 29 02 0D 03 03 <led> <r> <g> <b> F7.
func (r *Mirror) SetRGB(idx int, color uint8) {
	c := ColorRGB(color)
	sysexContent := []byte{
		0x00, 0x20, 0x29, 0x02, 0x0D, 0x03,
		0x03, // RGB mode
		padLED(idx),
		c.R & 0x7F,
		c.G & 0x7F,
		c.B & 0x7F,
	}
	_ = r.send(midi.SysEx(sysexContent))
}

// RunAnimation forwards the animation id; waveform generation happens on the
// receiving side.
func (r *Mirror) RunAnimation(idx, bank int, animation, baseColor uint8) {
	_ = r.send(midi.ControlChange(mirrorChannel, uint8(mirrorAnimationBase+idx), animation&0x7F))
}
