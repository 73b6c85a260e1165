// Package render implements the engine's display primitives. The hardware
// indicator/LED drivers live outside this codebase; what ships here is a
// mirror that reflects display state onto an attached grid controller over
// MIDI, plus the shared color-index palette.
package render

// RGB is a 0-127 per channel color triple.
type RGB struct {
	R, G, B uint8
}

// ColorRGB expands a 7-bit color index into RGB. Index 0 is off, 126 is the
// reserved full white, 127 maps to the top of the hue wheel; 1-125 walk the
// wheel from blue through red.
func ColorRGB(index uint8) RGB {
	switch {
	case index == 0:
		return RGB{}
	case index == 126:
		return RGB{127, 127, 127}
	case index == 127:
		index = 125
	}

	// Six 21-step segments around the wheel, starting at blue.
	pos := int(index-1) * 6 / 125 // segment 0-5
	step := uint8((int(index-1)*6*127/125 - pos*127))

	switch pos {
	case 0: // blue -> magenta
		return RGB{step, 0, 127}
	case 1: // magenta -> red
		return RGB{127, 0, 127 - step}
	case 2: // red -> yellow
		return RGB{127, step, 0}
	case 3: // yellow -> green
		return RGB{127 - step, 127, 0}
	case 4: // green -> cyan
		return RGB{0, 127, step}
	default: // cyan -> blue
		return RGB{0, 127 - step, 127}
	}
}

// Null discards every render call, for running headless.
type Null struct{}

func (Null) SetIndicator(idx int, value uint8, hasDetent bool, mode uint8, detentColor uint8) {}
func (Null) SetRGB(idx int, color uint8)                                                      {}
func (Null) RunAnimation(idx, bank int, animation, baseColor uint8)                           {}
