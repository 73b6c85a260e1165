// Package encoder is the control core of the surface: it turns raw rotary and
// switch events into outbound MIDI, decodes inbound MIDI feedback into
// per-encoder display state, and manages four banks of encoders that share
// the same sixteen physical controls.
//
// Display updates are the expensive operation, so the engine keeps shadow
// copies of the previous display state and only one encoder's worth of
// differences is rendered per tick.
package encoder

// Layout of the identity space.
const (
	// PhysicalEncoders is the number of hardware encoders.
	PhysicalEncoders = 16

	// NumBanks of mappings share the physical encoders.
	NumBanks = 4

	// BankedEncoders is bank x physical: the size of the configuration table.
	BankedEncoders = NumBanks * PhysicalEncoders

	// VirtualEncoders doubles the banked space with a shifted variant.
	VirtualEncoders = 2 * BankedEncoders

	bankedMask = BankedEncoders - 1
)

// Accumulator domain.
const (
	// MaxRawValue is the 14-bit accumulator ceiling.
	MaxRawValue = 0x3FFF

	rawMidpoint  = (MaxRawValue + 1) / 2
	detentWindow = 1 << 7

	// detentPreset is the startup accumulator value for detented encoders.
	detentPreset = 6300
)

// ScaleValue reduces a clamped accumulator to its 7-bit display/MIDI value.
func ScaleValue(v int) uint8 {
	if v < 0 {
		return 0
	}
	return uint8(v >> 7)
}

// ClampRawValue bounds an accumulator candidate to the 14-bit domain.
func ClampRawValue(v int) int {
	if v < 0 {
		return 0
	}
	if v > MaxRawValue {
		return MaxRawValue
	}
	return v
}

// InDetent reports whether the accumulator sits in the center detent window.
func InDetent(v int) bool {
	return v > rawMidpoint-detentWindow && v < rawMidpoint+detentWindow
}

// InDeadzone reports whether the accumulator is pinned at either clamp
// boundary.
func InDeadzone(v int) bool {
	return v <= 0 || v >= MaxRawValue
}
