package encoder

import (
	"quadbank/internal/config"
)

// Message is one decoded inbound MIDI message. Type reuses the mapping type
// constants of the config package; On carries the note state and is ignored
// for CC messages.
type Message struct {
	Channel uint8
	Type    uint8
	Number  uint8
	Value   uint8
	On      bool
}

// HandleFeedback routes one inbound message to its state buffer. The channel
// fixes the role; the number addresses a banked encoder id except on the
// system channel. Unaddressable indices and mismatched types are discarded;
// this path never blocks and never fails.
func (e *Engine) HandleFeedback(m Message) {
	if m.Channel == SystemChannel {
		e.handleShiftOverride(m)
		return
	}

	if m.Channel == RotaryChannel && m.Type == config.SendCC && m.Number == HighResPrefixCC {
		e.pendingLSB = m.Value & 0x7F
		return
	}

	idx := int(m.Number)
	if idx >= BankedEncoders {
		return
	}

	switch m.Channel {
	case RotaryChannel:
		if !e.typeMatchesMapping(m.Type, e.cfg.Entry(idx).Type) {
			return
		}
		e.updateIndicator(idx, m.Value)
	case SwitchRGBChannel:
		e.updateSwitchRGB(idx, m.Value)
	case SwitchToggleChannel:
		e.updateSwitchToggle(idx, m.Value)
	case PhenotypeChannel:
		e.updatePhenotype(idx, m.Value)
	case SwitchAnimationChannel:
		e.switchAnim[BankOf(idx)][PhysOf(idx)] = m.Value
	case EncoderAnimationChannel:
		e.encoderAnim[BankOf(idx)][PhysOf(idx)] = m.Value
	case ShiftToggleChannel:
		e.updateShiftToggle(idx, m.Value)
	}
}

// typeMatchesMapping filters indicator feedback by mapping type: CC input
// drives CC and relative mappings, note input drives note mappings.
func (e *Engine) typeMatchesMapping(msgType, mappingType uint8) bool {
	if msgType == config.SendCC {
		return mappingType == config.SendCC || mappingType == config.SendRelEnc
	}
	return mappingType == config.SendNote
}

// handleShiftOverride processes system-channel notes in the shift-page
// range. The override bit latches: once set, local switch edges stop
// touching the state bit.
func (e *Engine) handleShiftOverride(m Message) {
	if m.Type != config.SendNote && m.Type != config.SendNoteOff {
		return
	}
	if m.Number < shiftOffset || m.Number > shiftOffset+2*PhysicalEncoders {
		return
	}

	n := int(m.Number) - shiftOffset
	page := n / PhysicalEncoders
	if page > 1 {
		return
	}
	bit := uint16(1) << uint(n%PhysicalEncoders)

	e.shiftOverride[page] |= bit
	if m.Value != 0 {
		e.shiftState[page] |= bit
	} else {
		e.shiftState[page] &^= bit
	}
}

// updateIndicator writes both the raw accumulator and the 7-bit indicator
// buffer. A pending high-resolution LSB is consumed to form a 14-bit value
// and reset either way. The overwrite is unconditional unless the addressed
// encoder is in the active bank and currently being turned; relative
// mappings always accept it.
func (e *Engine) updateIndicator(idx int, value uint8) {
	bank := BankOf(idx)
	phys := PhysOf(idx)

	raw := int(value)<<7 | int(e.pendingLSB)
	e.pendingLSB = 0

	if bank == e.bank && e.encoderActive(phys) && !e.cfg.Entry(idx).IsRelative() {
		return
	}

	e.raw[idx] = raw
	e.indicator[bank][phys] = value
}

// updateSwitchRGB applies the color override protocol: zero clears the
// override and restores the inactive color, 1-125 sets an explicit override
// color, and 126-127 restore the active color with the override kept on
// record. 126 itself is never stored as a color; white is reserved.
func (e *Engine) updateSwitchRGB(idx int, value uint8) {
	bank := BankOf(idx)
	phys := PhysOf(idx)
	bit := uint16(1) << uint(phys)

	switch {
	case value == 0:
		e.colorOverride[bank] &^= bit
		e.switchColor[bank][phys] = e.cfg.Entry(idx).InactiveColor
	case value < WhiteColor:
		e.colorOverride[bank] |= bit
		e.switchColor[bank][phys] = value
	default:
		e.colorOverride[bank] |= bit
		e.switchColor[bank][phys] = e.cfg.Entry(idx).ActiveColor
	}
}

// updateSwitchToggle sets the stored MIDI toggle state, independent of the
// RGB override.
func (e *Engine) updateSwitchToggle(idx int, value uint8) {
	if value != 0 {
		e.switchMIDI[BankOf(idx)][PhysOf(idx)] = 127
	} else {
		e.switchMIDI[BankOf(idx)][PhysOf(idx)] = 0
	}
}

// updatePhenotype reassigns the behavioral role of a control and forces its
// display position to redraw on the next scheduler pass.
func (e *Engine) updatePhenotype(idx int, value uint8) {
	e.cfg.Entry(idx).Phenotype = value % config.NumPhenotypes
	if BankOf(idx) == e.bank {
		e.shadows[PhysOf(idx)].invalidate()
	}
}

// updateShiftToggle flips the decoupled shift-toggle bit for a shift-capable
// switch and refreshes the indicator from whichever virtual slot is now
// selected.
func (e *Engine) updateShiftToggle(idx int, value uint8) {
	bank := BankOf(idx)
	phys := PhysOf(idx)
	bit := uint16(1) << uint(phys)

	shifted := value != 0
	if shifted {
		e.shiftToggle[bank] |= bit
	} else {
		e.shiftToggle[bank] &^= bit
	}

	e.indicator[bank][phys] = ScaleValue(e.raw[VirtualID(bank, phys, shifted)])
}
