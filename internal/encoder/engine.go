package encoder

import (
	"quadbank/internal/config"
)

// Feedback channel/role assignment. Inbound messages on these channels have
// a fixed meaning; the message number addresses a banked encoder id except on
// the system channel, where the shift-page note range lives.
const (
	RotaryChannel uint8 = iota
	SwitchRGBChannel
	SwitchToggleChannel
	SystemChannel
	PhenotypeChannel
	SwitchAnimationChannel
	EncoderAnimationChannel
	ShiftToggleChannel
)

// HighResPrefixCC is the High Resolution Velocity prefix controller: a CC
// carrying the low 7 bits of a 14-bit value ahead of the standard message.
const HighResPrefixCC = 0x58

// WhiteColor is the reserved full-white color index. The RGB feedback
// handler refuses to set it; the display uses it as the rotary reference
// color.
const WhiteColor = 126

// shiftOffset is where the shift-page note range starts on the system
// channel.
const shiftOffset = 64

// activeWindow is how many ticks after its last movement an encoder is still
// considered actively moving, for the feedback overwrite gate.
const activeWindow = 8

// Engine owns every mutable table of the core: accumulators, display
// buffers, switch and shift state, and the active bank selector. It is
// single-owner state; one goroutine calls ProcessInput, HandleFeedback,
// Advance and ChangeBank, and nothing else touches the tables.
type Engine struct {
	cfg  *config.Store
	hw   Input
	out  Sender
	disp Renderer

	// raw is indexed by virtual encoder id: 0-63 unshifted per bank,
	// 64-127 the shifted variants.
	raw [VirtualEncoders]int

	indicator   [NumBanks][PhysicalEncoders]uint8
	switchColor [NumBanks][PhysicalEncoders]uint8
	switchAnim  [NumBanks][PhysicalEncoders]uint8
	encoderAnim [NumBanks][PhysicalEncoders]uint8
	switchMIDI  [NumBanks][PhysicalEncoders]uint8

	// shiftToggle is decoupled from switchMIDI: shift-capable switches
	// track their toggle through this bit field because some mappings are
	// shared between shifted and unshifted contexts.
	shiftToggle   [NumBanks]uint16
	colorOverride [NumBanks]uint16

	shiftState    [2]uint16
	shiftOverride [2]uint16

	bank       int
	tick       uint64
	lastMoved  [PhysicalEncoders]uint64
	pendingLSB uint8

	shadows     [PhysicalEncoders]shadow
	cursor      int
	shiftCursor int
}

// New builds an engine over a loaded configuration store and its
// collaborators. Detented encoders are preset near the accumulator midpoint,
// shifted variants included; switch colors start at each entry's inactive
// color.
func New(cfg *config.Store, hw Input, out Sender, disp Renderer) *Engine {
	e := &Engine{cfg: cfg, hw: hw, out: out, disp: disp}

	for i := 0; i < BankedEncoders; i++ {
		if cfg.Entry(i).Detented() {
			e.raw[i] = detentPreset
			e.raw[i+BankedEncoders] = detentPreset
		}
		e.switchColor[BankOf(i)][PhysOf(i)] = cfg.Entry(i).InactiveColor
		e.indicator[BankOf(i)][PhysOf(i)] = ScaleValue(e.raw[i])
	}

	for i := range e.shadows {
		e.shadows[i].invalidate()
	}
	return e
}

// Tick runs one full cooperative cycle: sample and process the hardware,
// then advance the display scheduler by one encoder.
func (e *Engine) Tick() {
	e.ProcessInput()
	e.Advance()
}

// ProcessInput samples the hardware and translates movement and switch edges
// for all sixteen physical encoders into state changes and outbound MIDI.
func (e *Engine) ProcessInput() {
	e.tick++
	e.hw.Sample()

	down := e.hw.Down()
	up := e.hw.Up()
	held := e.hw.Held()

	for i := 0; i < PhysicalEncoders; i++ {
		bit := uint16(1) << uint(i)
		banked := e.bank*PhysicalEncoders + i
		ent := e.cfg.Entry(banked)
		shifted := e.shiftToggle[e.bank]&bit != 0
		virtual := VirtualID(e.bank, i, shifted)

		delta := e.hw.RotaryDelta(i)
		if ent.Phenotype == config.PhenotypeRotary && delta != 0 {
			var step int
			switch {
			case ent.SwitchAction == config.ActionFineAdjust && held&bit != 0:
				// Fine adjust: one pulse is the smallest possible step.
				step = delta
			case ent.Movement == config.MovementDirect:
				// One pulse is one full CC step on the high 7 bits.
				step = delta << 7
			default:
				// Emulated sensitivity, ~270 degrees for the full range.
				step = delta << 4
			}

			e.raw[virtual] = ClampRawValue(e.raw[virtual] + step)
			e.indicator[e.bank][i] = ScaleValue(e.raw[virtual])
			e.lastMoved[i] = e.tick

			if ent.IsRelative() {
				e.sendRelativeMIDI(ent, delta, shifted)
			} else {
				e.sendEncoderMIDI(ent, e.raw[virtual], shifted)
			}
		}

		if ent.Phenotype == config.PhenotypeSwitch && (down|up)&bit != 0 {
			switch ent.SwitchAction {
			case config.ActionCCToggle:
				if down&bit == 0 {
					break
				}
				if e.switchMIDI[e.bank][i] == 0 {
					e.switchMIDI[e.bank][i] = 127
				} else {
					e.switchMIDI[e.bank][i] = 0
				}
				if !e.colorOverrideActive(e.bank, i) {
					if e.switchMIDI[e.bank][i] != 0 {
						e.switchColor[e.bank][i] = ent.ActiveColor
					} else {
						e.switchColor[e.bank][i] = ent.InactiveColor
					}
				}
				e.sendSwitchMIDI(ent, e.switchMIDI[e.bank][i])
			}
		}
	}
}

// sendEncoderMIDI emits the value of an absolute encoder. High-resolution
// emitters first send the low 7 bits under the prefix controller and flush,
// so the prefix reaches the wire ahead of its companion; the normal CC with
// the high 7 bits always follows, keeping receivers that ignore the prefix
// working.
func (e *Engine) sendEncoderMIDI(ent *config.Entry, value int, shifted bool) {
	channel := ent.Channel
	if shifted {
		channel = ent.ShiftChannel
	}

	switch ent.Type {
	case config.SendCC:
		if ent.HighRes != 0 {
			e.out.SendCC(channel, HighResPrefixCC, uint8(value&0x7F))
			e.out.Flush()
		}
		e.out.SendCC(channel, ent.Number, uint8(value>>7))
	case config.SendNote:
		e.out.SendNote(channel, ent.Number, true, uint8(value>>7))
	}
}

// sendRelativeMIDI emits offset-binary movement for a relative mapping:
// 64 is no movement, one count per pulse either side.
func (e *Engine) sendRelativeMIDI(ent *config.Entry, delta int, shifted bool) {
	channel := ent.Channel
	if shifted {
		channel = ent.ShiftChannel
	}

	v := 64 + delta
	if v < 0 {
		v = 0
	}
	if v > 127 {
		v = 127
	}
	e.out.SendCC(channel, ent.Number, uint8(v))
}

func (e *Engine) sendSwitchMIDI(ent *config.Entry, value uint8) {
	if ent.SwitchType == config.SendNote {
		e.out.SendNote(ent.SwitchChannel, ent.SwitchNumber, value != 0, value)
		return
	}
	e.out.SendCC(ent.SwitchChannel, ent.SwitchNumber, value)
}

// RunShiftPage runs one tick of shift mode for a page. Encoders are inert;
// switch edges emit notes on the system channel, local state tracking is
// gated by the feedback override bits, and the display walks the sixteen
// positions showing full-on or off indicators.
func (e *Engine) RunShiftPage(page int) {
	if page < 0 || page > 1 {
		return
	}

	e.hw.Sample()
	down := e.hw.Down()
	up := e.hw.Up()

	for i := 0; i < PhysicalEncoders; i++ {
		bit := uint16(1) << uint(i)
		note := uint8(shiftOffset + i + page*PhysicalEncoders)

		if down&bit != 0 {
			e.out.SendNote(SystemChannel, note, true, 127)
			if e.shiftOverride[page]&bit == 0 {
				e.shiftState[page] |= bit
			}
		} else if up&bit != 0 {
			e.out.SendNote(SystemChannel, note, false, 0)
			if e.shiftOverride[page]&bit == 0 {
				e.shiftState[page] &^= bit
			}
		}
	}

	idx := e.shiftCursor
	e.disp.SetRGB(idx, 0)
	if e.shiftState[page]&(uint16(1)<<uint(idx)) != 0 {
		e.disp.SetIndicator(idx, 127, false, config.DisplayBar, 0)
	} else {
		e.disp.SetIndicator(idx, 0, false, config.DisplayBar, 0)
	}

	e.shiftCursor++
	if e.shiftCursor >= PhysicalEncoders {
		e.shiftCursor = 0
	}
}

// encoderActive reports whether a physical encoder of the current bank has
// moved within the last few ticks. Inbound indicator feedback yields to an
// encoder the player is actually turning.
func (e *Engine) encoderActive(phys int) bool {
	return e.lastMoved[phys] != 0 && e.tick-e.lastMoved[phys] < activeWindow
}

func (e *Engine) colorOverrideActive(bank, phys int) bool {
	return e.colorOverride[bank]&(uint16(1)<<uint(phys)) != 0
}

// RawValue returns the accumulator of a virtual encoder id.
func (e *Engine) RawValue(virtual int) int {
	return e.raw[virtual&(VirtualEncoders-1)]
}

// IndicatorValue returns the display buffer value for a bank and physical
// index.
func (e *Engine) IndicatorValue(bank, phys int) uint8 {
	return e.indicator[bank][phys]
}

// Snapshot is a copy of the visible state of the active bank, safe to hand
// to another goroutine.
type Snapshot struct {
	Bank      int
	Indicator [PhysicalEncoders]uint8
	Color     [PhysicalEncoders]uint8
	Phenotype [PhysicalEncoders]uint8
	Toggle    [PhysicalEncoders]uint8
}

// Snapshot copies the active bank's display state.
func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		Bank:      e.bank,
		Indicator: e.indicator[e.bank],
		Color:     e.switchColor[e.bank],
		Toggle:    e.switchMIDI[e.bank],
	}
	for i := 0; i < PhysicalEncoders; i++ {
		s.Phenotype[i] = e.cfg.Entry(e.bank*PhysicalEncoders + i).Phenotype
	}
	return s
}
