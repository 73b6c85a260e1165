// Package config holds the per-encoder configuration table and the packed
// byte codec used to persist it. Every entry field is semantically 7-bit;
// values of Unchanged (0x80) and above mean "leave this field alone" when
// merging a partial write, so entries can be patched straight from 7-bit
// MIDI data without a separate field mask.
package config

// Phenotype of a control: what the physical encoder behaves as.
const (
	PhenotypeRotary uint8 = iota
	PhenotypeSwitch
	PhenotypeDisabled
	NumPhenotypes
)

// Switch action types.
const (
	ActionCCToggle uint8 = iota
	ActionFineAdjust
)

// MIDI mapping types, shared between outbound mappings and inbound feedback.
const (
	SendNote uint8 = iota
	SendCC
	SendRelEnc
	SendNoteOff
)

// Rotary movement modes.
const (
	MovementDirect uint8 = iota
	MovementEmulation
)

// Indicator display modes.
const (
	DisplayDot uint8 = iota
	DisplayBar
	DisplayBlendedBar
	DisplayBlendedDot
)

// Unchanged is the partial-write sentinel: any field at or above this value
// is skipped when merging into the table and the persisted bytes.
const Unchanged uint8 = 0x80

// EntrySize is the packed size of one entry in the settings store.
const EntrySize = 8

// Entry is the configuration for one banked encoder.
type Entry struct {
	Phenotype     uint8 `json:"phenotype"`
	HasDetent     uint8 `json:"has_detent"`
	DetentColor   uint8 `json:"detent_color"`
	ActiveColor   uint8 `json:"active_color"`
	InactiveColor uint8 `json:"inactive_color"`
	Movement      uint8 `json:"movement"`
	DisplayMode   uint8 `json:"display_mode"`

	SwitchAction  uint8 `json:"switch_action"`
	SwitchType    uint8 `json:"switch_type"`
	SwitchChannel uint8 `json:"switch_channel"`
	SwitchNumber  uint8 `json:"switch_number"`

	Type         uint8 `json:"type"`
	Channel      uint8 `json:"channel"`
	Number       uint8 `json:"number"`
	ShiftChannel uint8 `json:"shift_channel"`
	HighRes      uint8 `json:"high_res"`
}

// Detented reports whether the encoder has a center detent.
func (e *Entry) Detented() bool { return e.HasDetent != 0 }

// IsRelative reports whether the encoder emits relative movement. Relative
// mappings never take part in cross-bank value transfer.
func (e *Entry) IsRelative() bool { return e.Type == SendRelEnc }

// decodeEntry expands the 8-byte packed layout. Phenotype and SwitchType are
// not persisted: switches always report over CC and the phenotype defaults to
// rotary until reassigned over feedback.
func decodeEntry(b []byte) Entry {
	return Entry{
		Phenotype:     PhenotypeRotary,
		SwitchAction:  b[0] & 0x0F,
		SwitchType:    SendCC,
		SwitchChannel: (b[0] >> 4) & 0x0F,
		SwitchNumber:  b[1] & 0x7F,
		ActiveColor:   b[2],
		InactiveColor: b[3],
		DetentColor:   b[4] & 0x7F,
		HasDetent:     (b[4] >> 7) & 0x01,
		DisplayMode:   b[5] & 0x03,
		Movement:      (b[5] >> 2) & 0x03,
		ShiftChannel:  (b[5] >> 4) & 0x0F,
		Type:          b[6] & 0x03,
		Channel:       (b[6] >> 4) & 0x0F,
		Number:        b[7] & 0x7F,
		HighRes:       (b[7] >> 7) & 0x01,
	}
}

// encode packs the entry into its 8-byte persisted form. All fields must be
// real values, not Unchanged sentinels.
func (e *Entry) encode() [EntrySize]byte {
	var b [EntrySize]byte
	b[0] = (e.SwitchAction & 0x0F) | (e.SwitchChannel&0x0F)<<4
	b[1] = e.SwitchNumber & 0x7F
	b[2] = e.ActiveColor
	b[3] = e.InactiveColor
	b[4] = (e.DetentColor & 0x7F) | (e.HasDetent&0x01)<<7
	b[5] = (e.DisplayMode & 0x03) | (e.Movement&0x03)<<2 | (e.ShiftChannel&0x0F)<<4
	b[6] = (e.Type & 0x03) | (e.Channel&0x0F)<<4
	b[7] = (e.Number & 0x7F) | (e.HighRes&0x01)<<7
	return b
}

// mergeInto applies every non-sentinel field of the entry onto an existing
// 8-byte packed block, preserving the packed bits of skipped fields.
func (e *Entry) mergeInto(b []byte) {
	if e.SwitchAction < Unchanged {
		b[0] = b[0]&^0x0F | e.SwitchAction&0x0F
	}
	if e.SwitchChannel < Unchanged {
		b[0] = b[0]&^0xF0 | (e.SwitchChannel&0x0F)<<4
	}
	if e.SwitchNumber < Unchanged {
		b[1] = e.SwitchNumber & 0x7F
	}
	if e.ActiveColor < Unchanged {
		b[2] = e.ActiveColor
	}
	if e.InactiveColor < Unchanged {
		b[3] = e.InactiveColor
	}
	if e.HasDetent < Unchanged {
		b[4] = b[4]&^0x80 | (e.HasDetent&0x01)<<7
	}
	if e.DetentColor < Unchanged {
		b[4] = b[4]&^0x7F | e.DetentColor&0x7F
	}
	if e.DisplayMode < Unchanged {
		b[5] = b[5]&^0x03 | e.DisplayMode&0x03
	}
	if e.Movement < Unchanged {
		b[5] = b[5]&^0x0C | (e.Movement&0x03)<<2
	}
	if e.ShiftChannel < Unchanged {
		b[5] = b[5]&^0xF0 | (e.ShiftChannel&0x0F)<<4
	}
	if e.Type < Unchanged {
		b[6] = b[6]&^0x03 | e.Type&0x03
	}
	if e.Channel < Unchanged {
		b[6] = b[6]&^0xF0 | (e.Channel&0x0F)<<4
	}
	if e.Number < Unchanged {
		b[7] = b[7]&^0x7F | e.Number&0x7F
	}
	if e.HighRes < Unchanged {
		b[7] = b[7]&^0x80 | (e.HighRes&0x01)<<7
	}
}

// mergeEntry applies every non-sentinel field of src onto dst, keeping the
// in-memory table in step with the persisted form.
func mergeEntry(dst *Entry, src Entry) {
	apply := func(d *uint8, s uint8) {
		if s < Unchanged {
			*d = s
		}
	}
	apply(&dst.SwitchAction, src.SwitchAction)
	apply(&dst.SwitchChannel, src.SwitchChannel)
	apply(&dst.SwitchNumber, src.SwitchNumber)
	apply(&dst.ActiveColor, src.ActiveColor)
	apply(&dst.InactiveColor, src.InactiveColor)
	apply(&dst.HasDetent, src.HasDetent)
	apply(&dst.DetentColor, src.DetentColor)
	apply(&dst.DisplayMode, src.DisplayMode)
	apply(&dst.Movement, src.Movement)
	apply(&dst.ShiftChannel, src.ShiftChannel)
	apply(&dst.Type, src.Type)
	apply(&dst.Channel, src.Channel)
	apply(&dst.Number, src.Number)
	apply(&dst.HighRes, src.HighRes)
}
