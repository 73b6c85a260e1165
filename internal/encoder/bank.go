package encoder

import (
	"quadbank/internal/config"
)

// mapsMatch compares the mapping parameters shared between shifted and
// unshifted states. Relative mappings never match: transferred absolute
// values mean nothing to a relative target.
func (e *Engine) mapsMatch(this, that int) bool {
	a := e.cfg.Entry(this)
	b := e.cfg.Entry(that)
	if a.Number != b.Number {
		return false
	}
	if a.Type != b.Type {
		return false
	}
	if a.Type == config.SendRelEnc {
		return false
	}
	return true
}

// transferValues copies accumulator and indicator values from the given bank
// into every other bank whose entries carry the same mapping, so banks that
// intentionally address the same external control stay synchronized while
// inactive. A bank never transfers to itself.
func (e *Engine) transferValues(fromBank int) {
	for phys := 0; phys < PhysicalEncoders; phys++ {
		this := fromBank*PhysicalEncoders + phys

		for thatBank := 0; thatBank < NumBanks; thatBank++ {
			if thatBank == fromBank {
				continue
			}
			for thatPhys := 0; thatPhys < PhysicalEncoders; thatPhys++ {
				that := thatBank*PhysicalEncoders + thatPhys
				if !e.mapsMatch(this, that) {
					continue
				}
				if e.cfg.Entry(this).Channel != e.cfg.Entry(that).Channel {
					continue
				}
				e.raw[that] = e.raw[this]
				e.indicator[thatBank][thatPhys] = e.indicator[fromBank][phys]
			}
		}
	}
}

// ChangeBank switches the active bank: values transfer to matching mappings
// in the other banks, the indicator buffers of both the outgoing and the
// incoming bank are rebuilt from the accumulators, and every display shadow
// is invalidated so the next sweep redraws the whole surface. Out-of-range
// banks are ignored.
func (e *Engine) ChangeBank(newBank int) {
	if newBank < 0 || newBank >= NumBanks {
		return
	}

	e.transferValues(e.bank)

	for i := 0; i < PhysicalEncoders; i++ {
		oldVirtual := VirtualID(e.bank, i, false)
		newVirtual := VirtualID(newBank, i, false)

		e.indicator[e.bank][i] = ScaleValue(e.raw[oldVirtual])
		e.indicator[newBank][i] = ScaleValue(e.raw[newVirtual])

		e.shadows[i].invalidate()
	}

	e.bank = newBank
}

// CurrentBank returns the active bank index.
func (e *Engine) CurrentBank() int {
	return e.bank
}

// RefreshDisplay forces a full redraw without changing the bank selection.
func (e *Engine) RefreshDisplay() {
	e.ChangeBank(e.bank)
}
