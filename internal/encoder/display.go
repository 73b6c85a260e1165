package encoder

import (
	"quadbank/internal/config"
)

// shadowInvalid forces a redraw: it is outside the 7-bit range every live
// buffer value stays within.
const shadowInvalid = 0xFF

// shadow holds the previously rendered state of one physical position. The
// differential scheduler compares the live buffers against it and renders
// only what changed.
type shadow struct {
	phenotype   uint8
	indicator   uint8
	color       uint8
	switchAnim  uint8
	encoderAnim uint8
}

// invalidate marks the position for a full redraw. The animation shadows are
// left alone: they track the run/stop edge of an animation, not a rendered
// value.
func (s *shadow) invalidate() {
	s.phenotype = shadowInvalid
	s.indicator = shadowInvalid
	s.color = shadowInvalid
}

// Switch-RGB animations occupy 1-48 plus 127; indicator animations 49-96
// plus 127. 127 strobes both elements, so it belongs to either category.

func animationIsSwitchRGB(v uint8) bool {
	if v == 0 {
		return false
	}
	return v < 49 || v == 127
}

func animationIsEncoderIndicator(v uint8) bool {
	if v < 49 {
		return false
	}
	return v < 97 || v == 127
}

// animationConflict reports whether both animation buffers of a position are
// active, valid, and targeting the same display element. Only then is one
// suppressed.
func (e *Engine) animationConflict(bank, phys int) bool {
	this := e.switchAnim[bank][phys]
	that := e.encoderAnim[bank][phys]

	if this == 0 || that == 0 {
		return false
	}
	if this > 127 || that > 127 {
		return false
	}
	if animationIsSwitchRGB(this) {
		return animationIsSwitchRGB(that)
	}
	if animationIsEncoderIndicator(this) {
		return animationIsEncoderIndicator(that)
	}
	return false
}

// Advance runs one step of the display scheduler: a single physical position
// is diffed against its shadow and rendered. Sixteen ticks make one full
// sweep of the surface.
func (e *Engine) Advance() {
	idx := e.cursor
	banked := e.bank*PhysicalEncoders + idx
	ent := e.cfg.Entry(banked)
	sh := &e.shadows[idx]

	if ent.Phenotype != sh.phenotype {
		switch ent.Phenotype {
		case config.PhenotypeDisabled:
			e.disp.SetIndicator(idx, 0, false, ent.DisplayMode, 0)
			e.disp.SetRGB(idx, 0)
			sh.indicator = 0
			sh.color = 0
		case config.PhenotypeRotary:
			e.disp.SetRGB(idx, WhiteColor)
			sh.color = WhiteColor
			sh.indicator = shadowInvalid
		case config.PhenotypeSwitch:
			e.disp.SetIndicator(idx, 0, false, ent.DisplayMode, 0)
			sh.indicator = 0
			sh.color = shadowInvalid
		}
		sh.phenotype = ent.Phenotype
	}

	switch ent.Phenotype {
	case config.PhenotypeRotary:
		if v := e.indicator[e.bank][idx]; v != sh.indicator {
			e.disp.SetIndicator(idx, v, ent.Detented(), ent.DisplayMode, ent.DetentColor)
			sh.indicator = v
		}
	case config.PhenotypeSwitch:
		if c := e.switchColor[e.bank][idx]; c != sh.color {
			e.disp.SetRGB(idx, c)
			sh.color = c
		}
	}

	// The encoder animation buffer takes priority when the two buffers
	// conflict, though either buffer can carry either animation category.
	if v := e.encoderAnim[e.bank][idx]; v != 0 {
		e.disp.RunAnimation(idx, e.bank, v, e.switchColor[e.bank][idx])
		sh.encoderAnim = v
	} else if sh.encoderAnim != 0 {
		e.restoreAfterAnimation(idx, banked, sh.encoderAnim)
		sh.encoderAnim = 0
	}

	if !e.animationConflict(e.bank, idx) {
		if v := e.switchAnim[e.bank][idx]; v != 0 {
			e.disp.RunAnimation(idx, e.bank, v, e.switchColor[e.bank][idx])
			sh.switchAnim = v
		} else if sh.switchAnim != 0 {
			e.restoreAfterAnimation(idx, banked, sh.switchAnim)
			sh.switchAnim = 0
		}
	}

	e.cursor++
	if e.cursor >= PhysicalEncoders {
		e.cursor = 0
	}
}

// restoreAfterAnimation puts the element an ended animation was driving back
// to its buffered state. Runs exactly once per non-zero to zero transition.
func (e *Engine) restoreAfterAnimation(idx, banked int, last uint8) {
	ent := e.cfg.Entry(banked)
	if animationIsSwitchRGB(last) {
		e.disp.SetRGB(idx, e.switchColor[e.bank][idx])
	} else if animationIsEncoderIndicator(last) {
		e.disp.SetIndicator(idx, e.indicator[e.bank][idx], ent.Detented(), ent.DisplayMode, ent.DetentColor)
	}
}
