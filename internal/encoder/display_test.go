package encoder

import (
	"testing"

	"github.com/stretchr/testify/require"

	"quadbank/internal/config"
)

func sweep(e *Engine) {
	for i := 0; i < PhysicalEncoders; i++ {
		e.Advance()
	}
}

func TestAnimationCategories(t *testing.T) {
	for _, tt := range []struct {
		value     uint8
		rgb, ring bool
	}{
		{0, false, false},
		{1, true, false},
		{30, true, false},
		{48, true, false},
		{49, false, true},
		{60, false, true},
		{96, false, true},
		{97, false, false},
		{126, false, false},
		{127, true, true},
	} {
		require.Equal(t, tt.rgb, animationIsSwitchRGB(tt.value), "switch RGB %d", tt.value)
		require.Equal(t, tt.ring, animationIsEncoderIndicator(tt.value), "indicator %d", tt.value)
	}
}

func TestAnimationConflict(t *testing.T) {
	e, _, _, _, _ := newTestEngine(t)

	for _, tt := range []struct {
		switchAnim, encoderAnim uint8
		conflict                bool
	}{
		{30, 40, true},
		{60, 70, true},
		{30, 60, false},
		{60, 30, false},
		{0, 60, false},
		{30, 0, false},
		{127, 30, true},
		{127, 60, true},
		{30, 127, true},
		{130, 30, false},
		{30, 130, false},
	} {
		e.switchAnim[0][0] = tt.switchAnim
		e.encoderAnim[0][0] = tt.encoderAnim
		require.Equal(t, tt.conflict, e.animationConflict(0, 0), "switch %d encoder %d", tt.switchAnim, tt.encoderAnim)
	}
}

func TestAdvanceRendersEachChangeOnce(t *testing.T) {
	e, _, _, disp, _ := newTestEngine(t)

	sweep(e)
	require.NotEmpty(t, disp.calls, "the first sweep paints everything")

	settled := len(disp.calls)
	sweep(e)
	require.Len(t, disp.calls, settled, "nothing changed, nothing renders")

	e.indicator[0][0] = 42
	sweep(e)
	require.Len(t, disp.calls, settled+1)
	last := disp.calls[len(disp.calls)-1]
	require.Equal(t, renderCall{kind: "indicator", idx: 0, value: 42, mode: config.DisplayBlendedBar, detentColor: 63}, last)
}

func TestAdvanceRotaryFirstSweep(t *testing.T) {
	e, _, _, disp, _ := newTestEngine(t)

	e.Advance()

	require.Len(t, disp.calls, 2)
	require.Equal(t, renderCall{kind: "rgb", idx: 0, value: WhiteColor}, disp.calls[0])
	require.Equal(t, "indicator", disp.calls[1].kind)
}

func TestAdvanceSwitchPhenotype(t *testing.T) {
	e, _, _, disp, store := newTestEngine(t)
	ent := store.Entry(0)
	ent.Phenotype = config.PhenotypeSwitch

	e.Advance()

	require.Len(t, disp.calls, 2)
	require.Equal(t, "indicator", disp.calls[0].kind, "the ring goes dark")
	require.Equal(t, uint8(0), disp.calls[0].value)
	require.Equal(t, renderCall{kind: "rgb", idx: 0, value: ent.InactiveColor}, disp.calls[1])
}

func TestAdvanceDisabledPhenotype(t *testing.T) {
	e, _, _, disp, store := newTestEngine(t)
	store.Entry(0).Phenotype = config.PhenotypeDisabled

	e.Advance()

	require.Len(t, disp.calls, 2)
	require.Equal(t, uint8(0), disp.calls[0].value)
	require.Equal(t, renderCall{kind: "rgb", idx: 0, value: 0}, disp.calls[1])

	e.cursor = 0
	e.Advance()
	require.Len(t, disp.calls, 2, "a disabled position stays quiet")
}

func TestAnimationRunsAndRestoresOnce(t *testing.T) {
	e, _, _, disp, _ := newTestEngine(t)
	sweep(e)

	e.encoderAnim[0][0] = 60
	e.Advance()
	last := disp.calls[len(disp.calls)-1]
	require.Equal(t, renderCall{kind: "anim", idx: 0, bank: 0, value: 60}, last)

	e.cursor = 0
	settled := len(disp.calls)
	e.encoderAnim[0][0] = 0
	e.Advance()
	require.Len(t, disp.calls, settled+1)
	require.Equal(t, "indicator", disp.calls[settled].kind, "an ended ring animation restores the ring")

	e.cursor = 0
	e.Advance()
	require.Len(t, disp.calls, settled+1, "the restore runs exactly once")
}

func TestAnimationRestoreTargetsRGB(t *testing.T) {
	e, _, _, disp, store := newTestEngine(t)
	store.Entry(0).Phenotype = config.PhenotypeSwitch
	sweep(e)

	e.switchAnim[0][0] = 30
	e.Advance()

	e.cursor = 0
	settled := len(disp.calls)
	e.switchAnim[0][0] = 0
	e.Advance()
	require.Len(t, disp.calls, settled+1)
	require.Equal(t, renderCall{kind: "rgb", idx: 0, value: store.Entry(0).InactiveColor}, disp.calls[settled])
}

func TestEncoderAnimationWinsConflict(t *testing.T) {
	e, _, _, disp, _ := newTestEngine(t)
	sweep(e)

	e.switchAnim[0][0] = 30
	e.encoderAnim[0][0] = 40
	e.Advance()

	var anims []renderCall
	for _, c := range disp.calls {
		if c.kind == "anim" {
			anims = append(anims, c)
		}
	}
	require.Len(t, anims, 1)
	require.Equal(t, uint8(40), anims[0].value)
}

func TestNonConflictingAnimationsBothRun(t *testing.T) {
	e, _, _, disp, _ := newTestEngine(t)
	sweep(e)

	e.switchAnim[0][0] = 30
	e.encoderAnim[0][0] = 60
	e.Advance()

	var anims []uint8
	for _, c := range disp.calls {
		if c.kind == "anim" {
			anims = append(anims, c.value)
		}
	}
	require.Equal(t, []uint8{60, 30}, anims, "the ring animation renders first")
}
