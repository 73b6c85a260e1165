package encoder

import (
	"testing"

	"github.com/stretchr/testify/require"

	"quadbank/internal/config"
)

func TestFeedbackIndicatorWrite(t *testing.T) {
	e, _, _, _, _ := newTestEngine(t)

	e.HandleFeedback(Message{Channel: RotaryChannel, Type: config.SendCC, Number: 5, Value: 40})

	require.Equal(t, 40<<7, e.raw[5])
	require.Equal(t, uint8(40), e.indicator[0][5])
}

func TestFeedbackHighResPrefix(t *testing.T) {
	e, _, _, _, _ := newTestEngine(t)

	e.HandleFeedback(Message{Channel: RotaryChannel, Type: config.SendCC, Number: HighResPrefixCC, Value: 0x34})
	require.Equal(t, uint8(0x34), e.pendingLSB)

	e.HandleFeedback(Message{Channel: RotaryChannel, Type: config.SendCC, Number: 0, Value: 0x24})
	require.Equal(t, 0x1234, e.raw[0])
	require.Equal(t, uint8(0), e.pendingLSB, "the prefix is consumed")

	e.HandleFeedback(Message{Channel: RotaryChannel, Type: config.SendCC, Number: 0, Value: 0x24})
	require.Equal(t, 0x1200, e.raw[0], "a prefix covers exactly one value message")
}

func TestFeedbackYieldsToActiveEncoder(t *testing.T) {
	e, in, _, _, _ := newTestEngine(t)

	in.delta[0] = 4
	e.ProcessInput()
	before := e.raw[0]

	e.HandleFeedback(Message{Channel: RotaryChannel, Type: config.SendCC, Number: 0, Value: 100})
	require.Equal(t, before, e.raw[0], "a moving encoder of the active bank wins")

	e.HandleFeedback(Message{Channel: RotaryChannel, Type: config.SendCC, Number: 17, Value: 100})
	require.Equal(t, 100<<7, e.raw[17], "inactive banks always accept")

	in.reset()
	for i := 0; i < activeWindow; i++ {
		e.ProcessInput()
	}
	e.HandleFeedback(Message{Channel: RotaryChannel, Type: config.SendCC, Number: 0, Value: 100})
	require.Equal(t, 100<<7, e.raw[0], "the window expires")
}

func TestFeedbackRelativeMappingAlwaysAccepts(t *testing.T) {
	e, in, _, _, store := newTestEngine(t)
	store.Entry(0).Type = config.SendRelEnc

	in.delta[0] = 4
	e.ProcessInput()

	e.HandleFeedback(Message{Channel: RotaryChannel, Type: config.SendCC, Number: 0, Value: 100})
	require.Equal(t, 100<<7, e.raw[0])
}

func TestFeedbackPrefixConsumedByGatedWrite(t *testing.T) {
	e, in, _, _, _ := newTestEngine(t)

	in.delta[0] = 4
	e.ProcessInput()

	e.HandleFeedback(Message{Channel: RotaryChannel, Type: config.SendCC, Number: HighResPrefixCC, Value: 0x7F})
	e.HandleFeedback(Message{Channel: RotaryChannel, Type: config.SendCC, Number: 0, Value: 100})

	require.Equal(t, uint8(0), e.pendingLSB, "a discarded write still consumes the prefix")
}

func TestFeedbackTypeMismatchDropped(t *testing.T) {
	e, _, _, _, store := newTestEngine(t)

	e.HandleFeedback(Message{Channel: RotaryChannel, Type: config.SendNote, Number: 0, Value: 100, On: true})
	require.Equal(t, 0, e.raw[0], "a note cannot drive a CC mapping")

	store.Entry(0).Type = config.SendNote
	e.HandleFeedback(Message{Channel: RotaryChannel, Type: config.SendNote, Number: 0, Value: 100, On: true})
	require.Equal(t, 100<<7, e.raw[0])
}

func TestFeedbackUnaddressableIndexDropped(t *testing.T) {
	e, _, _, _, _ := newTestEngine(t)

	e.HandleFeedback(Message{Channel: RotaryChannel, Type: config.SendCC, Number: 64, Value: 100})
	e.HandleFeedback(Message{Channel: SwitchRGBChannel, Type: config.SendCC, Number: 127, Value: 50})

	require.Equal(t, 0, e.raw[0])
	for bank := 0; bank < NumBanks; bank++ {
		require.Zero(t, e.colorOverride[bank])
	}
}

func TestFeedbackSwitchRGB(t *testing.T) {
	e, _, _, _, store := newTestEngine(t)
	ent := store.Entry(3)

	e.HandleFeedback(Message{Channel: SwitchRGBChannel, Type: config.SendCC, Number: 3, Value: 50})
	require.NotZero(t, e.colorOverride[0]&(1<<3))
	require.Equal(t, uint8(50), e.switchColor[0][3])

	e.HandleFeedback(Message{Channel: SwitchRGBChannel, Type: config.SendCC, Number: 3, Value: 126})
	require.NotZero(t, e.colorOverride[0]&(1<<3))
	require.Equal(t, ent.ActiveColor, e.switchColor[0][3], "white is reserved, the active color stands in")

	e.HandleFeedback(Message{Channel: SwitchRGBChannel, Type: config.SendCC, Number: 3, Value: 127})
	require.Equal(t, ent.ActiveColor, e.switchColor[0][3])

	e.HandleFeedback(Message{Channel: SwitchRGBChannel, Type: config.SendCC, Number: 3, Value: 0})
	require.Zero(t, e.colorOverride[0]&(1<<3))
	require.Equal(t, ent.InactiveColor, e.switchColor[0][3])
}

func TestFeedbackSwitchToggle(t *testing.T) {
	e, _, _, _, _ := newTestEngine(t)

	e.HandleFeedback(Message{Channel: SwitchToggleChannel, Type: config.SendCC, Number: 7, Value: 5})
	require.Equal(t, uint8(127), e.switchMIDI[0][7], "any non-zero value latches on")

	e.HandleFeedback(Message{Channel: SwitchToggleChannel, Type: config.SendCC, Number: 7, Value: 0})
	require.Equal(t, uint8(0), e.switchMIDI[0][7])
}

func TestFeedbackPhenotype(t *testing.T) {
	e, _, _, _, store := newTestEngine(t)

	e.shadows[2] = shadow{phenotype: config.PhenotypeRotary, indicator: 10, color: 20}
	e.HandleFeedback(Message{Channel: PhenotypeChannel, Type: config.SendCC, Number: 2, Value: 5})

	require.Equal(t, uint8(5%config.NumPhenotypes), store.Entry(2).Phenotype)
	require.Equal(t, uint8(shadowInvalid), e.shadows[2].phenotype, "the position redraws")

	e.shadows[2] = shadow{phenotype: config.PhenotypeRotary, indicator: 10, color: 20}
	e.HandleFeedback(Message{Channel: PhenotypeChannel, Type: config.SendCC, Number: 18, Value: 1})
	require.Equal(t, config.PhenotypeSwitch, store.Entry(18).Phenotype)
	require.Equal(t, config.PhenotypeRotary, e.shadows[2].phenotype, "inactive banks do not touch the display")
}

func TestFeedbackAnimationBuffers(t *testing.T) {
	e, _, _, _, _ := newTestEngine(t)

	e.HandleFeedback(Message{Channel: SwitchAnimationChannel, Type: config.SendCC, Number: 4, Value: 30})
	require.Equal(t, uint8(30), e.switchAnim[0][4])

	e.HandleFeedback(Message{Channel: EncoderAnimationChannel, Type: config.SendCC, Number: 20, Value: 60})
	require.Equal(t, uint8(60), e.encoderAnim[1][4])
}

func TestFeedbackShiftOverride(t *testing.T) {
	e, _, _, _, _ := newTestEngine(t)

	e.HandleFeedback(Message{Channel: SystemChannel, Type: config.SendNote, Number: shiftOffset + 6, Value: 127, On: true})
	require.NotZero(t, e.shiftOverride[0]&(1<<6))
	require.NotZero(t, e.shiftState[0]&(1<<6))

	e.HandleFeedback(Message{Channel: SystemChannel, Type: config.SendNoteOff, Number: shiftOffset + 6, Value: 0})
	require.NotZero(t, e.shiftOverride[0]&(1<<6), "the override latches")
	require.Zero(t, e.shiftState[0]&(1<<6))

	e.HandleFeedback(Message{Channel: SystemChannel, Type: config.SendNote, Number: shiftOffset + 18, Value: 127, On: true})
	require.NotZero(t, e.shiftState[1]&(1<<2))
}

func TestFeedbackShiftOverrideIgnoresOutOfRange(t *testing.T) {
	e, _, _, _, _ := newTestEngine(t)

	e.HandleFeedback(Message{Channel: SystemChannel, Type: config.SendNote, Number: shiftOffset - 1, Value: 127, On: true})
	e.HandleFeedback(Message{Channel: SystemChannel, Type: config.SendNote, Number: shiftOffset + 33, Value: 127, On: true})
	e.HandleFeedback(Message{Channel: SystemChannel, Type: config.SendCC, Number: shiftOffset + 6, Value: 127})

	require.Zero(t, e.shiftOverride[0])
	require.Zero(t, e.shiftOverride[1])
	require.Zero(t, e.shiftState[0])
	require.Zero(t, e.shiftState[1])
}

func TestFeedbackShiftToggleRefreshesIndicator(t *testing.T) {
	e, _, _, _, _ := newTestEngine(t)

	e.raw[VirtualID(0, 2, false)] = 30 << 7
	e.raw[VirtualID(0, 2, true)] = 90 << 7
	e.indicator[0][2] = 30

	e.HandleFeedback(Message{Channel: ShiftToggleChannel, Type: config.SendCC, Number: 2, Value: 127})
	require.NotZero(t, e.shiftToggle[0]&(1<<2))
	require.Equal(t, uint8(90), e.indicator[0][2])

	e.HandleFeedback(Message{Channel: ShiftToggleChannel, Type: config.SendCC, Number: 2, Value: 0})
	require.Zero(t, e.shiftToggle[0]&(1<<2))
	require.Equal(t, uint8(30), e.indicator[0][2])
}
