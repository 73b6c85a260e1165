package hardware

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSimTurnAccumulates(t *testing.T) {
	s := NewSim()
	s.Turn(2, 3)
	s.Turn(2, -1)
	s.Turn(16, 5) // out of range, dropped

	s.Sample()
	require.Equal(t, 2, s.RotaryDelta(2))
	require.Equal(t, 0, s.RotaryDelta(0))

	s.Sample()
	require.Equal(t, 0, s.RotaryDelta(2), "deltas are per sample")
}

func TestSimPressReleaseEdges(t *testing.T) {
	s := NewSim()

	s.Press(4)
	s.Sample()
	require.Equal(t, uint16(1<<4), s.Down())
	require.Equal(t, uint16(1<<4), s.Held())
	require.Zero(t, s.Up())

	s.Sample()
	require.Zero(t, s.Down(), "edges last one sample")
	require.Equal(t, uint16(1<<4), s.Held())

	s.Release(4)
	s.Sample()
	require.Equal(t, uint16(1<<4), s.Up())
	require.Zero(t, s.Held())
}

func TestSimTapResolvesOverTwoSamples(t *testing.T) {
	s := NewSim()
	s.Tap(7)

	s.Sample()
	require.Equal(t, uint16(1<<7), s.Down())
	require.Zero(t, s.Up(), "the release waits for the next sample")
	require.Equal(t, uint16(1<<7), s.Held())

	s.Sample()
	require.Zero(t, s.Down())
	require.Equal(t, uint16(1<<7), s.Up())
	require.Zero(t, s.Held())
}
