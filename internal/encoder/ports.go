package encoder

// Collaborator contracts. The engine owns no hardware and no transport; it
// consumes these narrow interfaces and assumes they are correct. None of the
// methods may block: every call happens inside the tick budget.

// Input samples the rotary and switch hardware once per tick.
type Input interface {
	// Sample refreshes the snapshot the other methods read from.
	Sample()

	// RotaryDelta returns the accumulated pulses for a physical encoder
	// since the previous sample. Negative is counter-clockwise.
	RotaryDelta(idx int) int

	// Down, Up and Held are 16-bit masks over the encoder switches:
	// press edges, release edges, and current level.
	Down() uint16
	Up() uint16
	Held() uint16
}

// Sender is the outbound MIDI transport. Sends are fire-and-forget: the core
// favors staying on tick over surfacing transport faults.
type Sender interface {
	SendCC(channel, number, value uint8)
	SendNote(channel, number uint8, on bool, velocity uint8)

	// Flush forces buffered messages onto the wire. Required between a
	// high-resolution prefix and its companion value message.
	Flush()
}

// Renderer drives the indicator ring and RGB primitives for the sixteen
// physical positions. Animation waveforms are generated behind this
// interface, not by the engine.
type Renderer interface {
	SetIndicator(idx int, value uint8, hasDetent bool, mode uint8, detentColor uint8)
	SetRGB(idx int, color uint8)
	RunAnimation(idx, bank int, animation, baseColor uint8)
}
