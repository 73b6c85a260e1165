package midi

import (
	"gitlab.com/gomidi/midi/v2"
)

// PortSender implements the engine's outbound transport over a gomidi output
// port. Send errors are swallowed: the core keeps processing ticks whether
// or not the wire is healthy.
type PortSender struct {
	send func(midi.Message) error
}

// OpenSender opens the named output port as a PortSender.
func (m *Manager) OpenSender(portName string) (*PortSender, error) {
	send, err := m.OpenSend(portName)
	if err != nil {
		return nil, err
	}
	return &PortSender{send: send}, nil
}

func (s *PortSender) SendCC(channel, number, value uint8) {
	_ = s.send(midi.ControlChange(channel, number, value))
}

func (s *PortSender) SendNote(channel, number uint8, on bool, velocity uint8) {
	if on {
		_ = s.send(midi.NoteOn(channel, number, velocity))
		return
	}
	_ = s.send(midi.NoteOff(channel, number))
}

// Flush is a no-op: port writes are unbuffered here. It is kept so the
// high-resolution prefix ordering contract holds against transports that do
// buffer.
func (s *PortSender) Flush() {}

// Discard is a Sender that drops everything, for running without an output
// port attached.
type Discard struct{}

func (Discard) SendCC(channel, number, value uint8)                {}
func (Discard) SendNote(channel, number uint8, on bool, vel uint8) {}
func (Discard) Flush()                                             {}
