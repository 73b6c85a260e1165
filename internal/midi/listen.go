package midi

import (
	"fmt"

	"gitlab.com/gomidi/midi/v2"

	"quadbank/internal/config"
	"quadbank/internal/encoder"
)

// FeedbackFunc receives each decoded inbound message.
type FeedbackFunc func(encoder.Message)

// StartListening begins decoding inbound MIDI on the named port into
// feedback messages. Only note and CC messages are forwarded; everything
// else the feedback decoder has no role for is dropped here. Returns a stop
// function.
func (m *Manager) StartListening(inPortName string, fn FeedbackFunc) (func(), error) {
	inPort := m.GetInPort(inPortName)
	if inPort == nil {
		return nil, fmt.Errorf("input port not found: %s", inPortName)
	}

	stop, err := midi.ListenTo(inPort, func(msg midi.Message, timestampms int32) {
		var channel, key, velocity uint8

		switch {
		case msg.GetNoteOn(&channel, &key, &velocity):
			fn(encoder.Message{
				Channel: channel,
				Type:    config.SendNote,
				Number:  key,
				Value:   velocity,
				On:      velocity > 0,
			})
		case msg.GetNoteOff(&channel, &key, &velocity):
			fn(encoder.Message{
				Channel: channel,
				Type:    config.SendNoteOff,
				Number:  key,
				Value:   velocity,
			})
		case msg.GetControlChange(&channel, &key, &velocity):
			fn(encoder.Message{
				Channel: channel,
				Type:    config.SendCC,
				Number:  key,
				Value:   velocity,
				On:      velocity > 0,
			})
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start listening: %w", err)
	}

	return stop, nil
}
