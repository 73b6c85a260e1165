// Package midi adapts the gomidi transport to the engine's collaborator
// contracts: an outbound sender for the surface's own messages and an
// inbound listener feeding the feedback decoder.
package midi

import (
	"fmt"
	"sync"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register rtmidi driver
)

// Manager handles MIDI port discovery and lifecycle.
type Manager struct {
	mu sync.RWMutex
}

// NewManager creates a new MIDI manager
func NewManager() *Manager {
	return &Manager{}
}

// Close cleans up the MIDI driver
func (m *Manager) Close() {
	midi.CloseDriver()
}

// ListInPorts returns the names of available MIDI input ports
func (m *Manager) ListInPorts() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ins := midi.GetInPorts()
	names := make([]string, 0, len(ins))
	for _, in := range ins {
		names = append(names, in.String())
	}
	return names
}

// ListOutPorts returns the names of available MIDI output ports
func (m *Manager) ListOutPorts() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	outs := midi.GetOutPorts()
	names := make([]string, 0, len(outs))
	for _, out := range outs {
		names = append(names, out.String())
	}
	return names
}

// GetInPort returns an input port by name, or nil if absent.
func (m *Manager) GetInPort(name string) drivers.In {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ins := midi.GetInPorts()
	for _, in := range ins {
		if in.String() == name {
			return in
		}
	}
	return nil
}

// GetOutPort returns an output port by name, or nil if absent.
func (m *Manager) GetOutPort(name string) drivers.Out {
	m.mu.RLock()
	defer m.mu.RUnlock()

	outs := midi.GetOutPorts()
	for _, out := range outs {
		if out.String() == name {
			return out
		}
	}
	return nil
}

// OpenSend resolves an output port and returns its raw send function.
func (m *Manager) OpenSend(portName string) (func(midi.Message) error, error) {
	outPort := m.GetOutPort(portName)
	if outPort == nil {
		return nil, fmt.Errorf("output port not found: %s", portName)
	}

	send, err := midi.SendTo(outPort)
	if err != nil {
		return nil, fmt.Errorf("failed to create sender: %w", err)
	}
	return send, nil
}
