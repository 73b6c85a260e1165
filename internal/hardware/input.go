// Package hardware provides input sources for the engine. Real rotary and
// switch polling lives in hardware-specific collaborators; the simulated
// source here drives the engine from keyboard input or tests.
package hardware

import (
	"sync"
)

// Sim is a scriptable input source implementing the engine's Input contract.
// Events are queued from any goroutine and become visible to the engine at
// the next Sample call, matching the once-per-tick refresh of a hardware
// poller.
type Sim struct {
	mu sync.Mutex

	pendingDelta [16]int
	pendingDown  uint16
	pendingUp    uint16

	delta [16]int
	down  uint16
	up    uint16
	held  uint16
}

// NewSim returns an idle simulated input.
func NewSim() *Sim {
	return &Sim{}
}

// Turn queues rotary pulses for an encoder. Negative is counter-clockwise.
func (s *Sim) Turn(idx, pulses int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx >= 0 && idx < 16 {
		s.pendingDelta[idx] += pulses
	}
}

// Press queues a switch press edge.
func (s *Sim) Press(idx int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx >= 0 && idx < 16 {
		s.pendingDown |= 1 << uint(idx)
	}
}

// Release queues a switch release edge.
func (s *Sim) Release(idx int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx >= 0 && idx < 16 {
		s.pendingUp |= 1 << uint(idx)
	}
}

// Tap queues a press and release pair, resolved over two samples.
func (s *Sim) Tap(idx int) {
	s.Press(idx)
	s.Release(idx)
}

// Sample latches the queued events into the snapshot the accessors read.
func (s *Sim) Sample() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.delta = s.pendingDelta
	s.pendingDelta = [16]int{}

	// A press and release queued together resolve as one press now, the
	// release on the next sample.
	s.down = s.pendingDown
	s.held |= s.pendingDown
	s.pendingDown = 0

	s.up = s.pendingUp &^ s.down
	s.held &^= s.up
	s.pendingUp &= s.down
}

func (s *Sim) RotaryDelta(idx int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.delta[idx]
}

func (s *Sim) Down() uint16 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.down
}

func (s *Sim) Up() uint16 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.up
}

func (s *Sim) Held() uint16 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.held
}
