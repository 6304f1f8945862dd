package viewer

import "sync"

// RunSignal is sampled at the top of every capture cycle.
type RunSignal interface {
	Running() bool
}

// Switch is the session owned run signal.
type Switch struct {
	mu sync.Mutex
	on bool
}

func (s *Switch) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.on
}

func (s *Switch) Set(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.on = on
}

// Toggle flips the switch and returns the new state.
func (s *Switch) Toggle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.on = !s.on
	return s.on
}
