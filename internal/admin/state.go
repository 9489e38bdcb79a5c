package admin

import "sync"

// State holds the admin-mode flag of one client session. The zero value is off.
type State struct {
	mu        sync.RWMutex
	enabled   bool
	listeners []func(enabled bool)
}

// Enabled reports whether admin mode is on.
func (s *State) Enabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.enabled
}

// Toggle flips the flag and returns the new value.
func (s *State) Toggle() bool {
	s.mu.Lock()
	s.enabled = !s.enabled
	next := s.enabled
	listeners := append([]func(bool){}, s.listeners...)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(next)
	}
	return next
}

// OnChange registers fn to run after every toggle.
func (s *State) OnChange(fn func(enabled bool)) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}
