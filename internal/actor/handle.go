package actor

import (
	"context"
	"sync"
)

// Pinger is implemented by actors that can check the backend is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handle publishes the actor once it is connected. Until then Current returns nil.
type Handle struct {
	mu      sync.RWMutex
	current Actor
}

// NewHandle returns a disconnected handle.
func NewHandle() *Handle {
	return &Handle{}
}

// Current returns the connected actor or nil.
func (h *Handle) Current() Actor {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

// Set publishes a (nil disconnects).
func (h *Handle) Set(a Actor) {
	h.mu.Lock()
	h.current = a
	h.mu.Unlock()
}

// Connect pings the backend through a and publishes it when the ping succeeds.
func (h *Handle) Connect(ctx context.Context, a Actor) error {
	if p, ok := a.(Pinger); ok {
		if err := p.Ping(ctx); err != nil {
			return err
		}
	}
	h.Set(a)
	return nil
}
