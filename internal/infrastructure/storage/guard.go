package storage

import (
	"errors"
	"sync"
	"time"
)

// ErrCircuitOpen is returned while a guarded store is skipping writes
var ErrCircuitOpen = errors.New("storage: write circuit open")

// GuardState is the write circuit state
type GuardState int

const (
	GuardClosed GuardState = iota
	GuardHalfOpen
	GuardOpen
)

// String returns the string representation of the state
func (s GuardState) String() string {
	switch s {
	case GuardClosed:
		return "closed"
	case GuardHalfOpen:
		return "half-open"
	case GuardOpen:
		return "open"
	default:
		return "unknown"
	}
}

// GuardSettings configures a Guarded store
type GuardSettings struct {
	// MaxFailures consecutive write failures open the circuit
	MaxFailures int
	// Cooldown is how long writes are skipped before one probe is let through
	Cooldown time.Duration
	// OnStateChange is called whenever the state changes
	OnStateChange func(from, to GuardState)
}

// Guarded wraps a store so that a failing disk is not hit on every window
// drag. Reads always pass through. While open, Set and Delete fail fast
// with ErrCircuitOpen; after the cooldown one write probes the store and
// its outcome closes or reopens the circuit.
type Guarded struct {
	Store
	settings GuardSettings
	now      func() time.Time

	mu       sync.Mutex
	state    GuardState
	failures int
	openedAt time.Time
	probing  bool
}

// NewGuarded wraps store with a write circuit
func NewGuarded(store Store, settings GuardSettings) *Guarded {
	if settings.MaxFailures <= 0 {
		settings.MaxFailures = 5
	}
	if settings.Cooldown <= 0 {
		settings.Cooldown = 30 * time.Second
	}
	return &Guarded{Store: store, settings: settings, now: time.Now}
}

// State returns the current circuit state
func (g *Guarded) State() GuardState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.currentLocked()
}

// Set writes through the circuit
func (g *Guarded) Set(key string, data []byte) error {
	return g.guard(func() error { return g.Store.Set(key, data) })
}

// Delete removes through the circuit
func (g *Guarded) Delete(key string) error {
	return g.guard(func() error { return g.Store.Delete(key) })
}

func (g *Guarded) guard(write func() error) error {
	if err := g.before(); err != nil {
		return err
	}
	err := write()
	g.after(err)
	return err
}

func (g *Guarded) before() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch g.currentLocked() {
	case GuardOpen:
		return ErrCircuitOpen
	case GuardHalfOpen:
		if g.probing {
			return ErrCircuitOpen
		}
		g.probing = true
	}
	return nil
}

func (g *Guarded) after(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	state := g.currentLocked()
	g.probing = false
	if err == nil {
		g.failures = 0
		if state != GuardClosed {
			g.setLocked(GuardClosed)
		}
		return
	}
	if errors.Is(err, ErrInvalidKey) {
		// caller bug, not a storage fault
		return
	}

	g.failures++
	if state == GuardHalfOpen || g.failures >= g.settings.MaxFailures {
		g.openedAt = g.now()
		g.setLocked(GuardOpen)
	}
}

// currentLocked moves an expired open circuit to half-open
func (g *Guarded) currentLocked() GuardState {
	if g.state == GuardOpen && g.now().Sub(g.openedAt) >= g.settings.Cooldown {
		g.setLocked(GuardHalfOpen)
	}
	return g.state
}

func (g *Guarded) setLocked(to GuardState) {
	from := g.state
	if from == to {
		return
	}
	g.state = to
	if g.settings.OnStateChange != nil {
		g.settings.OnStateChange(from, to)
	}
}
