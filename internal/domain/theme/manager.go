// Package theme tracks the active desktop theme mode and the window
// clamping inset it implies.
//
// The classic mode draws a 24-unit menu bar that windows may not slide
// under; the flat mode has none.
package theme

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/storage"
)

// Mode is a theme mode
type Mode string

const (
	ModeClassic Mode = "classic"
	ModeFlat    Mode = "flat"
)

// StorageKey is the durable record key
const StorageKey = "desktop.theme"

var topInsets = map[Mode]int{
	ModeClassic: 24,
	ModeFlat:    0,
}

type record struct {
	Mode Mode `json:"mode"`
}

// Manager holds the current mode
type Manager struct {
	mu          sync.RWMutex
	mode        Mode
	subscribers []func(Mode)
	store       storage.Store
	logger      *zap.Logger
}

// NewManager creates a theme manager starting in mode; an unknown mode falls back to classic
func NewManager(mode Mode, store storage.Store, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	if _, ok := topInsets[mode]; !ok {
		mode = ModeClassic
	}
	return &Manager{mode: mode, store: store, logger: logger}
}

// Load restores the persisted mode, keeping the current one when nothing
// usable is stored
func (m *Manager) Load() {
	if m.store == nil {
		return
	}
	var r record
	found, err := storage.LoadJSON(m.store, StorageKey, &r)
	if err != nil {
		m.logger.Warn("Failed to load theme, keeping default", zap.Error(err))
		return
	}
	if !found {
		return
	}
	if _, ok := topInsets[r.Mode]; !ok {
		m.logger.Warn("Ignoring unknown stored theme", zap.String("mode", string(r.Mode)))
		return
	}
	m.mu.Lock()
	m.mode = r.Mode
	m.mu.Unlock()
}

// Mode returns the active mode
func (m *Manager) Mode() Mode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.mode
}

// TopInset returns the minimum window y for the active mode
func (m *Manager) TopInset() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return topInsets[m.mode]
}

// SetMode switches the active mode, persists it and notifies subscribers
func (m *Manager) SetMode(mode Mode) error {
	if _, ok := topInsets[mode]; !ok {
		return fmt.Errorf("unknown theme mode %q", mode)
	}

	m.mu.Lock()
	if m.mode == mode {
		m.mu.Unlock()
		return nil
	}
	m.mode = mode
	subs := append([]func(Mode){}, m.subscribers...)
	m.mu.Unlock()

	if m.store != nil {
		if err := storage.SaveJSON(m.store, StorageKey, record{Mode: mode}); err != nil {
			m.logger.Warn("Failed to persist theme", zap.Error(err))
		}
	}
	for _, fn := range subs {
		fn(mode)
	}
	return nil
}

// Subscribe registers fn to run after every mode change
func (m *Manager) Subscribe(fn func(Mode)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subscribers = append(m.subscribers, fn)
}

// Modes lists the known modes
func Modes() []Mode {
	return []Mode{ModeClassic, ModeFlat}
}
