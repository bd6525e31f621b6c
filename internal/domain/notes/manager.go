// Package notes is the sticky-note collection. The window manager only
// sees note ids; it asks this package to create and delete notes and is
// told (through Subscribe) when the collection changes.
package notes

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/storage"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/id"
)

// StorageKey is the durable record key
const StorageKey = "desktop.notes"

// ErrNotFound is returned when updating a note that does not exist
var ErrNotFound = errors.New("note not found")

// DefaultColor is used for new notes
const DefaultColor = "yellow"

// Note is one sticky note
type Note struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type record struct {
	Notes []Note `json:"notes"`
}

// Manager owns the note collection
type Manager struct {
	mu          sync.RWMutex
	notifyMu    sync.Mutex // orders persistence and delivery across mutations
	notes       []Note     // creation order
	subscribers []func(ids []string)
	store       storage.Store
	logger      *zap.Logger
	now         func() time.Time
}

// NewManager creates an empty collection. store may be nil.
func NewManager(store storage.Store, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{store: store, logger: logger, now: time.Now}
}

// Load restores persisted notes. A corrupt record is logged and ignored.
func (m *Manager) Load() {
	if m.store == nil {
		return
	}
	var r record
	found, err := storage.LoadJSON(m.store, StorageKey, &r)
	if err != nil {
		m.logger.Warn("Failed to load notes, starting empty", zap.Error(err))
		return
	}
	if !found {
		return
	}

	seen := make(map[string]bool, len(r.Notes))
	notes := make([]Note, 0, len(r.Notes))
	for _, n := range r.Notes {
		if n.ID == "" || seen[n.ID] {
			continue
		}
		seen[n.ID] = true
		notes = append(notes, n)
	}

	m.mu.Lock()
	m.notes = notes
	m.mu.Unlock()
}

// IDs returns the current note ids in creation order
func (m *Manager) IDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.idsLocked()
}

// List returns copies of every note
func (m *Manager) List() []Note {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Note(nil), m.notes...)
}

// Get returns a note by id
func (m *Manager) Get(noteID string) (Note, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, n := range m.notes {
		if n.ID == noteID {
			return n, true
		}
	}
	return Note{}, false
}

// Create adds an empty note
func (m *Manager) Create() (Note, error) {
	now := m.now()
	note := Note{
		ID:        id.NewNoteID().String(),
		Color:     DefaultColor,
		CreatedAt: now,
		UpdatedAt: now,
	}

	m.mu.Lock()
	m.notes = append(m.notes, note)
	m.mu.Unlock()

	m.changed()
	return note, nil
}

// Update replaces a note's text
func (m *Manager) Update(noteID, text string) error {
	m.mu.Lock()
	idx := m.indexLocked(noteID)
	if idx < 0 {
		m.mu.Unlock()
		return fmt.Errorf("%s: %w", noteID, ErrNotFound)
	}
	m.notes[idx].Text = text
	m.notes[idx].UpdatedAt = m.now()
	m.mu.Unlock()

	m.notifyMu.Lock()
	m.persist()
	m.notifyMu.Unlock()
	return nil
}

// Delete removes a note. Unknown ids are a no-op.
func (m *Manager) Delete(noteID string) error {
	m.mu.Lock()
	idx := m.indexLocked(noteID)
	if idx < 0 {
		m.mu.Unlock()
		return nil
	}
	m.notes = append(m.notes[:idx:idx], m.notes[idx+1:]...)
	m.mu.Unlock()

	m.changed()
	return nil
}

// Subscribe registers fn to receive the id list after every create or
// delete. Deliveries are serialized and each carries the ids current at
// delivery time, so the last call a subscriber sees matches IDs. fn must not
// create or delete notes.
func (m *Manager) Subscribe(fn func(ids []string)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subscribers = append(m.subscribers, fn)
}

func (m *Manager) changed() {
	m.notifyMu.Lock()
	defer m.notifyMu.Unlock()

	m.persist()

	m.mu.RLock()
	ids := m.idsLocked()
	subs := append([]func([]string){}, m.subscribers...)
	m.mu.RUnlock()

	for _, fn := range subs {
		fn(ids)
	}
}

func (m *Manager) persist() {
	if m.store == nil {
		return
	}
	m.mu.RLock()
	r := record{Notes: append([]Note{}, m.notes...)}
	m.mu.RUnlock()

	if err := storage.SaveJSON(m.store, StorageKey, r); err != nil {
		m.logger.Warn("Failed to persist notes", zap.Error(err))
	}
}

func (m *Manager) idsLocked() []string {
	ids := make([]string, len(m.notes))
	for i, n := range m.notes {
		ids[i] = n.ID
	}
	return ids
}

func (m *Manager) indexLocked(noteID string) int {
	for i, n := range m.notes {
		if n.ID == noteID {
			return i
		}
	}
	return -1
}
