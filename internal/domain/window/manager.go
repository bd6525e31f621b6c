package window

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/notes"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/registry"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/storage"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/id"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/types"
)

// BaseZIndex is the first z-index handed out on an empty desktop
const BaseZIndex = 10

// noteSize is used when the sticky-note app is not registered
var noteSize = types.Size{Width: 200, Height: 200}

// ErrUnknownApp is returned by OpenApp when the registry has no such app.
// The window state is left untouched.
var ErrUnknownApp = errors.New("window: unknown app")

// AppLookup resolves application definitions
type AppLookup interface {
	Lookup(appID string) (types.AppDefinition, bool)
}

// NoteStore creates and deletes sticky notes
type NoteStore interface {
	Create() (notes.Note, error)
	Delete(noteID string) error
}

// Insets reports the height of the chrome above the desktop
type Insets interface {
	TopInset() int
}

// Manager orchestrates window lifecycle, focus and z-order
type Manager struct {
	mu          sync.RWMutex
	windows     []types.WindowInstance // creation order, protected by mu
	activeID    *string                // protected by mu
	nextZ       int                    // protected by mu
	viewport    Viewport
	subscribers []func()

	apps    AppLookup
	notes   NoteStore
	insets  Insets
	store   storage.Store
	logger  *zap.Logger
	metrics *monitoring.Metrics

	persistMu sync.Mutex
}

// NewManager creates a window manager with no open windows. store may be
// nil for an ephemeral desktop.
func NewManager(apps AppLookup, noteStore NoteStore, insets Insets, store storage.Store, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		windows:  []types.WindowInstance{},
		nextZ:    BaseZIndex,
		viewport: DefaultViewport,
		apps:     apps,
		notes:    noteStore,
		insets:   insets,
		store:    store,
		logger:   logger,
	}
}

// WithMetrics adds metrics tracking to the manager
func (m *Manager) WithMetrics(metrics *monitoring.Metrics) *Manager {
	m.metrics = metrics
	return m
}

func (m *Manager) topInset() int {
	if m.insets == nil {
		return 0
	}
	return m.insets.TopInset()
}

// ============================================================================
// Lifecycle
// ============================================================================

// OpenApp opens a new window of appID. Opening the sticky-note app creates a
// note instead; its window arrives through SyncNotes, so nil is returned.
//
// An app id the registry does not know is a no-op: nothing changes and no
// subscriber runs. The returned ErrUnknownApp only tells callers that
// surface errors (the HTTP layer answers 404) why no window came back;
// in-process callers can treat it like a nil window.
func (m *Manager) OpenApp(appID string, props types.Props) (*types.WindowInstance, error) {
	if appID == registry.StickyNoteAppID {
		if m.notes == nil {
			return nil, fmt.Errorf("no note store: %w", ErrUnknownApp)
		}
		note, err := m.notes.Create()
		if err != nil {
			return nil, fmt.Errorf("failed to create note: %w", err)
		}
		m.logger.Debug("Created sticky note", zap.String("note_id", note.ID))
		return nil, nil
	}

	app, ok := m.apps.Lookup(appID)
	if !ok {
		return nil, fmt.Errorf("%s: %w", appID, ErrUnknownApp)
	}

	inset := m.topInset()

	m.mu.Lock()
	w := m.spawnLocked(app.ID, app.DefaultSize, props.Clone(), false, inset)
	open := len(m.windows)
	m.mu.Unlock()

	m.logger.Debug("Opened window", zap.String("window_id", w.ID), zap.String("app_id", appID))
	m.changed("open", open)
	return &w, nil
}

// spawnLocked appends a new window on top and makes it active
func (m *Manager) spawnLocked(appID string, size types.Size, props types.Props, isNote bool, inset int) types.WindowInstance {
	w := types.WindowInstance{
		ID:       id.NewWindowID().String(),
		AppID:    appID,
		ZIndex:   m.nextZ,
		Position: placement(m.viewport, size, len(m.windows), inset),
		Size:     size,
		Props:    props,
		IsNote:   isNote,
	}
	m.nextZ++
	m.windows = append(m.windows, w)
	active := w.ID
	m.activeID = &active
	return w.Clone()
}

// CloseWindow removes a window. Closing a note window deletes its note.
// When the active window closes, the highest remaining window takes over.
func (m *Manager) CloseWindow(windowID string) bool {
	m.mu.Lock()
	idx := m.indexLocked(windowID)
	if idx < 0 {
		m.mu.Unlock()
		return false
	}
	closed := m.windows[idx]
	m.windows = append(m.windows[:idx:idx], m.windows[idx+1:]...)
	if m.activeID != nil && *m.activeID == windowID {
		m.activeID = m.topLocked()
	}
	open := len(m.windows)
	m.mu.Unlock()

	m.changed("close", open)

	if nid, ok := closed.Props.NoteID(); closed.IsNote && ok && m.notes != nil {
		if err := m.notes.Delete(nid); err != nil {
			m.logger.Warn("Failed to delete note for closed window",
				zap.String("window_id", windowID), zap.String("note_id", nid), zap.Error(err))
		}
	}
	return true
}

// FocusWindow raises a window and makes it active. Focusing the active
// window or an unknown id changes nothing.
func (m *Manager) FocusWindow(windowID string) bool {
	m.mu.Lock()
	ok := m.focusLocked(windowID)
	open := len(m.windows)
	m.mu.Unlock()

	if ok {
		m.changed("focus", open)
	}
	return ok
}

func (m *Manager) focusLocked(windowID string) bool {
	if m.activeID != nil && *m.activeID == windowID {
		return false
	}
	idx := m.indexLocked(windowID)
	if idx < 0 {
		return false
	}
	m.windows[idx].ZIndex = m.nextZ
	m.nextZ++
	active := m.windows[idx].ID
	m.activeID = &active
	return true
}

// MoveWindow repositions a window, keeping it below the top inset
func (m *Manager) MoveWindow(windowID string, pos types.Position) bool {
	pos.Y = max(pos.Y, m.topInset())
	return m.update("move", windowID, func(w *types.WindowInstance) {
		w.Position = pos
	})
}

// ResizeWindow replaces a window's size
func (m *Manager) ResizeWindow(windowID string, size types.Size) bool {
	return m.update("resize", windowID, func(w *types.WindowInstance) {
		w.Size = size
	})
}

// SplitWindow snaps a window to the left or right half of the viewport
// and focuses it
func (m *Manager) SplitWindow(windowID string, d Direction) bool {
	inset := m.topInset()

	m.mu.Lock()
	idx := m.indexLocked(windowID)
	if idx < 0 {
		m.mu.Unlock()
		return false
	}
	m.windows[idx].Position, m.windows[idx].Size = half(m.viewport, d, inset)
	m.focusLocked(windowID)
	open := len(m.windows)
	m.mu.Unlock()

	m.changed("split", open)
	return true
}

func (m *Manager) update(op, windowID string, fn func(*types.WindowInstance)) bool {
	m.mu.Lock()
	idx := m.indexLocked(windowID)
	if idx < 0 {
		m.mu.Unlock()
		return false
	}
	fn(&m.windows[idx])
	open := len(m.windows)
	m.mu.Unlock()

	m.changed(op, open)
	return true
}

// SetViewport records what part of the canvas the UI currently shows
func (m *Manager) SetViewport(v Viewport) error {
	if !v.Valid() {
		return fmt.Errorf("invalid viewport %dx%d", v.Width, v.Height)
	}
	m.mu.Lock()
	m.viewport = v
	m.mu.Unlock()
	return nil
}

// Viewport returns the last reported viewport
func (m *Manager) Viewport() Viewport {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.viewport
}

// ============================================================================
// Note reconciliation
// ============================================================================

// SyncNotes makes the note windows match noteIDs. Windows are added for new
// notes and removed for vanished ones; notes themselves are never deleted
// here.
func (m *Manager) SyncNotes(noteIDs []string) Plan {
	inset := m.topInset()
	size := noteSize
	if app, ok := m.apps.Lookup(registry.StickyNoteAppID); ok {
		size = app.DefaultSize
	}

	m.mu.Lock()
	plan := Reconcile(noteIDs, m.windows)
	if plan.Empty() {
		m.mu.Unlock()
		return plan
	}

	for _, windowID := range plan.Remove {
		if idx := m.indexLocked(windowID); idx >= 0 {
			m.windows = append(m.windows[:idx:idx], m.windows[idx+1:]...)
		}
	}
	if m.activeID != nil && m.indexLocked(*m.activeID) < 0 {
		m.activeID = m.topLocked()
	}
	for _, nid := range plan.Add {
		m.spawnLocked(registry.StickyNoteAppID, size, types.Props{types.PropNoteID: nid}, true, inset)
	}
	open := len(m.windows)
	m.mu.Unlock()

	m.metrics.RecordNoteSync(len(plan.Add), len(plan.Remove))
	m.logger.Debug("Synced note windows", zap.Int("added", len(plan.Add)), zap.Int("removed", len(plan.Remove)))
	m.changed("sync_notes", open)
	return plan
}

// ============================================================================
// Read access
// ============================================================================

// Windows returns copies of all windows in creation order
func (m *Manager) Windows() []types.WindowInstance {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.copyWindowsLocked()
}

// Window returns one window by id
func (m *Manager) Window(windowID string) (types.WindowInstance, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	idx := m.indexLocked(windowID)
	if idx < 0 {
		return types.WindowInstance{}, false
	}
	return m.windows[idx].Clone(), true
}

// ActiveWindowID returns the focused window, if any
func (m *Manager) ActiveWindowID() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.activeID == nil {
		return "", false
	}
	return *m.activeID, true
}

// State returns the full persisted record
func (m *Manager) State() types.WindowState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stateLocked()
}

func (m *Manager) stateLocked() types.WindowState {
	return types.WindowState{
		Windows:        m.copyWindowsLocked(),
		ActiveWindowID: copyID(m.activeID),
		NextZIndex:     m.nextZ,
	}
}

// Stats returns manager statistics
func (m *Manager) Stats() types.Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var noteWindows int
	for _, w := range m.windows {
		if w.IsNote {
			noteWindows++
		}
	}
	return types.Stats{
		TotalWindows:   len(m.windows),
		NoteWindows:    noteWindows,
		ActiveWindowID: copyID(m.activeID),
		NextZIndex:     m.nextZ,
	}
}

// Stack returns window ids from bottom to top
func (m *Manager) Stack() []string {
	windows := m.Windows()
	sort.SliceStable(windows, func(i, j int) bool { return windows[i].ZIndex < windows[j].ZIndex })
	ids := make([]string, len(windows))
	for i, w := range windows {
		ids[i] = w.ID
	}
	return ids
}

// Subscribe registers fn to run after every state change
func (m *Manager) Subscribe(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subscribers = append(m.subscribers, fn)
}

// ============================================================================
// Helpers (callers hold mu)
// ============================================================================

func (m *Manager) indexLocked(windowID string) int {
	for i := range m.windows {
		if m.windows[i].ID == windowID {
			return i
		}
	}
	return -1
}

func (m *Manager) topLocked() *string {
	return topmost(m.windows)
}

// topmost returns the id of the highest window, or nil when there are none
func topmost(windows []types.WindowInstance) *string {
	top := -1
	for i := range windows {
		if top < 0 || windows[i].ZIndex > windows[top].ZIndex {
			top = i
		}
	}
	if top < 0 {
		return nil
	}
	windowID := windows[top].ID
	return &windowID
}

func (m *Manager) copyWindowsLocked() []types.WindowInstance {
	out := make([]types.WindowInstance, len(m.windows))
	for i, w := range m.windows {
		out[i] = w.Clone()
	}
	return out
}

func copyID(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// changed persists the new state and notifies subscribers. It must be
// called without holding mu.
func (m *Manager) changed(op string, open int) {
	m.metrics.RecordWindowOp(op, open)
	m.persist()

	m.mu.RLock()
	subs := append([]func(){}, m.subscribers...)
	m.mu.RUnlock()
	for _, fn := range subs {
		fn()
	}
}
