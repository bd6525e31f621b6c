package registry

import (
	"fmt"
	"sync"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/types"
)

// StickyNoteAppID is the hidden window type bound to sticky notes. Opening it
// asks the notes collaborator for a new note instead of creating a window.
const StickyNoteAppID = "sticky-note"

// Manager holds the static application registry
type Manager struct {
	mu      sync.RWMutex
	apps    map[string]types.AppDefinition
	order   []string // registration order, used for seeding
	metrics *monitoring.Metrics
}

// NewManager creates an empty registry
func NewManager() *Manager {
	return &Manager{
		apps: make(map[string]types.AppDefinition),
	}
}

// WithMetrics adds metrics tracking to the registry
func (m *Manager) WithMetrics(metrics *monitoring.Metrics) *Manager {
	m.metrics = metrics
	return m
}

// Register adds or replaces an application definition. Replacing keeps the
// original registration position.
func (m *Manager) Register(app types.AppDefinition) error {
	if app.ID == "" || app.Name == "" {
		return fmt.Errorf("app definition missing required fields (id, name)")
	}
	if app.DefaultSize.Width <= 0 || app.DefaultSize.Height <= 0 {
		return fmt.Errorf("app %s: default size must be positive, got %dx%d",
			app.ID, app.DefaultSize.Width, app.DefaultSize.Height)
	}

	m.mu.Lock()
	if _, exists := m.apps[app.ID]; !exists {
		m.order = append(m.order, app.ID)
	}
	m.apps[app.ID] = app
	count := len(m.apps)
	m.mu.Unlock()

	m.metrics.SetRegistryApps(count)
	return nil
}

// Lookup returns the definition for appID
func (m *Manager) Lookup(appID string) (types.AppDefinition, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	app, ok := m.apps[appID]
	return app, ok
}

// List returns every definition in registration order
func (m *Manager) List() []types.AppDefinition {
	m.mu.RLock()
	defer m.mu.RUnlock()

	apps := make([]types.AppDefinition, 0, len(m.order))
	for _, id := range m.order {
		apps = append(apps, m.apps[id])
	}
	return apps
}

// Stats returns registry statistics
func (m *Manager) Stats() types.RegistryStats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := types.RegistryStats{Categories: make(map[types.Category]int)}
	for _, app := range m.apps {
		stats.TotalApps++
		if app.Hidden {
			stats.HiddenApps++
		}
		stats.Categories[app.Category]++
	}
	return stats
}
