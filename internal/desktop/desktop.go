// Package desktop is the composition root. It owns one instance of every
// subsystem, loads them from durable storage at startup and wires the
// change hooks between them.
package desktop

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/notes"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/registry"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/theme"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/vfs"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/window"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/storage"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/types"
)

// Topic names the subsystem whose state changed
type Topic string

const (
	TopicWindows Topic = "windows"
	TopicVFS     Topic = "vfs"
	TopicNotes   Topic = "notes"
	TopicTheme   Topic = "theme"
)

// Options configures a desktop
type Options struct {
	Store       storage.Store // nil keeps everything in memory
	Logger      *zap.Logger
	Metrics     *monitoring.Metrics
	Theme       theme.Mode
	Viewport    window.Viewport
	ManifestDir string
}

// Desktop holds the running subsystems
type Desktop struct {
	Registry *registry.Manager
	Notes    *notes.Manager
	Theme    *theme.Manager
	Windows  *window.Manager
	FS       *vfs.FileSystem

	logger *zap.Logger

	mu        sync.RWMutex
	listeners map[uint64]func(Topic)
	nextID    uint64
}

// New builds and loads a desktop. Only registry seeding errors are fatal;
// unreadable records are logged and replaced by fresh state.
func New(opts Options) (*Desktop, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	store := opts.Store
	if store == nil {
		store = storage.NewMemoryStore()
	}

	reg := registry.NewManager().WithMetrics(opts.Metrics)
	seeder := registry.NewSeeder(reg, logger.Named("registry"))
	if err := seeder.SeedDefaults(); err != nil {
		return nil, fmt.Errorf("failed to seed registry: %w", err)
	}
	if loaded, failed, err := seeder.SeedManifests(opts.ManifestDir); err != nil {
		return nil, fmt.Errorf("failed to load manifests: %w", err)
	} else if loaded+failed > 0 {
		logger.Info("Loaded app manifests", zap.Int("loaded", loaded), zap.Int("failed", failed))
	}

	noteStore := notes.NewManager(store, logger.Named("notes"))
	themes := theme.NewManager(opts.Theme, store, logger.Named("theme"))
	windows := window.NewManager(reg, noteStore, themes, store, logger.Named("window")).WithMetrics(opts.Metrics)
	fs := vfs.New(store, logger.Named("vfs")).WithMetrics(opts.Metrics)

	d := &Desktop{
		Registry:  reg,
		Notes:     noteStore,
		Theme:     themes,
		Windows:   windows,
		FS:        fs,
		logger:    logger,
		listeners: make(map[uint64]func(Topic)),
	}

	noteStore.Load()
	themes.Load()
	windows.Load()
	if opts.Viewport.Valid() {
		if err := windows.SetViewport(opts.Viewport); err != nil {
			return nil, err
		}
	}
	if _, err := fs.Load(reg.List()); err != nil {
		return nil, fmt.Errorf("failed to load file system: %w", err)
	}

	noteStore.Subscribe(func(ids []string) {
		windows.SyncNotes(ids)
		d.publish(TopicNotes)
	})
	themes.Subscribe(func(theme.Mode) { d.publish(TopicTheme) })
	windows.Subscribe(func() { d.publish(TopicWindows) })
	fs.Subscribe(func() { d.publish(TopicVFS) })

	// windows and notes are separate records and may disagree after a crash
	plan := windows.SyncNotes(noteStore.IDs())
	if !plan.Empty() {
		logger.Info("Reconciled note windows at startup", zap.Int("added", len(plan.Add)), zap.Int("removed", len(plan.Remove)))
	}

	logger.Info("Desktop ready",
		zap.Int("apps", len(reg.List())),
		zap.Int("windows", len(windows.Windows())),
		zap.Int("notes", len(noteStore.IDs())),
		zap.Int("nodes", fs.Len()),
		zap.String("theme", string(themes.Mode())))
	return d, nil
}

// OpenFile launches whatever a file node points at. Shortcuts open their
// app; documents open their app with the content id. Folders open nothing
// and return a nil window.
func (d *Desktop) OpenFile(nodeID string) (*types.WindowInstance, error) {
	node, ok := d.FS.GetNode(nodeID)
	if !ok {
		return nil, fmt.Errorf("%s: %w", nodeID, vfs.ErrNotFound)
	}
	if !node.IsFile() {
		return nil, nil
	}

	props := types.Props{types.PropNodeID: node.ID}
	if p, ok := d.FS.PathOf(node.ID); ok {
		props[types.PropPath] = p
	}
	if node.FileType == types.FileDocument && node.ContentID != "" {
		props[types.PropContentID] = node.ContentID
	}
	return d.Windows.OpenApp(node.AppID, props)
}

// Snapshot is the UI-facing view of the desktop
type Snapshot struct {
	Windows        []types.WindowInstance `json:"windows"`
	ActiveWindowID *string                `json:"activeWindowId"`
	NextZIndex     int                    `json:"nextZIndex"`
	Viewport       window.Viewport        `json:"viewport"`
	Theme          theme.Mode             `json:"theme"`
	TopInset       int                    `json:"topInset"`
	Notes          []notes.Note           `json:"notes"`
	Apps           []types.AppDefinition  `json:"apps"`
}

// Snapshot returns a point-in-time copy of the desktop state
func (d *Desktop) Snapshot() Snapshot {
	state := d.Windows.State()
	return Snapshot{
		Windows:        state.Windows,
		ActiveWindowID: state.ActiveWindowID,
		NextZIndex:     state.NextZIndex,
		Viewport:       d.Windows.Viewport(),
		Theme:          d.Theme.Mode(),
		TopInset:       d.Theme.TopInset(),
		Notes:          d.Notes.List(),
		Apps:           d.Registry.List(),
	}
}

// Subscribe registers fn for change notifications and returns a function
// that removes it. fn runs on the goroutine that made the change.
func (d *Desktop) Subscribe(fn func(Topic)) (unsubscribe func()) {
	d.mu.Lock()
	listenerID := d.nextID
	d.nextID++
	d.listeners[listenerID] = fn
	d.mu.Unlock()

	return func() {
		d.mu.Lock()
		delete(d.listeners, listenerID)
		d.mu.Unlock()
	}
}

func (d *Desktop) publish(topic Topic) {
	d.mu.RLock()
	fns := make([]func(Topic), 0, len(d.listeners))
	for _, fn := range d.listeners {
		fns = append(fns, fn)
	}
	d.mu.RUnlock()

	for _, fn := range fns {
		fn(topic)
	}
}
