package vfs

import (
	"fmt"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/tree"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/id"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/types"
)

// Standard folder names
const (
	FolderDesktop      = "Desktop"
	FolderApplications = "Applications"
	FolderDocuments    = "Documents"
	FolderGames        = "Games"
	FolderUtilities    = "Utilities"
	FolderApps         = "Apps"
	FolderDevApps      = "Dev Apps"
)

// Desktop placement overrides. Apps not listed fall back to their category.
var (
	gameApps     = set("minesweeper", "snake", "breakout", "solitaire", "tetris")
	utilityApps  = set("calculator", "clock", "calendar", "finder", "settings")
	creativeApps = set("macwrite", "notepad", "paint", "music-player", "notebook", "pinboard")
)

func set(ids ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(ids))
	for _, s := range ids {
		m[s] = struct{}{}
	}
	return m
}

// desktopFolder picks the Desktop subfolder for an app
func desktopFolder(app types.AppDefinition) string {
	if _, ok := gameApps[app.ID]; ok {
		return FolderGames
	}
	if _, ok := utilityApps[app.ID]; ok {
		return FolderUtilities
	}
	if _, ok := creativeApps[app.ID]; ok {
		return FolderApps
	}
	switch app.Category {
	case types.CategoryGame:
		return FolderGames
	case types.CategoryUtility:
		return FolderUtilities
	case types.CategoryCreative:
		return FolderApps
	default:
		return FolderDevApps
	}
}

// seed builds a fresh tree from the registry
func seed(apps []types.AppDefinition) (*tree.Store[entry], error) {
	t := emptyTree()
	b := &builder{t: t}

	desktop := b.folder(RootID, FolderDesktop)
	applications := b.folder(RootID, FolderApplications)
	b.folder(RootID, FolderDocuments)

	folders := map[string]string{
		FolderGames:     b.folder(desktop, FolderGames),
		FolderUtilities: b.folder(desktop, FolderUtilities),
		FolderApps:      b.folder(desktop, FolderApps),
	}
	folders[FolderDevApps] = b.folder(folders[FolderApps], FolderDevApps)

	for _, app := range apps {
		b.shortcut(applications, app)
		if !app.Hidden {
			b.shortcut(folders[desktopFolder(app)], app)
		}
	}

	if b.err != nil {
		return nil, fmt.Errorf("failed to seed file system: %w", b.err)
	}
	return t, nil
}

// builder accumulates the first insert error so seeding reads top-down
type builder struct {
	t   *tree.Store[entry]
	err error
}

func (b *builder) folder(parentID, name string) string {
	return b.insert(parentID, entry{Name: name, Type: types.NodeFolder})
}

func (b *builder) shortcut(parentID string, app types.AppDefinition) string {
	return b.insert(parentID, entry{
		Name:     app.Name,
		Type:     types.NodeFile,
		FileType: types.FileAppShortcut,
		AppID:    app.ID,
	})
}

func (b *builder) insert(parentID string, e entry) string {
	if b.err != nil {
		return ""
	}
	e.Name = b.uniqueName(parentID, e.Name)
	nodeID := id.NewNodeID().String()
	b.err = b.t.Insert(parentID, nodeID, e)
	return nodeID
}

// uniqueName suffixes name until no sibling uses it
func (b *builder) uniqueName(parentID, name string) string {
	taken := make(map[string]struct{})
	for _, c := range b.t.Children(parentID) {
		taken[c.Value.Name] = struct{}{}
	}
	candidate := name
	for i := 2; ; i++ {
		if _, ok := taken[candidate]; !ok {
			return candidate
		}
		candidate = fmt.Sprintf("%s %d", name, i)
	}
}

// Seed discards the current tree and synthesizes a new one from apps
func (fs *FileSystem) Seed(apps []types.AppDefinition) error {
	t, err := seed(apps)
	if err != nil {
		return err
	}

	fs.mu.Lock()
	fs.tree = t
	fs.mu.Unlock()

	fs.afterMutation("seed", nil)
	return nil
}
