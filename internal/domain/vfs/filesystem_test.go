package vfs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/storage"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/types"
)

var testApps = []types.AppDefinition{
	{ID: "calculator", Name: "Calculator", Category: types.CategoryUtility},
	{ID: "macwrite", Name: "MacWrite", Category: types.CategoryCreative},
	{ID: "snake", Name: "Snake", Category: types.CategoryGame},
	{ID: "terminal", Name: "Terminal", Category: types.CategoryDev},
	{ID: "pixel-art", Name: "Pixel Art", Category: types.CategoryCreative},
	{ID: "sticky-note", Name: "Sticky Note", Category: types.CategorySystem, Hidden: true},
}

func newSeeded(t *testing.T) (*FileSystem, storage.Store) {
	t.Helper()
	store := storage.NewMemoryStore()
	fs := New(store, nil)
	seeded, err := fs.Load(testApps)
	require.NoError(t, err)
	require.True(t, seeded)
	return fs, store
}

func mustFind(t *testing.T, fs *FileSystem, path string) types.Node {
	t.Helper()
	n, ok := fs.FindNodeByPath(path)
	require.True(t, ok, "path %s", path)
	return n
}

func childNames(fs *FileSystem, folderID string) []string {
	var names []string
	for _, c := range fs.GetChildren(folderID) {
		names = append(names, c.Name)
	}
	return names
}

func TestSeedShape(t *testing.T) {
	fs, _ := newSeeded(t)

	root := fs.GetRoot()
	assert.Equal(t, RootID, root.ID)
	assert.Nil(t, root.ParentID)
	assert.Equal(t, []string{"Desktop", "Applications", "Documents"}, childNames(fs, root.ID))

	desktop := mustFind(t, fs, "/Desktop")
	assert.Equal(t, []string{"Games", "Utilities", "Apps"}, childNames(fs, desktop.ID))
	assert.Equal(t, []string{"Dev Apps", "MacWrite", "Pixel Art"}, childNames(fs, mustFind(t, fs, "/Desktop/Apps").ID))

	assert.Equal(t, []string{"Calculator"}, childNames(fs, mustFind(t, fs, "/Desktop/Utilities").ID))
	assert.Equal(t, []string{"Snake"}, childNames(fs, mustFind(t, fs, "/Desktop/Games").ID))
	assert.Equal(t, []string{"Terminal"}, childNames(fs, mustFind(t, fs, "/Desktop/Apps/Dev Apps").ID))

	// every app, hidden included, gets an Applications shortcut
	apps := fs.GetChildren(mustFind(t, fs, "/Applications").ID)
	require.Len(t, apps, len(testApps))
	for i, n := range apps {
		assert.Equal(t, types.FileAppShortcut, n.FileType)
		assert.Equal(t, testApps[i].ID, n.AppID)
		assert.Empty(t, n.ContentID)
	}

	assert.Empty(t, fs.GetChildren(mustFind(t, fs, "/Documents").ID))
	assert.NoError(t, fs.Validate())
}

func TestLoadRestoresInsteadOfReseeding(t *testing.T) {
	fs, store := newSeeded(t)
	before := fs.Nodes()

	again := New(store, nil)
	seeded, err := again.Load(testApps)
	require.NoError(t, err)
	assert.False(t, seeded)
	assert.Equal(t, before, again.Nodes())
}

func TestLoadReseedsCorruptOrRootless(t *testing.T) {
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set(StorageKey, []byte("{not json")))

	fs := New(store, nil)
	seeded, err := fs.Load(testApps)
	require.NoError(t, err)
	assert.True(t, seeded)
	assert.NoError(t, fs.Validate())

	require.NoError(t, storage.SaveJSON(store, StorageKey, types.NodeMap{
		"node_a": {ID: "node_a", Name: "orphan", Type: types.NodeFolder, ChildrenIDs: []string{}},
	}))
	fs = New(store, nil)
	seeded, err = fs.Load(testApps)
	require.NoError(t, err)
	assert.True(t, seeded)
	_, ok := fs.FindNodeByPath("/Desktop/Games")
	assert.True(t, ok)
}

func TestFindNodeByPath(t *testing.T) {
	fs, _ := newSeeded(t)

	root, ok := fs.FindNodeByPath("/")
	require.True(t, ok)
	assert.Equal(t, RootID, root.ID)

	a := mustFind(t, fs, "/Desktop/Apps/Dev Apps")
	b := mustFind(t, fs, "Desktop//Apps/Dev Apps/")
	assert.Equal(t, a.ID, b.ID)

	_, ok = fs.FindNodeByPath("/desktop")
	assert.False(t, ok, "paths are case-sensitive")

	_, ok = fs.FindNodeByPath("/Applications/Calculator/anything")
	assert.False(t, ok, "files have no children")

	_, ok = fs.FindNodeByPath("/Nope")
	assert.False(t, ok)
}

func TestCreateFileDocumentScenario(t *testing.T) {
	fs, store := newSeeded(t)
	docs := mustFind(t, fs, "/Documents")

	report, err := fs.CreateFile("Report", docs.ID, types.FileDocument, "macwrite", "doc-42")
	require.NoError(t, err)

	found := mustFind(t, fs, "/Documents/Report")
	assert.Equal(t, report.ID, found.ID)
	assert.Equal(t, "doc-42", found.ContentID)
	assert.Equal(t, "macwrite", found.AppID)
	require.NotNil(t, found.ParentID)
	assert.Equal(t, docs.ID, *found.ParentID)

	docs, _ = fs.GetNode(docs.ID)
	assert.Equal(t, []string{report.ID}, docs.ChildrenIDs)

	// persisted on change
	var stored types.NodeMap
	ok, err := storage.LoadJSON(store, StorageKey, &stored)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, stored, report.ID)
}

type seededShape struct {
	Type     types.NodeType
	FileType types.FileType
	AppID    string
}

func shapeOf(t *testing.T, fs *FileSystem) map[string]seededShape {
	t.Helper()
	matches, err := fs.Glob("/**")
	require.NoError(t, err)
	shape := make(map[string]seededShape, len(matches))
	for _, m := range matches {
		shape[m.Path] = seededShape{Type: m.Node.Type, FileType: m.Node.FileType, AppID: m.Node.AppID}
	}
	return shape
}

func TestSeedIsIdempotentInShape(t *testing.T) {
	first, _ := newSeeded(t)
	second, _ := newSeeded(t)

	assert.NotEqual(t, first.GetChildren(RootID)[0].ID, second.GetChildren(RootID)[0].ID)

	shape := shapeOf(t, first)
	assert.Contains(t, shape, "/Applications/Calculator")
	assert.Contains(t, shape, "/Desktop/Apps/Dev Apps")
	assert.Equal(t, shape, shapeOf(t, second))
}

func TestCreateFileErrors(t *testing.T) {
	fs, _ := newSeeded(t)
	shortcut := fs.GetChildren(mustFind(t, fs, "/Applications").ID)[0]
	before := fs.Len()

	_, err := fs.CreateFile("x", shortcut.ID, types.FileDocument, "macwrite", "c")
	assert.ErrorIs(t, err, ErrNotFolder)

	_, err = fs.CreateFile("x", "node_missing", types.FileDocument, "macwrite", "c")
	assert.ErrorIs(t, err, ErrNotFolder)

	docs := mustFind(t, fs, "/Documents")
	_, err = fs.CreateFile("a/b", docs.ID, types.FileDocument, "macwrite", "c")
	assert.ErrorIs(t, err, ErrInvalidName)

	_, err = fs.CreateFile("x", docs.ID, types.FileDocument, "", "c")
	assert.ErrorIs(t, err, ErrInvalidFile)

	assert.Equal(t, before, fs.Len())
	assert.NoError(t, fs.Validate())
}

func TestCreateFileAllowsDuplicateAndBlankNames(t *testing.T) {
	fs, _ := newSeeded(t)
	docs := mustFind(t, fs, "/Documents")

	first, err := fs.CreateFile("Untitled", docs.ID, types.FileDocument, "macwrite", "c1")
	require.NoError(t, err)
	second, err := fs.CreateFile("Untitled", docs.ID, types.FileDocument, "macwrite", "c2")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	blank, err := fs.CreateFile("  ", docs.ID, types.FileDocument, "macwrite", "c3")
	require.NoError(t, err)

	children := fs.GetChildren(docs.ID)
	require.Len(t, children, 3)
	assert.Equal(t, []string{first.ID, second.ID, blank.ID}, []string{children[0].ID, children[1].ID, children[2].ID})

	found, ok := fs.FindNodeByPath("/Documents/Untitled")
	require.True(t, ok)
	assert.Equal(t, first.ID, found.ID)
	assert.NoError(t, fs.Validate())
}

func TestCreateFolderRequiresUniqueName(t *testing.T) {
	fs, _ := newSeeded(t)
	docs := mustFind(t, fs, "/Documents")

	_, err := fs.CreateFolder("Drafts", docs.ID)
	require.NoError(t, err)
	_, err = fs.CreateFolder("Drafts", docs.ID)
	assert.ErrorIs(t, err, ErrNameTaken)
	_, err = fs.CreateFolder(" ", docs.ID)
	assert.ErrorIs(t, err, ErrInvalidName)
	assert.Len(t, fs.GetChildren(docs.ID), 1)
}

func TestShortcutDropsContentID(t *testing.T) {
	fs, _ := newSeeded(t)

	n, err := fs.CreateFile("Calc", mustFind(t, fs, "/Desktop").ID, types.FileAppShortcut, "calculator", "ignored")
	require.NoError(t, err)
	assert.Empty(t, n.ContentID)
}

func TestPathRoundTrip(t *testing.T) {
	fs, _ := newSeeded(t)

	for nodeID := range fs.Nodes() {
		p, ok := fs.PathOf(nodeID)
		require.True(t, ok)
		n, ok := fs.FindNodeByPath(p)
		require.True(t, ok, p)
		assert.Equal(t, nodeID, n.ID, p)
	}

	_, ok := fs.PathOf("node_missing")
	assert.False(t, ok)
}

func TestGetChildrenOfFileIsEmpty(t *testing.T) {
	fs, _ := newSeeded(t)
	shortcut := fs.GetChildren(mustFind(t, fs, "/Applications").ID)[0]

	assert.Empty(t, fs.GetChildren(shortcut.ID))
	assert.Empty(t, fs.GetChildren("node_missing"))
}

func TestRenameMoveDelete(t *testing.T) {
	fs, _ := newSeeded(t)
	docs := mustFind(t, fs, "/Documents")
	desktop := mustFind(t, fs, "/Desktop")

	folder, err := fs.CreateFolder("Work", docs.ID)
	require.NoError(t, err)
	file, err := fs.CreateFile("Plan", folder.ID, types.FileDocument, "notepad", "doc-1")
	require.NoError(t, err)

	require.NoError(t, fs.Rename(folder.ID, "Projects"))
	mustFind(t, fs, "/Documents/Projects/Plan")

	require.NoError(t, fs.Move(folder.ID, desktop.ID))
	mustFind(t, fs, "/Desktop/Projects/Plan")
	assert.Error(t, fs.Move(folder.ID, file.ID), "files cannot hold children")
	assert.Error(t, fs.Move(desktop.ID, folder.ID), "cycle")

	assert.ErrorIs(t, fs.Rename(RootID, "x"), ErrRootReadonly)
	_, err = fs.Delete(RootID)
	assert.ErrorIs(t, err, ErrRootReadonly)

	removed, err := fs.Delete(folder.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{folder.ID, file.ID}, removed)
	_, ok := fs.GetNode(file.ID)
	assert.False(t, ok)
	assert.NoError(t, fs.Validate())
}

func TestGlob(t *testing.T) {
	fs, _ := newSeeded(t)
	docs := mustFind(t, fs, "/Documents")
	_, err := fs.CreateFile("a.txt", docs.ID, types.FileDocument, "notepad", "1")
	require.NoError(t, err)
	_, err = fs.CreateFile("b.md", docs.ID, types.FileDocument, "notepad", "2")
	require.NoError(t, err)

	matches, err := fs.Glob("/Documents/*.txt")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "/Documents/a.txt", matches[0].Path)

	matches, err = fs.Glob("/Desktop/**/Terminal")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "/Desktop/Apps/Dev Apps/Terminal", matches[0].Path)

	_, err = fs.Glob("/[")
	assert.Error(t, err)
}

func TestSubscribersRunAfterMutation(t *testing.T) {
	fs, _ := newSeeded(t)
	calls := 0
	fs.Subscribe(func() { calls++ })

	_, err := fs.CreateFolder("x", RootID)
	require.NoError(t, err)
	_, err = fs.CreateFolder("x", RootID)
	require.Error(t, err)

	assert.Equal(t, 1, calls)
}

func TestDesktopFolderFallsBackToCategory(t *testing.T) {
	assert.Equal(t, FolderGames, desktopFolder(types.AppDefinition{ID: "chess", Category: types.CategoryGame}))
	assert.Equal(t, FolderUtilities, desktopFolder(types.AppDefinition{ID: "clock"}))
	assert.Equal(t, FolderDevApps, desktopFolder(types.AppDefinition{ID: "unknown"}))
}
