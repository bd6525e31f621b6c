package window

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/notes"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/registry"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/storage"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/types"
)

type mockNotes struct {
	mock.Mock
}

func (m *mockNotes) Create() (notes.Note, error) {
	args := m.Called()
	return args.Get(0).(notes.Note), args.Error(1)
}

func (m *mockNotes) Delete(noteID string) error {
	args := m.Called(noteID)
	return args.Error(0)
}

type fixedInset int

func (f fixedInset) TopInset() int { return int(f) }

func newRegistry(t *testing.T) *registry.Manager {
	t.Helper()
	r := registry.NewManager()
	require.NoError(t, r.Register(types.AppDefinition{ID: "calculator", Name: "Calculator", DefaultSize: types.Size{Width: 260, Height: 360}}))
	require.NoError(t, r.Register(types.AppDefinition{ID: "notepad", Name: "Notepad", DefaultSize: types.Size{Width: 500, Height: 400}}))
	require.NoError(t, r.Register(types.AppDefinition{ID: registry.StickyNoteAppID, Name: "Sticky Note", DefaultSize: types.Size{Width: 200, Height: 200}, Hidden: true}))
	return r
}

func newTestManager(t *testing.T) (*Manager, *mockNotes, storage.Store) {
	t.Helper()
	n := &mockNotes{}
	store := storage.NewMemoryStore()
	m := NewManager(newRegistry(t), n, fixedInset(24), store, nil)
	return m, n, store
}

func open(t *testing.T, m *Manager, appID string) types.WindowInstance {
	t.Helper()
	w, err := m.OpenApp(appID, nil)
	require.NoError(t, err)
	require.NotNil(t, w)
	return *w
}

func active(m *Manager) string {
	id, _ := m.ActiveWindowID()
	return id
}

func TestOpenAppUnknownIsNoop(t *testing.T) {
	m, _, _ := newTestManager(t)
	calls := 0
	m.Subscribe(func() { calls++ })

	w, err := m.OpenApp("missing", nil)
	assert.ErrorIs(t, err, ErrUnknownApp)
	assert.Zero(t, calls)
	assert.Nil(t, w)
	assert.Empty(t, m.Windows())
	assert.Equal(t, BaseZIndex, m.State().NextZIndex)
}

func TestOpenCalculatorTwice(t *testing.T) {
	m, _, _ := newTestManager(t)

	a := open(t, m, "calculator")
	b := open(t, m, "calculator")

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, types.Size{Width: 260, Height: 360}, a.Size)
	assert.Equal(t, 10, a.ZIndex)
	assert.Equal(t, 11, b.ZIndex)
	assert.Equal(t, b.ID, active(m))
	assert.Equal(t, 12, m.State().NextZIndex)

	// centred in 1280x800, second one cascaded by 20
	assert.Equal(t, types.Position{X: 510, Y: 220}, a.Position)
	assert.Equal(t, types.Position{X: 530, Y: 240}, b.Position)
}

func TestOpenAppClampsBelowInset(t *testing.T) {
	m, _, _ := newTestManager(t)
	require.NoError(t, m.SetViewport(Viewport{Width: 400, Height: 300}))

	w := open(t, m, "notepad")
	assert.Equal(t, 24, w.Position.Y)
	assert.Equal(t, -50, w.Position.X)
}

func TestOpenAppCopiesProps(t *testing.T) {
	m, _, _ := newTestManager(t)

	props := types.Props{types.PropContentID: "doc-1"}
	w, err := m.OpenApp("notepad", props)
	require.NoError(t, err)
	props[types.PropContentID] = "tampered"

	stored, ok := m.Window(w.ID)
	require.True(t, ok)
	assert.Equal(t, "doc-1", stored.Props[types.PropContentID])
}

func TestFocusRaisesAndIgnoresActive(t *testing.T) {
	m, _, _ := newTestManager(t)
	a := open(t, m, "calculator")
	b := open(t, m, "notepad")

	assert.False(t, m.FocusWindow(b.ID), "already active")
	assert.False(t, m.FocusWindow("win_missing"))
	assert.Equal(t, 12, m.State().NextZIndex)

	assert.True(t, m.FocusWindow(a.ID))
	got, _ := m.Window(a.ID)
	assert.Equal(t, 12, got.ZIndex)
	assert.Equal(t, a.ID, active(m))
	assert.Equal(t, []string{b.ID, a.ID}, m.Stack())
}

func TestCloseFocusesHighestRemaining(t *testing.T) {
	m, _, _ := newTestManager(t)
	a := open(t, m, "calculator")
	b := open(t, m, "notepad")
	c := open(t, m, "calculator")
	// z: A1=10 B=11 C=12, then raise B -> 13, raise A -> 14
	require.True(t, m.FocusWindow(b.ID))
	require.True(t, m.FocusWindow(a.ID))

	require.True(t, m.CloseWindow(a.ID))
	assert.Equal(t, b.ID, active(m))

	require.True(t, m.CloseWindow(c.ID))
	assert.Equal(t, b.ID, active(m), "closing an inactive window keeps focus")

	require.True(t, m.CloseWindow(b.ID))
	_, ok := m.ActiveWindowID()
	assert.False(t, ok)
	assert.False(t, m.CloseWindow(b.ID))
}

func TestSingleActiveAfterEveryOperation(t *testing.T) {
	m, _, _ := newTestManager(t)
	check := func() {
		t.Helper()
		st := m.State()
		if len(st.Windows) == 0 {
			assert.Nil(t, st.ActiveWindowID)
			return
		}
		require.NotNil(t, st.ActiveWindowID)
		top := topmost(st.Windows)
		assert.Equal(t, *top, *st.ActiveWindowID)
		zs := map[int]bool{}
		for _, w := range st.Windows {
			assert.False(t, zs[w.ZIndex], "duplicate z")
			zs[w.ZIndex] = true
			assert.Less(t, w.ZIndex, st.NextZIndex)
		}
	}

	a := open(t, m, "calculator")
	check()
	b := open(t, m, "notepad")
	check()
	m.FocusWindow(a.ID)
	check()
	m.SplitWindow(b.ID, DirectionRight)
	check()
	m.CloseWindow(b.ID)
	check()
	m.CloseWindow(a.ID)
	check()
}

func TestMoveClampsToInset(t *testing.T) {
	m, _, _ := newTestManager(t)
	w := open(t, m, "calculator")

	require.True(t, m.MoveWindow(w.ID, types.Position{X: -300, Y: 5}))
	got, _ := m.Window(w.ID)
	assert.Equal(t, types.Position{X: -300, Y: 24}, got.Position)

	assert.False(t, m.MoveWindow("win_missing", types.Position{}))
}

func TestResize(t *testing.T) {
	m, _, _ := newTestManager(t)
	w := open(t, m, "calculator")

	require.True(t, m.ResizeWindow(w.ID, types.Size{Width: 10, Height: 20}))
	got, _ := m.Window(w.ID)
	assert.Equal(t, types.Size{Width: 10, Height: 20}, got.Size)
}

func TestSplitWindow(t *testing.T) {
	m, _, _ := newTestManager(t)
	require.NoError(t, m.SetViewport(Viewport{ScrollX: 100, ScrollY: 50, Width: 1000, Height: 700}))
	a := open(t, m, "calculator")
	b := open(t, m, "notepad")

	require.True(t, m.SplitWindow(a.ID, DirectionLeft))
	got, _ := m.Window(a.ID)
	assert.Equal(t, types.Position{X: 100, Y: 74}, got.Position)
	assert.Equal(t, types.Size{Width: 500, Height: 676}, got.Size)
	assert.Equal(t, a.ID, active(m))

	require.True(t, m.SplitWindow(b.ID, DirectionRight))
	got, _ = m.Window(b.ID)
	assert.Equal(t, types.Position{X: 600, Y: 74}, got.Position)
	assert.Equal(t, b.ID, active(m))

	assert.False(t, m.SplitWindow("win_missing", DirectionLeft))
}

func TestSetViewportRejectsEmpty(t *testing.T) {
	m, _, _ := newTestManager(t)
	assert.Error(t, m.SetViewport(Viewport{}))
	assert.Equal(t, DefaultViewport, m.Viewport())
}

func TestOpenStickyNoteDelegates(t *testing.T) {
	m, n, _ := newTestManager(t)
	n.On("Create").Return(notes.Note{ID: "note_1"}, nil).Once()

	w, err := m.OpenApp(registry.StickyNoteAppID, nil)
	require.NoError(t, err)
	assert.Nil(t, w)
	assert.Empty(t, m.Windows(), "window arrives via sync")
	n.AssertExpectations(t)

	n.On("Create").Return(notes.Note{}, errors.New("full")).Once()
	_, err = m.OpenApp(registry.StickyNoteAppID, nil)
	assert.Error(t, err)
}

func TestSyncNotesBijection(t *testing.T) {
	m, _, _ := newTestManager(t)
	calc := open(t, m, "calculator")

	plan := m.SyncNotes([]string{"n1", "n2"})
	assert.Equal(t, []string{"n1", "n2"}, plan.Add)
	assert.Empty(t, plan.Remove)

	st := m.State()
	require.Len(t, st.Windows, 3)
	for _, w := range st.Windows[1:] {
		assert.True(t, w.IsNote)
		assert.Equal(t, registry.StickyNoteAppID, w.AppID)
		assert.Equal(t, types.Size{Width: 200, Height: 200}, w.Size)
	}
	assert.Equal(t, st.Windows[2].ID, active(m), "last synthesised note is focused")

	assert.True(t, m.SyncNotes([]string{"n1", "n2"}).Empty(), "idempotent")

	plan = m.SyncNotes([]string{"n2"})
	assert.Empty(t, plan.Add)
	assert.Len(t, plan.Remove, 1)

	ws := m.Windows()
	require.Len(t, ws, 2)
	assert.Equal(t, calc.ID, ws[0].ID)
	nid, _ := ws[1].Props.NoteID()
	assert.Equal(t, "n2", nid)
}

func TestSyncRemovalNeverDeletesNotes(t *testing.T) {
	m, n, _ := newTestManager(t)
	m.SyncNotes([]string{"n1"})

	m.SyncNotes(nil)
	assert.Empty(t, m.Windows())
	n.AssertNotCalled(t, "Delete", mock.Anything)
}

func TestCloseNoteWindowDeletesNote(t *testing.T) {
	m, n, _ := newTestManager(t)
	m.SyncNotes([]string{"n1"})
	w := m.Windows()[0]
	n.On("Delete", "n1").Return(nil).Once()

	require.True(t, m.CloseWindow(w.ID))
	n.AssertExpectations(t)

	// the collaborator's follow-up sync finds nothing to do
	assert.True(t, m.SyncNotes(nil).Empty())
}

func TestCloseNoteWindowSurvivesDeleteError(t *testing.T) {
	m, n, _ := newTestManager(t)
	m.SyncNotes([]string{"n1"})
	n.On("Delete", "n1").Return(errors.New("gone")).Once()

	assert.True(t, m.CloseWindow(m.Windows()[0].ID))
	assert.Empty(t, m.Windows())
}

func TestSubscribersNotified(t *testing.T) {
	m, _, _ := newTestManager(t)
	calls := 0
	m.Subscribe(func() { calls++ })

	w := open(t, m, "calculator")
	m.FocusWindow(w.ID) // no-op
	m.MoveWindow(w.ID, types.Position{X: 1, Y: 30})
	m.CloseWindow(w.ID)

	assert.Equal(t, 3, calls)
}
