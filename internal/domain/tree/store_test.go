package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	name   string
	folder bool
}

func folderOnly(e entry) bool { return e.folder }

func newTestStore(t *testing.T) *Store[entry] {
	t.Helper()
	s := New(folderOnly)
	require.NoError(t, s.AddRoot("root", entry{name: "", folder: true}))
	require.NoError(t, s.Insert("root", "a", entry{name: "a", folder: true}))
	require.NoError(t, s.Insert("root", "b", entry{name: "b", folder: true}))
	require.NoError(t, s.Insert("a", "a1", entry{name: "a1", folder: true}))
	require.NoError(t, s.Insert("a1", "f", entry{name: "f"}))
	return s
}

func TestInsertKeepsOrderAndLinks(t *testing.T) {
	s := newTestStore(t)

	root, ok := s.Get("root")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, root.ChildIDs)

	f, ok := s.Get("f")
	require.True(t, ok)
	assert.Equal(t, "a1", f.ParentID)
	assert.NoError(t, s.Validate())
}

func TestInsertErrors(t *testing.T) {
	s := newTestStore(t)

	assert.ErrorIs(t, s.Insert("missing", "x", entry{}), ErrNotFound)
	assert.ErrorIs(t, s.Insert("f", "x", entry{}), ErrNotParent)
	assert.ErrorIs(t, s.Insert("root", "a", entry{folder: true}), ErrExists)
	assert.ErrorIs(t, s.AddRoot("other", entry{}), ErrExists)
	assert.NoError(t, s.Validate())
}

func TestGetReturnsCopy(t *testing.T) {
	s := newTestStore(t)

	root, _ := s.Get("root")
	root.ChildIDs[0] = "tampered"

	again, _ := s.Get("root")
	assert.Equal(t, "a", again.ChildIDs[0])
}

func TestMove(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Move("a1", "b"))

	a, _ := s.Get("a")
	b, _ := s.Get("b")
	a1, _ := s.Get("a1")
	assert.Empty(t, a.ChildIDs)
	assert.Equal(t, []string{"a1"}, b.ChildIDs)
	assert.Equal(t, "b", a1.ParentID)
	assert.NoError(t, s.Validate())
}

func TestMoveRejectsCycle(t *testing.T) {
	s := newTestStore(t)

	assert.ErrorIs(t, s.Move("a", "a1"), ErrCycle)
	assert.ErrorIs(t, s.Move("a", "a"), ErrCycle)
	assert.ErrorIs(t, s.Move("root", "a"), ErrRoot)
	assert.ErrorIs(t, s.Move("a", "f"), ErrNotParent)
	assert.NoError(t, s.Validate())
}

func TestDeleteSubtree(t *testing.T) {
	s := newTestStore(t)

	removed, err := s.DeleteSubtree("a")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "a1", "f"}, removed)
	assert.Equal(t, 2, s.Len())
	assert.False(t, s.Has("f"))

	root, _ := s.Get("root")
	assert.Equal(t, []string{"b"}, root.ChildIDs)
	assert.NoError(t, s.Validate())

	_, err = s.DeleteSubtree("root")
	assert.ErrorIs(t, err, ErrRoot)
}

func TestPathAndWalk(t *testing.T) {
	s := newTestStore(t)

	path, err := s.Path("f")
	require.NoError(t, err)
	assert.Equal(t, []string{"root", "a", "a1", "f"}, path)

	var order []string
	s.Walk("root", func(n Node[entry]) bool {
		order = append(order, n.ID)
		return n.ID != "a1"
	})
	assert.Equal(t, []string{"root", "a", "a1", "b"}, order)
}

func TestFromNodesDetectsInconsistency(t *testing.T) {
	good := []Node[entry]{
		{ID: "root", ChildIDs: []string{"x"}, Value: entry{folder: true}},
		{ID: "x", ParentID: "root", Value: entry{name: "x"}},
	}
	s, err := FromNodes(good, folderOnly)
	require.NoError(t, err)
	assert.Equal(t, "root", s.RootID())

	dangling := []Node[entry]{
		{ID: "root", ChildIDs: []string{"x", "ghost"}, Value: entry{folder: true}},
		{ID: "x", ParentID: "root", Value: entry{name: "x"}},
	}
	_, err = FromNodes(dangling, folderOnly)
	assert.Error(t, err)

	unlisted := []Node[entry]{
		{ID: "root", Value: entry{folder: true}},
		{ID: "x", ParentID: "root", Value: entry{name: "x"}},
	}
	_, err = FromNodes(unlisted, folderOnly)
	assert.Error(t, err)

	_, err = FromNodes([]Node[entry]{{ID: "x", ParentID: "y"}}, folderOnly)
	assert.ErrorIs(t, err, ErrNoRoot)
}

func TestClone(t *testing.T) {
	s := newTestStore(t)
	c := s.Clone()

	require.NoError(t, c.Insert("b", "new", entry{name: "new"}))
	assert.False(t, s.Has("new"))
	assert.True(t, c.Has("new"))
	assert.NoError(t, c.Validate())
}
