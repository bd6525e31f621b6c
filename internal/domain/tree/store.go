package tree

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound  = errors.New("tree: node not found")
	ErrExists    = errors.New("tree: node already exists")
	ErrCycle     = errors.New("tree: move would create a cycle")
	ErrRoot      = errors.New("tree: operation not allowed on root")
	ErrNoRoot    = errors.New("tree: no root")
	ErrNotParent = errors.New("tree: node cannot have children")
)

// Node is one entry in the arena
type Node[T any] struct {
	ID       string
	ParentID string // empty only for the root
	ChildIDs []string
	Value    T
}

// Store is an arena of nodes keyed by id
type Store[T any] struct {
	nodes  map[string]*Node[T]
	rootID string

	// canHaveChildren decides which values accept children; nil allows all
	canHaveChildren func(T) bool
}

// New creates an empty store
func New[T any](canHaveChildren func(T) bool) *Store[T] {
	return &Store[T]{
		nodes:           make(map[string]*Node[T]),
		canHaveChildren: canHaveChildren,
	}
}

// AddRoot installs the root node. A store has exactly one root.
func (s *Store[T]) AddRoot(id string, value T) error {
	if s.rootID != "" {
		return fmt.Errorf("root %s: %w", s.rootID, ErrExists)
	}
	if _, ok := s.nodes[id]; ok {
		return fmt.Errorf("%s: %w", id, ErrExists)
	}
	s.nodes[id] = &Node[T]{ID: id, Value: value}
	s.rootID = id
	return nil
}

// RootID returns the root id, or "" for an empty store
func (s *Store[T]) RootID() string {
	return s.rootID
}

// Insert appends a new node to the end of parentID's children
func (s *Store[T]) Insert(parentID, id string, value T) error {
	parent, ok := s.nodes[parentID]
	if !ok {
		return fmt.Errorf("parent %s: %w", parentID, ErrNotFound)
	}
	if !s.acceptsChildren(parent) {
		return fmt.Errorf("parent %s: %w", parentID, ErrNotParent)
	}
	if _, ok := s.nodes[id]; ok {
		return fmt.Errorf("%s: %w", id, ErrExists)
	}

	s.nodes[id] = &Node[T]{ID: id, ParentID: parentID, Value: value}
	parent.ChildIDs = append(parent.ChildIDs, id)
	return nil
}

// Get returns a copy of the node
func (s *Store[T]) Get(id string) (Node[T], bool) {
	n, ok := s.nodes[id]
	if !ok {
		return Node[T]{}, false
	}
	return n.copy(), true
}

// Has reports whether id exists
func (s *Store[T]) Has(id string) bool {
	_, ok := s.nodes[id]
	return ok
}

// Children returns copies of id's children in insertion order
func (s *Store[T]) Children(id string) []Node[T] {
	n, ok := s.nodes[id]
	if !ok {
		return nil
	}
	out := make([]Node[T], 0, len(n.ChildIDs))
	for _, cid := range n.ChildIDs {
		if c, ok := s.nodes[cid]; ok {
			out = append(out, c.copy())
		}
	}
	return out
}

// Update replaces the value of an existing node
func (s *Store[T]) Update(id string, fn func(T) T) error {
	n, ok := s.nodes[id]
	if !ok {
		return fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	n.Value = fn(n.Value)
	return nil
}

// Move reparents id under newParentID, appending it to the new parent's children
func (s *Store[T]) Move(id, newParentID string) error {
	n, ok := s.nodes[id]
	if !ok {
		return fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	if id == s.rootID {
		return ErrRoot
	}
	target, ok := s.nodes[newParentID]
	if !ok {
		return fmt.Errorf("parent %s: %w", newParentID, ErrNotFound)
	}
	if !s.acceptsChildren(target) {
		return fmt.Errorf("parent %s: %w", newParentID, ErrNotParent)
	}
	for cur := target; cur != nil; cur = s.nodes[cur.ParentID] {
		if cur.ID == id {
			return fmt.Errorf("%s under %s: %w", id, newParentID, ErrCycle)
		}
		if cur.ParentID == "" {
			break
		}
	}
	if n.ParentID == newParentID {
		return nil
	}

	if old, ok := s.nodes[n.ParentID]; ok {
		old.ChildIDs = removeID(old.ChildIDs, id)
	}
	n.ParentID = newParentID
	target.ChildIDs = append(target.ChildIDs, id)
	return nil
}

// DeleteSubtree removes id and all of its descendants, returning the removed ids
func (s *Store[T]) DeleteSubtree(id string) ([]string, error) {
	n, ok := s.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	if id == s.rootID {
		return nil, ErrRoot
	}

	var removed []string
	s.walk(id, func(node *Node[T]) bool {
		removed = append(removed, node.ID)
		return true
	})
	for _, rid := range removed {
		delete(s.nodes, rid)
	}
	if parent, ok := s.nodes[n.ParentID]; ok {
		parent.ChildIDs = removeID(parent.ChildIDs, id)
	}
	return removed, nil
}

// Walk visits id and its descendants in pre-order. Returning false from fn
// skips the node's children.
func (s *Store[T]) Walk(id string, fn func(Node[T]) bool) {
	s.walk(id, func(n *Node[T]) bool { return fn(n.copy()) })
}

func (s *Store[T]) walk(id string, fn func(*Node[T]) bool) {
	n, ok := s.nodes[id]
	if !ok {
		return
	}
	if !fn(n) {
		return
	}
	for _, cid := range n.ChildIDs {
		s.walk(cid, fn)
	}
}

// Path returns the ids from the root down to id
func (s *Store[T]) Path(id string) ([]string, error) {
	var rev []string
	for cur := id; ; {
		n, ok := s.nodes[cur]
		if !ok {
			return nil, fmt.Errorf("%s: %w", cur, ErrNotFound)
		}
		rev = append(rev, cur)
		if len(rev) > len(s.nodes) {
			return nil, fmt.Errorf("%s: %w", id, ErrCycle)
		}
		if n.ParentID == "" {
			break
		}
		cur = n.ParentID
	}
	for i, j := 0, len(rev)-1; i < j; i, j = i+1, j-1 {
		rev[i], rev[j] = rev[j], rev[i]
	}
	return rev, nil
}

// Len returns the number of nodes
func (s *Store[T]) Len() int {
	return len(s.nodes)
}

// IDs returns every node id in no particular order
func (s *Store[T]) IDs() []string {
	out := make([]string, 0, len(s.nodes))
	for id := range s.nodes {
		out = append(out, id)
	}
	return out
}

// Clone returns an independent copy of the store. Values are copied by assignment.
func (s *Store[T]) Clone() *Store[T] {
	c := New[T](s.canHaveChildren)
	c.rootID = s.rootID
	for id, n := range s.nodes {
		cp := n.copy()
		c.nodes[id] = &cp
	}
	return c
}

// Validate checks structural integrity: a single root, bidirectional
// parent/child links, no orphans and no cycles.
func (s *Store[T]) Validate() error {
	var errs []error
	if s.rootID == "" {
		if len(s.nodes) == 0 {
			return nil
		}
		return ErrNoRoot
	}
	if root, ok := s.nodes[s.rootID]; !ok || root.ParentID != "" {
		errs = append(errs, fmt.Errorf("root %s missing or parented", s.rootID))
	}

	for id, n := range s.nodes {
		if id != n.ID {
			errs = append(errs, fmt.Errorf("node keyed %s has id %s", id, n.ID))
		}
		if id != s.rootID {
			parent, ok := s.nodes[n.ParentID]
			if !ok {
				errs = append(errs, fmt.Errorf("node %s: parent %s missing", id, n.ParentID))
			} else if !containsID(parent.ChildIDs, id) {
				errs = append(errs, fmt.Errorf("node %s: not listed by parent %s", id, n.ParentID))
			}
		}
		if len(n.ChildIDs) > 0 && !s.acceptsChildren(n) {
			errs = append(errs, fmt.Errorf("node %s: has children but cannot be a parent", id))
		}
		seen := make(map[string]bool, len(n.ChildIDs))
		for _, cid := range n.ChildIDs {
			if seen[cid] {
				errs = append(errs, fmt.Errorf("node %s: child %s listed twice", id, cid))
			}
			seen[cid] = true
			child, ok := s.nodes[cid]
			if !ok {
				errs = append(errs, fmt.Errorf("node %s: child %s missing", id, cid))
			} else if child.ParentID != id {
				errs = append(errs, fmt.Errorf("node %s: child %s points at parent %s", id, cid, child.ParentID))
			}
		}
	}

	reached := 0
	visited := make(map[string]bool, len(s.nodes))
	s.walk(s.rootID, func(n *Node[T]) bool {
		if visited[n.ID] {
			errs = append(errs, fmt.Errorf("node %s: %w", n.ID, ErrCycle))
			return false
		}
		visited[n.ID] = true
		reached++
		return true
	})
	if reached != len(s.nodes) {
		errs = append(errs, fmt.Errorf("%d of %d nodes unreachable from root", len(s.nodes)-reached, len(s.nodes)))
	}

	return errors.Join(errs...)
}

// load installs a node verbatim without link maintenance; Validate afterwards
func (s *Store[T]) load(n Node[T]) {
	cp := n.copy()
	s.nodes[n.ID] = &cp
	if n.ParentID == "" {
		s.rootID = n.ID
	}
}

// FromNodes rebuilds a store from previously exported nodes. The result is
// validated; a store that fails validation is returned with the error.
func FromNodes[T any](nodes []Node[T], canHaveChildren func(T) bool) (*Store[T], error) {
	s := New[T](canHaveChildren)
	roots := 0
	for _, n := range nodes {
		if n.ParentID == "" {
			roots++
		}
		s.load(n)
	}
	if roots > 1 {
		return s, fmt.Errorf("%d roots: %w", roots, ErrExists)
	}
	if len(nodes) > 0 && roots == 0 {
		return s, ErrNoRoot
	}
	return s, s.Validate()
}

func (s *Store[T]) acceptsChildren(n *Node[T]) bool {
	return s.canHaveChildren == nil || s.canHaveChildren(n.Value)
}

func (n *Node[T]) copy() Node[T] {
	cp := *n
	cp.ChildIDs = append([]string(nil), n.ChildIDs...)
	return cp
}

func removeID(ids []string, id string) []string {
	out := ids[:0:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
