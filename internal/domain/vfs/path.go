package vfs

import (
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/tree"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/types"
)

// FindNodeByPath walks slash-delimited segments from the root, matching
// child names exactly. Empty segments are ignored, so "/" and "" both
// resolve to the root.
func (fs *FileSystem) FindNodeByPath(path string) (types.Node, bool) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	current := fs.tree.RootID()
	for _, segment := range strings.Split(path, "/") {
		if segment == "" {
			continue
		}
		n, _ := fs.tree.Get(current)
		if !isFolder(n.Value) {
			return types.Node{}, false
		}
		next := fs.childNamedLocked(current, segment)
		if next == "" {
			return types.Node{}, false
		}
		current = next
	}

	n, _ := fs.tree.Get(current)
	return toNode(n), true
}

// PathOf returns the absolute path of a node, or false for unknown ids
func (fs *FileSystem) PathOf(nodeID string) (string, bool) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	p, err := pathOf(fs.tree, nodeID)
	if err != nil {
		return "", false
	}
	return p, true
}

func pathOf(t *tree.Store[entry], nodeID string) (string, error) {
	ids, err := t.Path(nodeID)
	if err != nil {
		return "", err
	}
	names := make([]string, 0, len(ids))
	for _, pid := range ids[1:] {
		n, _ := t.Get(pid)
		names = append(names, n.Value.Name)
	}
	return "/" + strings.Join(names, "/"), nil
}

// Match pairs a node with its absolute path
type Match struct {
	Path string     `json:"path"`
	Node types.Node `json:"node"`
}

// Glob returns every node whose path matches a doublestar pattern such as
// "/Documents/**" or "/Desktop/*/Dev Apps", sorted by path
func (fs *FileSystem) Glob(pattern string) ([]Match, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, doublestar.ErrBadPattern
	}

	fs.mu.RLock()
	defer fs.mu.RUnlock()

	var matches []Match
	fs.tree.Walk(fs.tree.RootID(), func(n tree.Node[entry]) bool {
		p, err := pathOf(fs.tree, n.ID)
		if err != nil {
			return false
		}
		if ok, _ := doublestar.Match(pattern, p); ok {
			matches = append(matches, Match{Path: p, Node: toNode(n)})
		}
		return true
	})

	sort.Slice(matches, func(i, j int) bool { return matches[i].Path < matches[j].Path })
	return matches, nil
}
