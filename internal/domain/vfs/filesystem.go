package vfs

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/tree"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/storage"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/id"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/types"
)

const (
	// RootID is the id of the disk root
	RootID = "root"
	// RootName is the display name of the disk root
	RootName = "Macintosh HD"
)

var (
	ErrNotFolder    = errors.New("vfs: parent is not a folder")
	ErrNotFound     = errors.New("vfs: node not found")
	ErrInvalidName  = errors.New("vfs: invalid name")
	ErrNameTaken    = errors.New("vfs: name already used in folder")
	ErrInvalidFile  = errors.New("vfs: invalid file definition")
	ErrRootReadonly = errors.New("vfs: root cannot be moved, renamed or deleted")
)

// entry is the per-node payload kept in the tree store
type entry struct {
	Name      string
	Type      types.NodeType
	FileType  types.FileType
	AppID     string
	ContentID string
}

func isFolder(e entry) bool { return e.Type == types.NodeFolder }

// FileSystem owns the node table
type FileSystem struct {
	mu          sync.RWMutex
	tree        *tree.Store[entry]
	subscribers []func()

	persistMu sync.Mutex
	store     storage.Store
	logger    *zap.Logger
	metrics   *monitoring.Metrics
}

// New creates a file system holding only the root folder. Call Load or Seed
// to populate it.
func New(store storage.Store, logger *zap.Logger) *FileSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileSystem{
		tree:   emptyTree(),
		store:  store,
		logger: logger,
	}
}

// WithMetrics adds metrics tracking to the file system
func (fs *FileSystem) WithMetrics(metrics *monitoring.Metrics) *FileSystem {
	fs.metrics = metrics
	return fs
}

func emptyTree() *tree.Store[entry] {
	t := tree.New(isFolder)
	if err := t.AddRoot(RootID, entry{Name: RootName, Type: types.NodeFolder}); err != nil {
		panic(err)
	}
	return t
}

// ============================================================================
// Lookups (total, never fail loudly)
// ============================================================================

// GetRoot returns the root folder
func (fs *FileSystem) GetRoot() types.Node {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	n, _ := fs.tree.Get(fs.tree.RootID())
	return toNode(n)
}

// GetNode returns a node by id
func (fs *FileSystem) GetNode(nodeID string) (types.Node, bool) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	n, ok := fs.tree.Get(nodeID)
	if !ok {
		return types.Node{}, false
	}
	return toNode(n), true
}

// GetChildren returns a folder's children in insertion order; empty for
// files and unknown ids
func (fs *FileSystem) GetChildren(folderID string) []types.Node {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	n, ok := fs.tree.Get(folderID)
	if !ok || !isFolder(n.Value) {
		return []types.Node{}
	}
	children := fs.tree.Children(folderID)
	out := make([]types.Node, len(children))
	for i, c := range children {
		out[i] = toNode(c)
	}
	return out
}

// Nodes returns a copy of the raw node map
func (fs *FileSystem) Nodes() types.NodeMap {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return fs.exportLocked()
}

// Len returns the node count
func (fs *FileSystem) Len() int {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return fs.tree.Len()
}

// ============================================================================
// Mutations
// ============================================================================

// CreateFile adds a file node under parentID. It fails when the parent is
// missing or is not a folder, which indicates a caller bug. Names are not
// required to be unique among siblings; FindNodeByPath resolves to the
// first match.
func (fs *FileSystem) CreateFile(name, parentID string, fileType types.FileType, appID, contentID string) (types.Node, error) {
	e := entry{Name: name, Type: types.NodeFile, FileType: fileType, AppID: appID}
	if fileType == types.FileDocument {
		e.ContentID = contentID
	}
	switch {
	case fileType != types.FileAppShortcut && fileType != types.FileDocument:
		return types.Node{}, fmt.Errorf("file type %q: %w", fileType, ErrInvalidFile)
	case appID == "":
		return types.Node{}, fmt.Errorf("file %q has no app: %w", name, ErrInvalidFile)
	}

	if strings.Contains(name, "/") {
		return types.Node{}, fmt.Errorf("%q: %w", name, ErrInvalidName)
	}

	node, err := fs.insert(parentID, e, false)
	fs.afterMutation("create_file", err)
	return node, err
}

// CreateFolder adds an empty folder under parentID. Folder names must be
// non-blank and unique within the parent.
func (fs *FileSystem) CreateFolder(name, parentID string) (types.Node, error) {
	if err := validateName(name); err != nil {
		return types.Node{}, err
	}
	node, err := fs.insert(parentID, entry{Name: name, Type: types.NodeFolder}, true)
	fs.afterMutation("create_folder", err)
	return node, err
}

func (fs *FileSystem) insert(parentID string, e entry, unique bool) (types.Node, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	parent, ok := fs.tree.Get(parentID)
	if !ok {
		return types.Node{}, fmt.Errorf("parent %s: %w", parentID, ErrNotFolder)
	}
	if !isFolder(parent.Value) {
		return types.Node{}, fmt.Errorf("parent %s (%s): %w", parentID, parent.Value.Name, ErrNotFolder)
	}
	if unique && fs.childNamedLocked(parentID, e.Name) != "" {
		return types.Node{}, fmt.Errorf("%q in %s: %w", e.Name, parentID, ErrNameTaken)
	}

	nodeID := id.NewNodeID().String()
	if err := fs.tree.Insert(parentID, nodeID, e); err != nil {
		return types.Node{}, fmt.Errorf("failed to insert %q: %w", e.Name, err)
	}
	n, _ := fs.tree.Get(nodeID)
	return toNode(n), nil
}

// Rename changes a node's display name
func (fs *FileSystem) Rename(nodeID, name string) error {
	err := fs.rename(nodeID, name)
	fs.afterMutation("rename", err)
	return err
}

func (fs *FileSystem) rename(nodeID, name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	if nodeID == RootID {
		return ErrRootReadonly
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	n, ok := fs.tree.Get(nodeID)
	if !ok {
		return fmt.Errorf("%s: %w", nodeID, ErrNotFound)
	}
	if other := fs.childNamedLocked(n.ParentID, name); other != "" && other != nodeID {
		return fmt.Errorf("%q: %w", name, ErrNameTaken)
	}
	return fs.tree.Update(nodeID, func(e entry) entry {
		e.Name = name
		return e
	})
}

// Move reparents a node under another folder
func (fs *FileSystem) Move(nodeID, newParentID string) error {
	err := fs.move(nodeID, newParentID)
	fs.afterMutation("move", err)
	return err
}

func (fs *FileSystem) move(nodeID, newParentID string) error {
	if nodeID == RootID {
		return ErrRootReadonly
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	n, ok := fs.tree.Get(nodeID)
	if !ok {
		return fmt.Errorf("%s: %w", nodeID, ErrNotFound)
	}
	target, ok := fs.tree.Get(newParentID)
	if !ok || !isFolder(target.Value) {
		return fmt.Errorf("target %s: %w", newParentID, ErrNotFolder)
	}
	if n.ParentID != newParentID && fs.childNamedLocked(newParentID, n.Value.Name) != "" {
		return fmt.Errorf("%q in %s: %w", n.Value.Name, newParentID, ErrNameTaken)
	}
	return fs.tree.Move(nodeID, newParentID)
}

// Delete removes a node and everything below it, returning the removed ids
func (fs *FileSystem) Delete(nodeID string) ([]string, error) {
	removed, err := fs.delete(nodeID)
	fs.afterMutation("delete", err)
	return removed, err
}

func (fs *FileSystem) delete(nodeID string) ([]string, error) {
	if nodeID == RootID {
		return nil, ErrRootReadonly
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	if !fs.tree.Has(nodeID) {
		return nil, fmt.Errorf("%s: %w", nodeID, ErrNotFound)
	}
	return fs.tree.DeleteSubtree(nodeID)
}

// Subscribe registers fn to run after every successful mutation
func (fs *FileSystem) Subscribe(fn func()) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.subscribers = append(fs.subscribers, fn)
}

func (fs *FileSystem) afterMutation(op string, err error) {
	fs.metrics.RecordVFSOp(op, err, fs.Len())
	if err != nil {
		return
	}
	fs.persist()

	fs.mu.RLock()
	subs := append([]func(){}, fs.subscribers...)
	fs.mu.RUnlock()
	for _, fn := range subs {
		fn()
	}
}

// ============================================================================
// Integrity
// ============================================================================

// Validate reports every structural violation: broken parent/child links,
// orphans, cycles and folder/file variant mix-ups
func (fs *FileSystem) Validate() error {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return validateTree(fs.tree)
}

func validateTree(t *tree.Store[entry]) error {
	errs := []error{t.Validate()}
	for _, nodeID := range t.IDs() {
		n, _ := t.Get(nodeID)
		if err := validateEntry(n.ID, n.Value); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func validateEntry(nodeID string, e entry) error {
	switch e.Type {
	case types.NodeFolder:
		if e.FileType != "" || e.AppID != "" || e.ContentID != "" {
			return fmt.Errorf("folder %s carries file fields", nodeID)
		}
	case types.NodeFile:
		if e.FileType != types.FileAppShortcut && e.FileType != types.FileDocument {
			return fmt.Errorf("file %s has file type %q", nodeID, e.FileType)
		}
		if e.AppID == "" {
			return fmt.Errorf("file %s has no app", nodeID)
		}
		if e.FileType == types.FileAppShortcut && e.ContentID != "" {
			return fmt.Errorf("shortcut %s carries a content id", nodeID)
		}
	default:
		return fmt.Errorf("node %s has type %q", nodeID, e.Type)
	}
	return nil
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" || strings.Contains(name, "/") {
		return fmt.Errorf("%q: %w", name, ErrInvalidName)
	}
	return nil
}

// childNamedLocked returns the id of parentID's first child called name
func (fs *FileSystem) childNamedLocked(parentID, name string) string {
	for _, c := range fs.tree.Children(parentID) {
		if c.Value.Name == name {
			return c.ID
		}
	}
	return ""
}

// ============================================================================
// Conversion between the tree payload and the public node record
// ============================================================================

func toNode(n tree.Node[entry]) types.Node {
	node := types.Node{
		ID:   n.ID,
		Name: n.Value.Name,
		Type: n.Value.Type,
	}
	if n.ParentID != "" {
		parent := n.ParentID
		node.ParentID = &parent
	}
	if n.Value.Type == types.NodeFolder {
		node.ChildrenIDs = append([]string{}, n.ChildIDs...)
		return node
	}
	node.FileType = n.Value.FileType
	node.AppID = n.Value.AppID
	node.ContentID = n.Value.ContentID
	return node
}

func fromNode(node types.Node) tree.Node[entry] {
	n := tree.Node[entry]{
		ID: node.ID,
		Value: entry{
			Name:      node.Name,
			Type:      node.Type,
			FileType:  node.FileType,
			AppID:     node.AppID,
			ContentID: node.ContentID,
		},
	}
	if node.ParentID != nil {
		n.ParentID = *node.ParentID
	}
	n.ChildIDs = append([]string(nil), node.ChildrenIDs...)
	return n
}

func (fs *FileSystem) exportLocked() types.NodeMap {
	out := make(types.NodeMap, fs.tree.Len())
	for _, nodeID := range fs.tree.IDs() {
		n, _ := fs.tree.Get(nodeID)
		out[nodeID] = toNode(n)
	}
	return out
}
