package vfs

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/tree"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/storage"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/types"
)

// StorageKey is the record holding the flat node map
const StorageKey = "desktop.vfs"

// Load restores the persisted tree verbatim, or seeds a new one from apps
// when nothing usable is stored. It reports whether seeding happened.
func (fs *FileSystem) Load(apps []types.AppDefinition) (seeded bool, err error) {
	t, err := fs.restore()
	if err == nil {
		fs.mu.Lock()
		fs.tree = t
		fs.mu.Unlock()
		fs.metrics.RecordVFSOp("restore", nil, fs.Len())
		fs.logger.Info("Restored file system", zap.Int("nodes", t.Len()))
		return false, nil
	}

	if !errors.Is(err, errNoRecord) {
		fs.logger.Warn("Discarding stored file system", zap.Error(err))
	}
	if err := fs.Seed(apps); err != nil {
		return false, err
	}
	fs.logger.Info("Seeded file system", zap.Int("apps", len(apps)), zap.Int("nodes", fs.Len()))
	return true, nil
}

var errNoRecord = errors.New("vfs: no stored record")

func (fs *FileSystem) restore() (*tree.Store[entry], error) {
	if fs.store == nil {
		return nil, errNoRecord
	}

	var nodes types.NodeMap
	found, err := storage.LoadJSON(fs.store, StorageKey, &nodes)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errNoRecord
	}
	return fromNodeMap(nodes)
}

// fromNodeMap rebuilds a tree from a stored map, rejecting anything without
// a single valid root or with broken links
func fromNodeMap(nodes types.NodeMap) (*tree.Store[entry], error) {
	root, ok := nodes[RootID]
	if !ok || root.ParentID != nil || root.Type != types.NodeFolder {
		return nil, fmt.Errorf("stored tree has no valid root")
	}

	list := make([]tree.Node[entry], 0, len(nodes))
	for key, node := range nodes {
		if node.ID != key {
			return nil, fmt.Errorf("node keyed %q has id %q", key, node.ID)
		}
		list = append(list, fromNode(node))
	}

	t, err := tree.FromNodes(list, isFolder)
	if err != nil {
		return nil, err
	}
	if err := validateTree(t); err != nil {
		return nil, err
	}
	return t, nil
}

// persist writes the current node map. Failures are logged and counted;
// in-memory state stays authoritative.
func (fs *FileSystem) persist() {
	if fs.store == nil {
		return
	}

	fs.persistMu.Lock()
	defer fs.persistMu.Unlock()

	nodes := fs.Nodes()
	err := storage.SaveJSON(fs.store, StorageKey, nodes)
	fs.metrics.RecordPersist("vfs", err)
	if err != nil {
		fs.logger.Error("Failed to persist file system", zap.Error(err))
	}
}
