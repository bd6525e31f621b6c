package types

import "github.com/bytedance/sonic"

// NodeType discriminates VFS nodes
type NodeType string

const (
	NodeFolder NodeType = "folder"
	NodeFile   NodeType = "file"
)

// FileType discriminates VFS files
type FileType string

const (
	FileAppShortcut FileType = "app-shortcut"
	FileDocument    FileType = "document"
)

// Node is a folder or file entry in the VFS tree.
//
// Folders carry ChildrenIDs and never file fields; files carry FileType and
// AppID (plus ContentID for documents) and never ChildrenIDs.
type Node struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	ParentID    *string  `json:"parentId"`
	Type        NodeType `json:"type"`
	ChildrenIDs []string `json:"childrenIds,omitempty"`
	FileType    FileType `json:"fileType,omitempty"`
	AppID       string   `json:"appId,omitempty"`
	ContentID   string   `json:"contentId,omitempty"`
}

// MarshalJSON always writes childrenIds for folders, as [] when empty, and
// never for files.
func (n Node) MarshalJSON() ([]byte, error) {
	type plain Node
	if !n.IsFolder() {
		p := plain(n)
		p.ChildrenIDs = nil
		return sonic.Marshal(p)
	}
	children := n.ChildrenIDs
	if children == nil {
		children = []string{}
	}
	return sonic.Marshal(struct {
		plain
		ChildrenIDs []string `json:"childrenIds"`
	}{plain: plain(n), ChildrenIDs: children})
}

// IsFolder reports whether the node is a folder
func (n Node) IsFolder() bool { return n.Type == NodeFolder }

// IsFile reports whether the node is a file
func (n Node) IsFile() bool { return n.Type == NodeFile }

// Clone returns a deep copy of the node
func (n Node) Clone() Node {
	if n.ParentID != nil {
		p := *n.ParentID
		n.ParentID = &p
	}
	if n.ChildrenIDs != nil {
		n.ChildrenIDs = append([]string(nil), n.ChildrenIDs...)
	} else if n.Type == NodeFolder {
		n.ChildrenIDs = []string{}
	}
	return n
}

// NodeMap is the persisted VFS record: a flat id -> node map
type NodeMap map[string]Node
