// Package tree provides a generic arena tree shared by every
// folder-and-children structure of the desktop.
//
// Nodes live in one map keyed by id and carry explicit parent and ordered
// children links. The store keeps both directions consistent on every
// mutation, rejects cycles on move and removes whole subtrees on delete.
//
// Components:
//   - Store[T]: the arena, parameterised by the per-node payload
//   - Node[T]: one entry (ID, ParentID, ChildIDs, Value)
//
// Example Usage:
//
//	s := tree.New[string](nil)
//	_ = s.AddRoot("root", "disk")
//	_ = s.Insert("root", "docs", "Documents")
//	path, _ := s.Path("docs") // ["root", "docs"]
//
// Store is not safe for concurrent use; owners guard it with their own lock.
package tree
