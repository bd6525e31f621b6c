// Package storage provides the durable key/value records the desktop
// persists between runs (window layout, VFS tree, notes, theme).
//
// Components:
//   - Store: Get/Set/Delete of opaque byte records by key
//   - MemoryStore: in-process store for tests and ephemeral sessions
//   - FileStore: one JSON file per key under a directory, written atomically
//   - Codec helpers: Encode/Decode via sonic
//
// Example Usage:
//
//	store, err := storage.NewFileStore("/var/lib/desktop")
//	err = storage.SaveJSON(store, "desktop.theme", record)
//	found, err := storage.LoadJSON(store, "desktop.theme", &record)
package storage
