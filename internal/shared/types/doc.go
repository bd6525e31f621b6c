// Package types provides shared data structures for the desktop service.
//
// This package defines the records exchanged between the window manager,
// the virtual file system, the application registry and the outer HTTP
// surface. Their JSON shape is the persisted layout.
//
// Core Types:
//   - WindowInstance: One open application window
//   - WindowState: Persisted window-manager record
//   - Props: Launch parameters with recognised keys (noteId, contentId, ...)
//   - Node: VFS folder or file
//   - NodeMap: Persisted VFS record
//   - AppDefinition: Registry entry with default size and category
//
// Example Usage:
//
//	win := types.WindowInstance{
//	    ID:    id.NewWindowID().String(),
//	    AppID: "calculator",
//	    Props: types.Props{types.PropContentID: "doc-42"},
//	}
package types
