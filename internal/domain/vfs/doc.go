// Package vfs provides the desktop's virtual file system: a tree of
// folders, app shortcuts and document files rooted at a single disk root.
//
// The VFS is a pure data structure. It never launches anything; the
// desktop layer resolves a file to its app and content id and hands that
// to the window manager.
//
// Components:
//   - FileSystem: node lookups, path resolution, createFile and the
//     supplementary folder/rename/move/delete mutations
//   - Seed: synthesizes the initial tree from the application registry
//   - Glob: doublestar pattern search over node paths
//
// Tree shape after seeding:
//
//	/
//	├── Desktop
//	│   ├── Games
//	│   ├── Utilities
//	│   └── Apps
//	│       └── Dev Apps
//	├── Applications
//	└── Documents
//
// Persistence: the whole node table is stored under "desktop.vfs" as a
// flat {id: node} map after every mutation. Lookups never fail loudly;
// CreateFile against a non-folder returns ErrNotFolder.
//
// Example Usage:
//
//	fs := vfs.New(store, logger)
//	fs.Load(reg.List())
//	docs, _ := fs.FindNodeByPath("/Documents")
//	report, err := fs.CreateFile("Report", docs.ID, types.FileDocument, "macwrite", "doc-42")
package vfs
