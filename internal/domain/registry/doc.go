// Package registry provides the static application registry of the desktop.
//
// The registry answers "which apps exist and how big is a fresh window".
// The window manager reads default sizes from it and the VFS enumerates it
// once, when the initial tree is synthesized.
//
// Components:
//   - Manager: Register, Lookup, List (registration order), Stats
//   - Seeder: built-in catalogue plus YAML/TOML/JSON manifests from disk
//
// Manifest format (YAML shown; TOML and JSON use the same keys):
//
//	id: pomodoro
//	name: Pomodoro
//	icon: 🍅
//	category: utility
//	defaultSize: {width: 280, height: 320}
//	hidden: false
//
// Example Usage:
//
//	reg := registry.NewManager()
//	seeder := registry.NewSeeder(reg, logger)
//	_ = seeder.SeedDefaults()
//	_, _, _ = seeder.SeedManifests("/etc/desktop/apps")
//	app, ok := reg.Lookup("calculator")
package registry
