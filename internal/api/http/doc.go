// Package http exposes the desktop over a gin router.
//
// Routes:
//   - /windows: open, focus, move, resize, split and close windows
//   - /viewport: report the UI's visible canvas area
//   - /vfs: node lookups, path resolution, glob search, file creation and
//     opening files in their app
//   - /theme, /notes, /apps: collaborator state
//   - /health, /metrics, /stream: probes, Prometheus and WebSocket updates
//
// Lookups of unknown ids answer 404. Structural misuse, such as creating a
// file under a file, answers 400.
package http
