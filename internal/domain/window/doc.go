// Package window is the desktop window manager: the set of open windows,
// which one is active, and their stacking order.
//
// Every window creation and every focus raise consumes the next value of a
// monotonic z counter starting at BaseZIndex, so the active window is
// always the top-most one. Z-indices are never renumbered.
//
// Sticky notes are mirrored as note windows. OpenApp("sticky-note") asks
// the note store for a new note; SyncNotes then brings the windows in line
// with the note collection using the pure Reconcile function. Closing a
// note window deletes its note; a note deleted elsewhere only removes its
// window.
//
// State is persisted under "desktop.windows" after every change. Load
// recovers what it can from a damaged record.
package window
