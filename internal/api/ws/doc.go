// Package ws streams desktop changes to browser clients over WebSocket.
//
// Every client receives a full snapshot on connect, then one "update"
// message per change carrying the changed subsystem's state. Clients may
// send {"type":"ping"} and {"type":"snapshot"}.
//
// Slow clients are dropped rather than allowed to block the goroutine that
// changed the desktop.
package ws
