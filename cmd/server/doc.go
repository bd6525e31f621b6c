// Package main is the entry point for the desktop server.
//
// The server keeps a window manager and virtual file system for a browser
// desktop, persists them to DESKTOP_STORAGE_DIR and serves them over HTTP
// with WebSocket change notifications.
//
// Configuration comes from the environment (see internal/infrastructure/config):
//
//	PORT=8000 DESKTOP_STORAGE_DIR=./data DESKTOP_THEME=classic LOG_DEV=true ./server
package main
