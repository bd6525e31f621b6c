// Package server assembles the desktop service.
//
// Server Lifecycle:
//  1. Load configuration from the environment
//  2. Initialize the zap logger
//  3. Open the record store (files under DESKTOP_STORAGE_DIR, or memory)
//  4. Build the desktop: registry, notes, theme, windows, VFS
//  5. Setup HTTP routes, middleware and the WebSocket hub
//  6. Start HTTP server
//  7. Graceful shutdown on signal
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	srv, err := server.NewServer(cfg, logger)
//	go srv.Run()
//	<-ctx.Done()
//	srv.Shutdown(shutdownCtx)
package server
