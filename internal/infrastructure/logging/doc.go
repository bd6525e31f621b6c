// Package logging provides structured logging using uber/zap.
//
// This package offers two modes:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// Each domain component receives a named child logger (window, vfs, notes,
// registry, theme, desktop, http) so persistence warnings can be traced to
// their record.
//
// Example Usage:
//
//	logger, err := logging.New(logging.FromSettings(cfg.Logging.Level, cfg.Logging.Development))
//	defer logger.Sync()
//	fs := vfs.New(store, logger.Component("vfs"))
package logging
