// Package logging provides structured logging using uber/zap.
//
// Two modes are supported:
//   - Production: JSON output for machine parsing
//   - Development: colored console output
//
// Subsystems take a *zap.Logger by injection and name it after themselves:
//
//	logger := logging.NewFromSettings(cfg.Logging.Level, cfg.Logging.Development)
//	fs := vfs.New(store, vfs.WithLogger(logger.Component("vfs")))
package logging
