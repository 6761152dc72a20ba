// Package logging provides structured logging utilities for weeklycal.
//
// All log output goes through the standard library's slog package. This
// package builds the process logger from configuration (level and text/JSON
// format), defines the attribute keys used across the codebase, and offers
// a small Logger interface so packages such as archive can accept any
// leveled logger.
//
// # Usage Patterns
//
// Create a logger and tag it with the run:
//
//	logger := logging.NewLogger(os.Stderr, "info", "text")
//	logger = logging.WithRunID(logger, runID)
//	logger.Info("report written", logging.Sheet("raw_20240113"))
//
// The operator's own address is logged hashed:
//
//	logger.Info("starting run", logging.UserHash(cfg.SelfEmail))
package logging
