// Package logging provides structured logging configuration for wsconfig.
//
// This package wraps log/slog so that the configurer, the handler chain, the
// SOAP client and the CLI all log the same way.
//
// # Usage
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.LevelInfo,
//	    Format: logging.FormatText,
//	})
//
//	logger.Warn("cannot add handler", "class", name, "error", err)
//
// # Components
//
// Packages tag their logger with the component name:
//
//	log := logging.WithComponent(logger, logging.ComponentConfigurer)
//
// Components accept a *slog.Logger in their constructor or options. If no
// logger is provided, use logging.Nop().
//
// # Recording
//
// Recorder is a slog.Handler that keeps every record in memory. Tests use it
// to assert on warnings such as unsupported handler-chain filters.
package logging
