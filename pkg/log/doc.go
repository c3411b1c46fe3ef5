// Package log provides structured capture of pairing exchanges.
//
// This package defines the Logger interface and Event types for recording
// pairing attempts at two layers (transport, session). It is separate from
// operational logging (slog): capture provides a complete machine-readable
// trace of every request, response, and state change for debugging hosts
// that reject pairing.
//
// Secret request parameters (the OTP hash) are never captured; callers
// pass them through RedactParams before logging.
//
// # Basic Usage
//
//	// For development: log to console via slog
//	cfg.ProtocolLogger = log.NewSlogAdapter(slog.Default())
//
//	// For field reports: write to binary file
//	cfg.ProtocolLogger, _ = log.NewFileLogger("/tmp/pairing.plog")
//
//	// Both: use MultiLogger
//	cfg.ProtocolLogger = log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// # File Format
//
// Log files are a sequence of CBOR-encoded events with .plog extension.
// The "streampair log" command views and filters them.
package log
