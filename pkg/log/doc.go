// Package log captures audio session activity as a machine-readable event
// trace.
//
// It is separate from operational logging (slog). The trace records every
// native call a session controller makes, every notification the native side
// pushes back, and the lifecycle transitions in between, so a session's
// behaviour can be replayed and inspected after the fact.
//
// # Basic Usage
//
// Controllers are given a Logger through session.WithEventLogger:
//
//	// Development: mirror events to the console
//	session.WithEventLogger(log.NewSlogAdapter(slog.Default()))
//
//	// Production: append to a capture file
//	fl, _ := log.NewFileLogger("/var/log/sessionctl/sessions.alog")
//	session.WithEventLogger(fl)
//
//	// Both
//	session.WithEventLogger(log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fl,
//	))
//
// # Event Types
//
// Events are captured at three layers:
//   - Native: calls into the session object (CallEvent)
//   - Callback: notifications pushed by the audio subsystem (NotificationEvent)
//   - Controller: subscription and disposal transitions (StateChangeEvent)
//
// Failures at any layer are additionally recorded as ErrorEventData.
//
// # File Format
//
// Capture files are a stream of CBOR-encoded events with the .alog
// extension. The sessionctl-log tool views, filters and exports them.
package log
