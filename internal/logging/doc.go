// Package logging provides structured logging with OpenTelemetry integration.
//
// # Overview
//
// Logging package wraps Zap with:
//   - Custom Trace level (-2, below Debug)
//   - Dual output (stderr + OpenTelemetry)
//   - Automatic context field injection (trace_id, run.id)
//
// Diagnostic output goes to stderr so compressed documents can stream to
// stdout uncorrupted.
//
// # Usage
//
// Create logger from config:
//
//	cfg := logging.NewDefaultConfig()
//	logger, err := logging.NewLogger(cfg, otelProvider)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer logger.Sync()
//
// Log with context:
//
//	ctx := logging.WithRunID(ctx, runID)
//	logger.Info(ctx, "run complete", zap.Duration("duration", d))
//
// Output includes automatic correlation:
//
//	{
//	  "ts": "2026-08-25T10:15:30Z",
//	  "level": "info",
//	  "msg": "run complete",
//	  "trace_id": "abc123",
//	  "run.id": "9f3c...",
//	  "duration": "45ms"
//	}
//
// # Configuration Precedence
//
// Configuration follows standard verdant precedence:
//  1. Defaults (NewDefaultConfig)
//  2. File (config.yaml)
//  3. Environment variables (VERDANT_LOGGING_*)
//
// # Testing
//
// Use TestLogger for test assertions:
//
//	tl := logging.NewTestLogger()
//	tl.Info(ctx, "test message", zap.String("key", "value"))
//	tl.AssertLogged(t, zapcore.InfoLevel, "test message")
//	tl.AssertField(t, "test message", "key", "value")
//
// # Concurrency Safety
//
// Logger is safe for concurrent use. Child loggers (With, Named) are
// independent and do not affect parent or siblings.
package logging
