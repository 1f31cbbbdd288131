// Package logging provides structured logging for the installer.
//
// This package wraps zap logger with convenience functions for the logging
// patterns used throughout the installer. Logging is silent by default so
// CLI output stays clean; set EXINSTALL_LOG_LEVEL to enable it.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: Detailed debugging info (navigation decisions, emitted directives)
//   - Info: Normal operations (screen changes, artifact writes)
//   - Warn: Non-fatal issues (unparsable version tags, fallback lists)
//   - Error: Fatal issues (unknown states, artifact write failures)
//
// # Structured Logging
//
// All log functions use structured fields for queryability:
//
//	logging.Info("Config generated",
//	    zap.String("product", "ex_turntable"),
//	    zap.String("version", "v0.6.1-Prod"),
//	    zap.Int("directives", 25),
//	)
//
// # Configuration
//
// Initialize logging at startup:
//
//	if err := logging.InitializeFromEnv(); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap
// logger handles synchronization automatically.
package logging
