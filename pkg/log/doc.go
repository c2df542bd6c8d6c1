/*
Package log provides structured logging for the watchdog using zerolog.

The log package wraps the zerolog library to provide JSON-structured logging
with component-specific loggers, configurable log levels, and helper
functions for common logging patterns. All logs include timestamps and
support filtering by severity level for production debugging.

# Architecture

	┌──────────────────── LOGGING SYSTEM ──────────────────────┐
	│                                                            │
	│  ┌────────────────────────────────────────────┐          │
	│  │            Global Logger                    │          │
	│  │  - Zerolog instance                         │          │
	│  │  - Initialized via log.Init()               │          │
	│  │  - Thread-safe for concurrent use           │          │
	│  └──────────────────┬─────────────────────────┘          │
	│                     │                                      │
	│  ┌──────────────────▼─────────────────────────┐          │
	│  │           Configuration                     │          │
	│  │  - Level: debug/info/warn/error             │          │
	│  │  - Format: JSON or console (human)          │          │
	│  │  - Output: stdout, file, or custom writer   │          │
	│  └──────────────────┬─────────────────────────┘          │
	│                     │                                      │
	│  ┌──────────────────▼─────────────────────────┐          │
	│  │         Component Loggers                   │          │
	│  │  - WithComponent("wdog")                    │          │
	│  │  - WithAddress("10.0.0.5:8080")             │          │
	│  │  - WithDiscoveryID("a1b2c3...")             │          │
	│  └──────────────────┬─────────────────────────┘          │
	│                     │                                      │
	│  ┌──────────────────▼─────────────────────────┐          │
	│  │            Log Output                       │          │
	│  │                                              │          │
	│  │  JSON Format:                               │          │
	│  │  {                                           │          │
	│  │    "level": "info",                         │          │
	│  │    "component": "wdog",                     │          │
	│  │    "address": "10.0.0.5:8080",             │          │
	│  │    "time": "2026-07-31T10:30:00Z",         │          │
	│  │    "message": "weight published"            │          │
	│  │  }                                           │          │
	│  │                                              │          │
	│  │  Console Format:                            │          │
	│  │  10:30AM INF weight published component=wdog address=10.0.0.5:8080 │
	│  └────────────────────────────────────────────┘           │
	└────────────────────────────────────────────────────────┘

# Core Components

Global Logger:
  - Package-level zerolog.Logger instance
  - Initialized once via log.Init()
  - Accessible from all watchdog packages
  - Thread-safe concurrent writes

Log Levels:
  - Debug: Detailed debugging information
  - Info: General informational messages
  - Warn: Warning messages (potential issues)
  - Error: Error messages (operation failed)

Levels below Level in Config are filtered at the zerolog layer; the
package only exposes Info and Errorf as bare global-logger helpers; Debug
and Warn are reached through a child logger's own zerolog methods.

Configuration:
  - Level: Filter messages below threshold
  - JSONOutput: JSON vs human-readable console
  - Output: io.Writer for log destination (stdout, file)

Context Loggers:
  - WithComponent: Add component name to all logs
  - WithAddress: Add destination address context
  - WithDiscoveryID: Add discovery correlation ID context

# Usage

Initializing the Logger:

	import "github.com/cuemby/wdog/pkg/log"

	// JSON output (production)
	log.Init(log.Config{
		Level:      log.InfoLevel,
		JSONOutput: true,
		Output:     os.Stdout,
	})

	// Console output (development)
	log.Init(log.Config{
		Level:      log.DebugLevel,
		JSONOutput: false,
		Output:     os.Stdout,
	})

Simple Logging:

	log.Info("watchdog started")
	log.Errorf("metrics server stopped", err)

Anything with its own context, or at a level other than info/error, logs
through a child logger's own zerolog methods instead (Debug/Warn/Error),
rather than through a bare global-logger helper:

	dstLog.Debug().Msg("probe cycle complete")
	dstLog.Warn().Err(err).Msg("router refused weight update")

Component Loggers:

	wdogLog := log.WithComponent("wdog")
	wdogLog.Info().Msg("supervisor entering running state")

	// Multiple context fields
	dstLog := log.WithComponent("wdog").
		With().Str("address", "10.0.0.5:8080").
		Str("origin", "explicit").Logger()
	dstLog.Info().Msg("destination added")
	dstLog.Error().Err(err).Msg("probe failed")

Context Logger Helpers:

	// Destination-specific logs
	dstLog := log.WithAddress("10.0.0.5:8080")
	dstLog.Info().Msg("weight updated")

	// Discovery-correlated logs
	discLog := log.WithDiscoveryID("a1b2c3d4")
	discLog.Info().Msg("destination first observed")

# Integration Points

This package integrates with:

  - package wdog: logs registry mutations, aggregator ticks, and supervisor
    state transitions
  - cmd/wdogd: logs router updates and process lifecycle

# Design Patterns

Global Logger Pattern:
  - Single package-level Logger instance
  - Initialized once at application start
  - Accessible from all packages without passing
  - Simplifies logging in deeply nested calls

Context Logger Pattern:
  - Create child loggers with context fields
  - Pass context loggers to functions
  - Automatically includes context in all logs
  - Avoids repetitive field specification

Error Logging Pattern:
  - Always use .Err(err) for error objects
  - Consistent error format across codebase

# Best Practices

Do:
  - Use Info level for production
  - Use structured fields for queryable data
  - Create component-specific loggers
  - Log errors with .Err() for stack traces
  - Include context (address, origin, discovery ID)

Don't:
  - Use Debug level in production
  - Log in tight loops (probe workers should log on state change, not per tick)
  - Concatenate strings (use .Str, .Float64)

# See Also

  - Zerolog documentation: https://github.com/rs/zerolog
*/
package log
