package log

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var (
	// Logger is the global logger instance
	Logger zerolog.Logger
)

// Level represents log level
type Level string

const (
	DebugLevel Level = "debug"
	InfoLevel  Level = "info"
	WarnLevel  Level = "warn"
	ErrorLevel Level = "error"
)

// Config holds logging configuration
type Config struct {
	Level      Level
	JSONOutput bool
	Output     io.Writer
}

// Init initializes the global logger
func Init(cfg Config) {
	// Set log level
	var level zerolog.Level
	switch cfg.Level {
	case DebugLevel:
		level = zerolog.DebugLevel
	case InfoLevel:
		level = zerolog.InfoLevel
	case WarnLevel:
		level = zerolog.WarnLevel
	case ErrorLevel:
		level = zerolog.ErrorLevel
	default:
		level = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output
	output := cfg.Output
	if output == nil {
		output = os.Stdout
	}

	// Use JSON or console output
	if cfg.JSONOutput {
		Logger = zerolog.New(output).With().Timestamp().Logger()
	} else {
		Logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339,
		}).With().Timestamp().Logger()
	}
}

// WithComponent creates a child logger with component field
func WithComponent(component string) zerolog.Logger {
	return Logger.With().Str("component", component).Logger()
}

// WithAddress creates a child logger with address field
func WithAddress(address string) zerolog.Logger {
	return Logger.With().Str("address", address).Logger()
}

// WithDiscoveryID creates a child logger with discovery_id field, used to
// correlate log lines for a self-discovered destination across its lifetime.
func WithDiscoveryID(discoveryID string) zerolog.Logger {
	return Logger.With().Str("discovery_id", discoveryID).Logger()
}

// Info logs msg on the global logger at info level. Anything with its own
// context (a destination, a component) should log through a child logger
// instead; this is for process-lifecycle messages that have none.
func Info(msg string) {
	Logger.Info().Msg(msg)
}

// Errorf logs msg on the global logger at error level with err attached.
func Errorf(msg string, err error) {
	Logger.Error().Err(err).Msg(msg)
}
