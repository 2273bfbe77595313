// Package logger provides structured logging using zerolog.
// It supports JSON and console output formats with configurable log levels.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config holds the logger configuration options.
type Config struct {
	// Level is the minimum log level (debug, info, warn, error, fatal, panic)
	Level string `env:"LOG_LEVEL" envDefault:"info"`

	// Format is the output format (json, console)
	Format string `env:"LOG_FORMAT" envDefault:"json"`

	// EnableCaller adds caller information to log entries
	EnableCaller bool `env:"LOG_CALLER" envDefault:"false"`

	// ServiceName is the name of the service for log context
	ServiceName string `env:"SERVICE_NAME" envDefault:"flight-finder"`
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	return Config{
		Level:        "info",
		Format:       "json",
		EnableCaller: false,
		ServiceName:  "flight-finder",
	}
}

// Logger wraps zerolog.Logger with additional context.
type Logger struct {
	zerolog.Logger
}

// New creates a new Logger with the given configuration.
// Output goes to stderr so a stdio tool server keeps stdout clean for the
// wire protocol.
func New(cfg Config) *Logger {
	return NewWithOutput(cfg, os.Stderr)
}

// NewWithOutput creates a new Logger with custom output writer.
// This is useful for testing.
func NewWithOutput(cfg Config, output io.Writer) *Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var writer io.Writer = output
	if cfg.Format == "console" {
		writer = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339,
			NoColor:    false,
		}
	}

	ctx := zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Str("service", cfg.ServiceName)

	if cfg.EnableCaller {
		ctx = ctx.Caller()
	}

	return &Logger{
		Logger: ctx.Logger(),
	}
}

// WithContext returns a new logger with additional context fields.
func (l *Logger) WithContext(key, value string) *Logger {
	return &Logger{
		Logger: l.With().Str(key, value).Logger(),
	}
}

// WithRequestID returns a logger with request ID context.
func (l *Logger) WithRequestID(requestID string) *Logger {
	return l.WithContext("request_id", requestID)
}

// WithProvider returns a logger with provider context.
func (l *Logger) WithProvider(provider string) *Logger {
	return l.WithContext("provider", provider)
}

// WithSearchID returns a logger with search ID context.
func (l *Logger) WithSearchID(searchID string) *Logger {
	return l.WithContext("search_id", searchID)
}

// Nop returns a disabled logger that produces no output.
// Useful for testing when logs are not needed.
func Nop() *Logger {
	return &Logger{
		Logger: zerolog.Nop(),
	}
}
