// Package observability provides structured logging with OpenTelemetry trace
// correlation for the seisnav tools.
package observability

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// ErrUnknownLevel indicates an unrecognized log level name.
var ErrUnknownLevel = errors.New("unknown log level")

// AppMode identifies the application execution mode.
type AppMode string

// ModeCLI is the CLI command execution mode.
const ModeCLI AppMode = "cli"

// defaultServiceName is the service name attached to every log record.
const defaultServiceName = "seisnav"

// Config holds logger construction settings.
type Config struct {
	// ServiceName is attached to every record. Empty means "seisnav".
	ServiceName string

	// Environment is the deployment environment. Empty omits the attribute.
	Environment string

	// Mode identifies how the binary was launched.
	Mode AppMode

	// Level controls the minimum slog severity.
	Level slog.Level

	// JSON selects the JSON handler instead of text.
	JSON bool

	// Output is the log destination. Nil means stderr.
	Output io.Writer
}

// ParseLevel resolves a level name ("debug", "info", "warn", "error").
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownLevel, name)
	}
}

// NewLogger builds a context-aware structured logger. Records carry service
// metadata and, when a span is active, the trace and span identifiers.
func NewLogger(cfg Config) *slog.Logger {
	if cfg.ServiceName == "" {
		cfg.ServiceName = defaultServiceName
	}

	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: cfg.Level}

	var inner slog.Handler
	if cfg.JSON {
		inner = slog.NewJSONHandler(cfg.Output, opts)
	} else {
		inner = slog.NewTextHandler(cfg.Output, opts)
	}

	return slog.New(NewTracingHandler(inner, cfg.ServiceName, cfg.Environment, cfg.Mode))
}
