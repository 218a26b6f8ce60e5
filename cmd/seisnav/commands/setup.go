// Package commands implements CLI command handlers for seisnav.
package commands

import (
	"log/slog"

	"github.com/Sumatoshi-tech/seisnav/pkg/config"
	"github.com/Sumatoshi-tech/seisnav/pkg/observability"
)

// Globals carries the root command's persistent flag bindings into the
// subcommand builders.
type Globals struct {
	ConfigPath *string
	Verbose    *bool
	Quiet      *bool
}

// setup loads configuration and builds the logger for one command run.
func (g Globals) setup() (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadConfig(*g.ConfigPath)
	if err != nil {
		return nil, nil, err
	}

	level, err := observability.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, nil, err
	}

	switch {
	case *g.Quiet:
		level = slog.LevelError
	case *g.Verbose:
		level = slog.LevelDebug
	}

	logger := observability.NewLogger(observability.Config{
		Mode:  observability.ModeCLI,
		Level: level,
		JSON:  cfg.Logging.Format == "json",
	})

	return cfg, logger, nil
}
