package config

import (
	"github.com/spf13/viper"

	"github.com/Sumatoshi-tech/seisnav/pkg/amplitude"
	"github.com/Sumatoshi-tech/seisnav/pkg/segy"
)

// Default configuration values.
const (
	DefaultByteOrder = ByteOrderBig
	DefaultMode      = "header"
	DefaultVelocity  = 1500.0
	DefaultExportDir = "."
)

// setDefaults sets default configuration values.
func setDefaults(viperCfg *viper.Viper) {
	layout := segy.DefaultCoordinateLayout()

	// Decode defaults.
	viperCfg.SetDefault("segy.byte_order", DefaultByteOrder)
	viperCfg.SetDefault("segy.x_offset", layout.XOffset)
	viperCfg.SetDefault("segy.y_offset", layout.YOffset)
	viperCfg.SetDefault("segy.scalar_offset", layout.ScalarOffset)
	viperCfg.SetDefault("segy.elev_scalar_offset", layout.ElevScalarOffset)

	// Coordinate defaults.
	viperCfg.SetDefault("coords.mode", DefaultMode)

	// Clip defaults.
	viperCfg.SetDefault("clip.percentile_enabled", false)
	viperCfg.SetDefault("clip.percentile", amplitude.DefaultPercentile)
	viperCfg.SetDefault("clip.stddev_enabled", false)
	viperCfg.SetDefault("clip.stddev_k", amplitude.DefaultStdDevK)
	viperCfg.SetDefault("clip.velocity", DefaultVelocity)

	// Batch defaults.
	viperCfg.SetDefault("batch.workers", 0)
	viperCfg.SetDefault("batch.header_dumps", false)
	viperCfg.SetDefault("batch.catalog_path", "")

	// Export defaults.
	viperCfg.SetDefault("export.directory", DefaultExportDir)

	// Logging defaults.
	viperCfg.SetDefault("logging.level", "info")
	viperCfg.SetDefault("logging.format", "text")
	viperCfg.SetDefault("logging.output", "stderr")
}
