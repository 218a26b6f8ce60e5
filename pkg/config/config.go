// Package config provides configuration loading and validation for the
// seisnav tools.
package config

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/Sumatoshi-tech/seisnav/pkg/amplitude"
	"github.com/Sumatoshi-tech/seisnav/pkg/coords"
	"github.com/Sumatoshi-tech/seisnav/pkg/segy"
)

// Sentinel validation errors.
var (
	ErrInvalidByteOrder = errors.New("invalid byte order")
	ErrInvalidWorkers   = errors.New("workers must not be negative")
	ErrInvalidVelocity  = errors.New("velocity must be positive")
)

// Byte order names accepted in configuration.
const (
	ByteOrderBig    = "big"
	ByteOrderLittle = "little"
)

// Config holds all configuration for the seisnav tools.
type Config struct {
	SEGY    SEGYConfig    `mapstructure:"segy"`
	Coords  CoordsConfig  `mapstructure:"coords"`
	Clip    ClipConfig    `mapstructure:"clip"`
	Batch   BatchConfig   `mapstructure:"batch"`
	Export  ExportConfig  `mapstructure:"export"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// SEGYConfig holds decode-specific configuration.
type SEGYConfig struct {
	ByteOrder        string `mapstructure:"byte_order"`
	XOffset          int    `mapstructure:"x_offset"`
	YOffset          int    `mapstructure:"y_offset"`
	ScalarOffset     int    `mapstructure:"scalar_offset"`
	ElevScalarOffset int    `mapstructure:"elev_scalar_offset"`
}

// CoordsConfig holds coordinate interpretation configuration.
type CoordsConfig struct {
	Mode string `mapstructure:"mode"`
}

// ClipConfig holds amplitude clipping and depth conversion configuration.
type ClipConfig struct {
	Percentile        float64 `mapstructure:"percentile"`
	StdDevK           float64 `mapstructure:"stddev_k"`
	Velocity          float64 `mapstructure:"velocity"`
	PercentileEnabled bool    `mapstructure:"percentile_enabled"`
	StdDevEnabled     bool    `mapstructure:"stddev_enabled"`
}

// BatchConfig holds batch pipeline configuration.
type BatchConfig struct {
	CatalogPath string `mapstructure:"catalog_path"`
	Workers     int    `mapstructure:"workers"`
	HeaderDumps bool   `mapstructure:"header_dumps"`
}

// ExportConfig holds shapefile output configuration.
type ExportConfig struct {
	Directory string `mapstructure:"directory"`
}

// LoggingConfig holds logging-specific configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// LoadConfig loads configuration from file and environment variables.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	setDefaults(viperCfg)

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName("seisnav")
		viperCfg.SetConfigType("yaml")
		viperCfg.AddConfigPath(".")
		viperCfg.AddConfigPath("/etc/seisnav")
	}

	viperCfg.SetEnvPrefix("SEISNAV")
	viperCfg.AutomaticEnv()
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFoundErr) {
			return nil, fmt.Errorf("failed to read config file: %w", readErr)
		}
	}

	var config Config

	unmarshalErr := viperCfg.Unmarshal(&config)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", unmarshalErr)
	}

	validateErr := validateConfig(&config)
	if validateErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", validateErr)
	}

	return &config, nil
}

// validateConfig validates the configuration.
func validateConfig(config *Config) error {
	_, orderErr := config.SEGY.Order()
	if orderErr != nil {
		return orderErr
	}

	layoutErr := config.SEGY.Layout().Validate()
	if layoutErr != nil {
		return layoutErr
	}

	_, modeErr := coords.ParseMode(config.Coords.Mode)
	if modeErr != nil {
		return modeErr
	}

	clipErr := config.Clip.Amplitude().Validate()
	if clipErr != nil {
		return clipErr
	}

	if config.Clip.Velocity <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidVelocity, config.Clip.Velocity)
	}

	if config.Batch.Workers < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkers, config.Batch.Workers)
	}

	return nil
}

// Order resolves the configured byte order name.
func (c SEGYConfig) Order() (binary.ByteOrder, error) {
	switch c.ByteOrder {
	case ByteOrderBig, "":
		return binary.BigEndian, nil
	case ByteOrderLittle:
		return binary.LittleEndian, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidByteOrder, c.ByteOrder)
	}
}

// Layout builds the trace header coordinate layout.
func (c SEGYConfig) Layout() segy.CoordinateLayout {
	return segy.CoordinateLayout{
		XOffset:          c.XOffset,
		YOffset:          c.YOffset,
		ScalarOffset:     c.ScalarOffset,
		ElevScalarOffset: c.ElevScalarOffset,
	}
}

// Options builds decode options from a validated configuration.
func (c SEGYConfig) Options() segy.Options {
	order, err := c.Order()
	if err != nil {
		order = binary.BigEndian
	}

	return segy.Options{ByteOrder: order, Layout: c.Layout()}
}

// ParsedMode resolves the configured coordinate mode. Validation has already
// rejected unknown names, so resolution falls back to the default.
func (c CoordsConfig) ParsedMode() coords.Mode {
	mode, err := coords.ParseMode(c.Mode)
	if err != nil {
		return coords.ModeHeader
	}

	return mode
}

// Amplitude builds the clipping configuration.
func (c ClipConfig) Amplitude() amplitude.ClipConfig {
	return amplitude.ClipConfig{
		PercentileEnabled: c.PercentileEnabled,
		Percentile:        c.Percentile,
		StdDevEnabled:     c.StdDevEnabled,
		StdDevK:           c.StdDevK,
	}
}
