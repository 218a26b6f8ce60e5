package config_test

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/seisnav/pkg/config"
	"github.com/Sumatoshi-tech/seisnav/pkg/coords"
	"github.com/Sumatoshi-tech/seisnav/pkg/segy"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, config.ByteOrderBig, cfg.SEGY.ByteOrder)
	assert.Equal(t, segy.DefaultCoordinateLayout(), cfg.SEGY.Layout())
	assert.Equal(t, coords.ModeHeader, cfg.Coords.ParsedMode())
	assert.InDelta(t, config.DefaultVelocity, cfg.Clip.Velocity, 0)
	assert.Zero(t, cfg.Batch.Workers)
	assert.Equal(t, ".", cfg.Export.Directory)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadConfigFromFile(t *testing.T) {
	t.Parallel()

	configContent := `
segy:
  byte_order: little
  x_offset: 181
  y_offset: 185

coords:
  mode: geographic

batch:
  workers: 4
  header_dumps: true

export:
  directory: /tmp/test-export
`

	path := filepath.Join(t.TempDir(), "seisnav.yaml")
	require.NoError(t, os.WriteFile(path, []byte(configContent), 0o644))

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)

	order, orderErr := cfg.SEGY.Order()
	require.NoError(t, orderErr)
	assert.Equal(t, binary.ByteOrder(binary.LittleEndian), order)

	assert.Equal(t, 181, cfg.SEGY.XOffset)
	assert.Equal(t, 185, cfg.SEGY.YOffset)
	assert.Equal(t, coords.ModeGeographic, cfg.Coords.ParsedMode())
	assert.Equal(t, 4, cfg.Batch.Workers)
	assert.True(t, cfg.Batch.HeaderDumps)
	assert.Equal(t, "/tmp/test-export", cfg.Export.Directory)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("SEISNAV_SEGY_BYTE_ORDER", "little")
	t.Setenv("SEISNAV_COORDS_MODE", "projected")
	t.Setenv("SEISNAV_BATCH_WORKERS", "8")

	cfg, err := config.LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, config.ByteOrderLittle, cfg.SEGY.ByteOrder)
	assert.Equal(t, coords.ModeProjected, cfg.Coords.ParsedMode())
	assert.Equal(t, 8, cfg.Batch.Workers)
}

func TestLoadConfigValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name:    "bad byte order",
			content: "segy:\n  byte_order: middle\n",
			wantErr: config.ErrInvalidByteOrder,
		},
		{
			name:    "bad layout offset",
			content: "segy:\n  x_offset: 0\n",
			wantErr: segy.ErrCoordinateConfig,
		},
		{
			name:    "bad mode",
			content: "coords:\n  mode: guess\n",
			wantErr: coords.ErrUnknownMode,
		},
		{
			name:    "negative workers",
			content: "batch:\n  workers: -1\n",
			wantErr: config.ErrInvalidWorkers,
		},
		{
			name:    "zero velocity",
			content: "clip:\n  velocity: 0\n",
			wantErr: config.ErrInvalidVelocity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "seisnav.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, err := config.LoadConfig(path)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	t.Parallel()

	_, err := config.LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
