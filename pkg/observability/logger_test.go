package observability_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"

	"github.com/Sumatoshi-tech/seisnav/pkg/observability"
)

const (
	testTraceID = "0102030405060708090a0b0c0d0e0f10"
	testSpanID  = "0102030405060708"
)

func decodeRecord(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var record map[string]any

	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))

	return record
}

func TestTracingHandler_InjectsTraceContext(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := observability.NewLogger(observability.Config{
		ServiceName: "test-svc",
		Environment: "test",
		Mode:        observability.ModeCLI,
		JSON:        true,
		Output:      &buf,
	})

	traceID, err := trace.TraceIDFromHex(testTraceID)
	require.NoError(t, err)

	spanID, err := trace.SpanIDFromHex(testSpanID)
	require.NoError(t, err)

	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	logger.InfoContext(ctx, "decoding file")

	record := decodeRecord(t, &buf)
	assert.Equal(t, testTraceID, record["trace_id"])
	assert.Equal(t, testSpanID, record["span_id"])
	assert.Equal(t, "test-svc", record["service"])
	assert.Equal(t, "test", record["env"])
	assert.Equal(t, "cli", record["mode"])
}

func TestTracingHandler_NoTraceContext(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := observability.NewLogger(observability.Config{
		Mode:   observability.ModeCLI,
		JSON:   true,
		Output: &buf,
	})

	logger.InfoContext(context.Background(), "no span")

	record := decodeRecord(t, &buf)

	_, hasTraceID := record["trace_id"]
	assert.False(t, hasTraceID)

	assert.Equal(t, "seisnav", record["service"])

	_, hasEnv := record["env"]
	assert.False(t, hasEnv)
}

func TestTracingHandler_WithGroup(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := observability.NewLogger(observability.Config{
		JSON:   true,
		Output: &buf,
	})

	grouped := logger.WithGroup("batch")
	grouped.InfoContext(context.Background(), "file done", slog.String("file", "line_0001.sgy"))

	record := decodeRecord(t, &buf)

	assert.Equal(t, "seisnav", record["service"])

	batch, ok := record["batch"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "line_0001.sgy", batch["file"])
}

func TestNewLoggerLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := observability.NewLogger(observability.Config{
		Level:  slog.LevelWarn,
		JSON:   true,
		Output: &buf,
	})

	logger.Info("hidden")
	assert.Empty(t, buf.Bytes())

	logger.Warn("visible")
	assert.NotEmpty(t, buf.Bytes())
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		want    slog.Level
		wantErr bool
	}{
		{name: "debug", want: slog.LevelDebug},
		{name: "info", want: slog.LevelInfo},
		{name: "", want: slog.LevelInfo},
		{name: "WARN", want: slog.LevelWarn},
		{name: "error", want: slog.LevelError},
		{name: "verbose", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			level, err := observability.ParseLevel(tt.name)
			if tt.wantErr {
				require.ErrorIs(t, err, observability.ErrUnknownLevel)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, level)
		})
	}
}
