package observability

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewLogger_HonoursLevelAndFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "warn", "text")

	logger.Info("hidden")
	logger.Warn("shown", slog.String("store", "open"))

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "msg=shown")
	require.Contains(t, out, "store=open")
}

func TestParseLevel_DefaultsToInfo(t *testing.T) {
	require.Equal(t, slog.LevelInfo, parseLevel(""))
	require.Equal(t, slog.LevelInfo, parseLevel("chatty"))
	require.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
}

func TestNewSpanExporter_None(t *testing.T) {
	exporter, err := newSpanExporter(context.Background(), "none", slog.Default())
	require.NoError(t, err)
	require.Nil(t, exporter)
}

func TestInit_WithoutExporter(t *testing.T) {
	t.Setenv("OTEL_TRACES_EXPORTER", "none")
	instruments, shutdown, err := Init(t.Context(), "delivery-console-test")
	require.NoError(t, err)
	require.NotNil(t, instruments.Logger)
	require.NotNil(t, instruments.Tracer("test"))
	require.NotNil(t, instruments.Meter("test"))
	require.NoError(t, shutdown(t.Context()))
}

func TestInstruments_NilSafe(t *testing.T) {
	var instruments *Instruments
	require.NotNil(t, instruments.Tracer("x"))
	require.NotNil(t, instruments.Meter("x"))
}
