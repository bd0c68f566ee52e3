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

	"github.com/Sumatoshi-tech/heapkit/pkg/observability"
)

func newJSONLogger(buf *bytes.Buffer, env string, mode observability.AppMode) *slog.Logger {
	inner := slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})

	return slog.New(observability.NewTracingHandler(inner, "heapkit", env, mode))
}

func decodeRecord(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var record map[string]any

	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))

	return record
}

func TestTracingHandler_InjectsTraceContext(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := newJSONLogger(&buf, "test", observability.ModeCLI)

	traceID, err := trace.TraceIDFromHex("0102030405060708090a0b0c0d0e0f10")
	require.NoError(t, err)

	spanID, err := trace.SpanIDFromHex("0102030405060708")
	require.NoError(t, err)

	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	logger.InfoContext(ctx, "median computed")

	record := decodeRecord(t, &buf)
	assert.Equal(t, "0102030405060708090a0b0c0d0e0f10", record["trace_id"])
	assert.Equal(t, "0102030405060708", record["span_id"])
	assert.Equal(t, "heapkit", record["service"])
	assert.Equal(t, "test", record["env"])
	assert.Equal(t, "cli", record["mode"])
}

func TestTracingHandler_NoTraceContext(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := newJSONLogger(&buf, "", observability.ModeMCP)
	logger.InfoContext(context.Background(), "no span")

	record := decodeRecord(t, &buf)

	_, hasTraceID := record["trace_id"]
	assert.False(t, hasTraceID)

	_, hasEnv := record["env"]
	assert.False(t, hasEnv)

	assert.Equal(t, "mcp", record["mode"])
}

func TestTracingHandler_WithGroupKeepsServiceTopLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := newJSONLogger(&buf, "", observability.ModeCLI).WithGroup("heap").With("direction", "max")
	logger.Info("built", "len", 5)

	record := decodeRecord(t, &buf)
	assert.Equal(t, "heapkit", record["service"])

	group, ok := record["heap"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "max", group["direction"])
	assert.InDelta(t, 5, group["len"], 0)
}
