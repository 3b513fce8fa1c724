package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/wired/core/logger"
)

type ctxKey struct{}

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	return out
}

func TestNewJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithJSONFormatter(),
		logger.WithOutput(&buf),
		logger.WithAttr(slog.String("service", "wired")),
	)
	log.Info("hello", logger.Component("test"))

	out := decode(t, &buf)
	assert.Equal(t, "hello", out["msg"])
	assert.Equal(t, "test", out["component"])
	assert.Equal(t, "wired", out["service"])
}

func TestNewLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithLevel(slog.LevelWarn))
	log.Info("dropped")
	assert.Empty(t, buf.String())

	log.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestDevelopmentIsText(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithDevelopment("wired"), logger.WithOutput(&buf))
	log.Debug("details")
	assert.Contains(t, buf.String(), "msg=details")
	assert.Contains(t, buf.String(), "service=wired")
}

func TestContextExtractors(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithProduction("wired"),
		logger.WithOutput(&buf),
		logger.WithContextValue("request_id", ctxKey{}),
	).With(logger.Component("ctx"))

	ctx := context.WithValue(context.Background(), ctxKey{}, "req-1")
	log.InfoContext(ctx, "handled")

	out := decode(t, &buf)
	assert.Equal(t, "req-1", out["request_id"])
	assert.Equal(t, "ctx", out["component"])
	assert.Equal(t, "production", out["env"])
}

func TestNop(t *testing.T) {
	t.Parallel()
	assert.False(t, logger.Nop().Enabled(context.Background(), slog.LevelError))
}

func TestErrorHelpers(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")
	assert.Equal(t, err, logger.Error(err).Value.Any())
	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))

	attr := logger.Errors(nil, err)
	require.Equal(t, slog.KindGroup, attr.Value.Kind())
	require.Len(t, attr.Value.Group(), 1)
	assert.Equal(t, "1", attr.Value.Group()[0].Key)
	assert.True(t, logger.Errors(nil, nil).Equal(slog.Attr{}))
}

func TestIdentifierHelpers(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	assert.Equal(t, id.String(), logger.SessionID(id).Value.String())
	assert.Equal(t, "connection_id", logger.ConnectionID(id).Key)
	assert.True(t, logger.SessionID(nil).Equal(slog.Attr{}))
	assert.True(t, logger.RequestID("").Equal(slog.Attr{}))
	assert.Equal(t, "request_id", logger.RequestID("r").Key)
}

func TestTimingHelpers(t *testing.T) {
	t.Parallel()

	assert.Equal(t, time.Second, logger.Duration(time.Second).Value.Duration())
	assert.GreaterOrEqual(t, logger.Elapsed(time.Now().Add(-time.Minute)).Value.Duration(), time.Minute)
}
