package correlation

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithIDAndID(t *testing.T) {
	ctx := context.Background()

	_, ok := ID(ctx)
	assert.False(t, ok)

	ctx = WithID(ctx, "abc-123")
	id, ok := ID(ctx)
	require.True(t, ok)
	assert.Equal(t, "abc-123", id)
}

func TestNewID_Unique(t *testing.T) {
	assert.NotEqual(t, NewID(), NewID())
}

func TestHandler_InjectsCorrelationID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(slog.NewJSONHandler(&buf, nil)))

	ctx := WithID(context.Background(), "req-42")
	logger.InfoContext(ctx, "hello")

	assert.Contains(t, buf.String(), `"correlation_id":"req-42"`)
}

func TestHandler_NoIDNoAttribute(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(slog.NewJSONHandler(&buf, nil)))

	logger.Info("hello")

	assert.NotContains(t, buf.String(), "correlation_id")
}
