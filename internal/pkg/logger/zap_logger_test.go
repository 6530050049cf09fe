package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLoggerFlattensDetails(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := newWithCore(core)

	l.Debug("Coordinator", "dropped", nil)
	l.Warn("Coordinator", "Retrying provider call", map[string]interface{}{
		"attempt":  2,
		"category": "OVERLOADED",
		"error":    errors.New("status 503"),
	})

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.WarnLevel, entry.Level)
	assert.Equal(t, "Retrying provider call", entry.Message)

	ctx := entry.ContextMap()
	assert.Equal(t, "Coordinator", ctx["module"])
	assert.EqualValues(t, 2, ctx["attempt"])
	assert.Equal(t, "OVERLOADED", ctx["category"])
	assert.Equal(t, "status 503", ctx["error"])
}

func TestNopLogger(t *testing.T) {
	l := NewNopLogger()
	l.Error("Any", "nothing", map[string]interface{}{"k": "v"})
	assert.NoError(t, l.Sync())
}
