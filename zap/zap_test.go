package zap

import (
	"testing"

	logpkg "github.com/Punky2280/cartita-mcdaniels-sub003/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger(t *testing.T) (*Logger, *observer.ObservedLogs) {
	t.Helper()

	core, logs := observer.New(zapcore.DebugLevel)

	return NewFromZap(zap.New(core)), logs
}

func TestLogger_WritesThroughZap(t *testing.T) {
	logger, logs := newObservedLogger(t)

	logger.Infof("execution %s finished", "id-1")
	logger.Warn("slow agent")
	logger.Errorf("agent %s failed", "echo")

	require.Equal(t, 3, logs.Len())

	entries := logs.All()
	assert.Equal(t, "execution id-1 finished", entries[0].Message)
	assert.Equal(t, "slow agent", entries[1].Message)
	assert.Equal(t, "agent echo failed", entries[2].Message)
}

func TestLogger_WithFields(t *testing.T) {
	logger, logs := newObservedLogger(t)

	child := logger.WithFields("agent", "echo")
	child.Info("registered")

	require.Equal(t, 1, logs.Len())

	ctx := logs.All()[0].ContextMap()
	assert.Equal(t, "echo", ctx["agent"])
}

func TestLogger_SanitizesControlChars(t *testing.T) {
	logger, logs := newObservedLogger(t)

	logger.Info("injected\nline")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, `injected\nline`, logs.All()[0].Message)
}

func TestLogger_NilSafe(t *testing.T) {
	var logger *Logger

	assert.NotPanics(t, func() {
		logger.Info("dropped")
		logger.Errorf("dropped %s", "too")
		logger.SetLevel(logpkg.DebugLevel)
	})

	assert.NoError(t, logger.Sync())

	var child logpkg.Logger

	assert.NotPanics(t, func() {
		child = logger.WithFields("request_id", "r-1")
		child.Info("dropped")
	})
	assert.NotNil(t, child)
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(logpkg.InfoLevel)

	require.NoError(t, err)
	require.NotNil(t, logger)

	var _ logpkg.Logger = logger
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, `a\nb`, sanitizeString("a\nb"))
	assert.Equal(t, `fmt %s\n`, sanitizeFormat("fmt %s\n"))

	args := sanitizeArgs([]any{"x\ty", 7})
	assert.Equal(t, `x\ty`, args[0])
	assert.Equal(t, 7, args[1])
}
