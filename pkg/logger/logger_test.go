package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	logger := New()
	assert.NotNil(t, logger)
	assert.NotNil(t, logger.base)
	assert.NotNil(t, logger.sugar)
	assert.True(t, logger.Zap().Core().Enabled(zapcore.InfoLevel))
	assert.False(t, logger.Zap().Core().Enabled(zapcore.DebugLevel))
}

func TestNewWithLevel(t *testing.T) {
	logger := NewWithLevel("error")
	assert.False(t, logger.Zap().Core().Enabled(zapcore.WarnLevel))
	assert.True(t, logger.Zap().Core().Enabled(zapcore.ErrorLevel))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("warning"))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel(" error "))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("verbose"))
}

func TestLogger_Formatting(t *testing.T) {
	logger := NewNop()

	assert.NotPanics(t, func() {
		logger.Info("User %s logged in with ID %d", "john", 123)
		logger.Error("Failed to process request %d: %s", 404, "not found")
		logger.Warn("Warning: %s count is %d", "items", 5)
		logger.Debug("debug %v", struct{}{})
		logger.Named("baas").Info("named")
	})
}
