package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name string
		want Level
	}{
		{"debug", DEBUG},
		{"DEBUG", DEBUG},
		{"info", INFO},
		{"warn", WARN},
		{"ERROR", ERROR},
		{"", INFO},
		{"nonsense", INFO},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.name), "parse %q", tt.name)
	}
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", DEBUG.String())
	assert.Equal(t, "INFO", INFO.String())
	assert.Equal(t, "WARN", WARN.String())
	assert.Equal(t, "ERROR", ERROR.String())
	assert.Equal(t, "UNKNOWN", Level(42).String())
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))

	logger := NewComponentLogger("test")
	assert.Equal(t, logger, OrNop(logger))

	// The nop logger accepts every call without output or panic.
	nop := OrNop(nil)
	assert.NotPanics(t, func() {
		nop.Debug("d %s", "x")
		nop.Info("i")
		nop.Warn("w %d", 1)
		nop.Error("e")
	})
}

func TestComponentLoggerDoesNotPanic(t *testing.T) {
	logger := NewComponentLogger("Smoke")
	assert.NotPanics(t, func() {
		logger.Debug("debug %d", 1)
		logger.Info("info %s", "ok")
		logger.Warn("warn")
		logger.Error("error: %v", assert.AnError)
	})
}
