package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestTraceLevel(t *testing.T) {
	assert.Equal(t, zapcore.Level(-2), TraceLevel)
	assert.True(t, TraceLevel.Enabled(zapcore.DebugLevel))
	assert.False(t, zapcore.DebugLevel.Enabled(TraceLevel))
}

func TestLevelFromString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected zapcore.Level
		wantErr  bool
	}{
		{"trace", "trace", TraceLevel, false},
		{"debug", "debug", zapcore.DebugLevel, false},
		{"info", "info", zapcore.InfoLevel, false},
		{"warn", "warn", zapcore.WarnLevel, false},
		{"error", "error", zapcore.ErrorLevel, false},
		{"uppercase", "INFO", zapcore.InfoLevel, false},
		{"invalid", "verbose", zapcore.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, err := LevelFromString(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expected, level)
		})
	}
}
