package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"turfbook/internal/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_LevelSelection(t *testing.T) {
	app := config.AppConfig{Name: "turfbook-test", Environment: "test", Version: "0.0.1"}

	tests := []struct {
		name  string
		level string
		want  zerolog.Level
	}{
		{"debug", "debug", zerolog.DebugLevel},
		{"uppercase", "WARN", zerolog.WarnLevel},
		{"empty defaults to info", "", zerolog.InfoLevel},
		{"unknown defaults to info", "loud", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := New(config.LoggingConfig{Level: tt.level}, app)
			assert.Equal(t, tt.want, logger.GetLevel())
		})
	}
}

func TestNew_OutputAndFormat(t *testing.T) {
	app := config.AppConfig{Name: "turfbook-test"}

	assert.NotPanics(t, func() {
		stderrLogger := New(config.LoggingConfig{Output: "stderr"}, app)
		stderrLogger.Debug().Msg("stderr sink")
		consoleLogger := New(config.LoggingConfig{Format: "console"}, app)
		consoleLogger.Debug().Msg("console sink")
		trimmedLogger := New(config.LoggingConfig{Output: " STDERR ", Format: "Console"}, app)
		trimmedLogger.Debug().Msg("trimmed")
	})
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	parent := zerolog.New(&buf)

	child := Component(&parent, "booking-service")
	child.Info().Msg("ready")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "booking-service", entry["component"])
	assert.Equal(t, "ready", entry["message"])
}
