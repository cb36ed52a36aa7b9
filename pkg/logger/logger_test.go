package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerLevels(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		logFn     func(Logger)
		want      string
		wantShown bool
	}{
		{
			name:      "info shown at verbosity 0",
			verbosity: 0,
			logFn:     func(l Logger) { l.Info("hello") },
			want:      "hello",
			wantShown: true,
		},
		{
			name:      "debug hidden at verbosity 0",
			verbosity: 0,
			logFn:     func(l Logger) { l.Debug("quiet") },
			want:      "quiet",
			wantShown: false,
		},
		{
			name:      "debug shown at verbosity 1",
			verbosity: 1,
			logFn:     func(l Logger) { l.Debug("loud") },
			want:      "loud",
			wantShown: true,
		},
		{
			name:      "trace hidden at verbosity 1",
			verbosity: 1,
			logFn:     func(l Logger) { l.Trace("hidden") },
			want:      "hidden",
			wantShown: false,
		},
		{
			name:      "trace shown at verbosity 2",
			verbosity: 2,
			logFn:     func(l Logger) { l.Trace("traced") },
			want:      "TRACE: traced",
			wantShown: true,
		},
		{
			name:      "error always shown",
			verbosity: 0,
			logFn:     func(l Logger) { l.Error("boom") },
			want:      "boom",
			wantShown: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := NewLogger(Config{Verbosity: tt.verbosity, Output: &buf})

			tt.logFn(log)

			if tt.wantShown {
				assert.Contains(t, buf.String(), tt.want)
			} else {
				assert.NotContains(t, buf.String(), tt.want)
			}
		})
	}
}

func TestLoggerWithFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(Config{Output: &buf})

	log.WithFields(Fields{
		"component": "walker",
		"depth":     3,
	}).Info("scanning")

	line := strings.TrimSpace(buf.String())
	require.NotEmpty(t, line)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(line), &entry))

	assert.Equal(t, "scanning", entry["message"])
	assert.Equal(t, "walker", entry["component"])
	assert.Equal(t, float64(3), entry["depth"])
}

func TestLoggerWithFieldsDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(Config{Output: &buf})

	_ = log.WithFields(Fields{"scoped": true})
	log.Info("plain")

	assert.NotContains(t, buf.String(), "scoped")
}

func TestNopLogger(t *testing.T) {
	log := NewNop()

	// Must not panic and must accept fields.
	log.WithFields(Fields{"k": "v"}).Info("ignored")
	log.Error("ignored")
}
