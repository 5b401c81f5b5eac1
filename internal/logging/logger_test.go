package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *Config
		wantErr bool
	}{
		{"defaults", NewDefaultConfig(), false},
		{"json format", &Config{Level: zapcore.InfoLevel, Format: "json"}, false},
		{"console format", &Config{Level: zapcore.DebugLevel, Format: "console"}, false},
		{"invalid format", &Config{Format: "xml"}, true},
		{"empty field value", &Config{Format: "json", Fields: map[string]string{"k": ""}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := NewLogger(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, logger.Underlying())
		})
	}
}

func TestLevelFromString(t *testing.T) {
	level, err := LevelFromString("warn")
	require.NoError(t, err)
	assert.Equal(t, zapcore.WarnLevel, level)

	_, err = LevelFromString("bogus")
	assert.Error(t, err)
}

func TestContextFields(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, ContextFields(ctx))

	ctx = WithRunID(ctx, "run-123")
	ctx = WithDetector(ctx, "stereotypes")

	fields := ContextFields(ctx)
	require.Len(t, fields, 2)
	assert.Equal(t, "run.id", fields[0].Key)
	assert.Equal(t, "detector", fields[1].Key)
}

func TestLoggerWritesContextFields(t *testing.T) {
	tl := NewTestLogger()
	ctx := WithRunID(context.Background(), "run-abc")

	tl.Info(ctx, "requirements generated", zap.Int("count", 3))

	entries := tl.FilterMessage("requirements generated").All()
	require.Len(t, entries, 1)

	keys := make(map[string]bool)
	for _, f := range entries[0].Context {
		keys[f.Key] = true
	}
	assert.True(t, keys["run.id"])
	assert.True(t, keys["count"])
}

func TestNamedAndWith(t *testing.T) {
	tl := NewTestLogger()
	child := tl.Named("pipeline").With(zap.String("stage", "evaluate"))
	child.Warn(context.Background(), "slow evaluation")

	entries := tl.FilterMessage("slow evaluation").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "pipeline", entries[0].LoggerName)
}
