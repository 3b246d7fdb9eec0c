package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		level string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"INFO", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
		{"chatty", zapcore.InfoLevel},
	}
	for _, tc := range tests {
		t.Run(tc.level, func(t *testing.T) {
			log, err := New(Config{Level: tc.level, Output: "stdout"})
			require.NoError(t, err)
			assert.Equal(t, tc.want, log.Level())
		})
	}
}

func TestNewFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	log, err := New(Config{Level: "info", Format: "json", Output: "file", FilePath: path})
	require.NoError(t, err)

	log.Info("user registered", zap.Int64("user_id", 7))
	log.Debug("not written")
	_ = log.Sync()

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"msg":"user registered"`)
	assert.Contains(t, string(content), `"user_id":7`)
	assert.NotContains(t, string(content), "not written")
}

func TestNewFileOutputNeedsPath(t *testing.T) {
	_, err := New(Config{Output: "file"})
	require.Error(t, err)
}
