package config_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bdobrica/canvaschat/internal/canvaschat/config"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, name := range []string{
		"DATABASE_PATH", "HTTP_ADDR", "WORKSPACE_FILE", "MAX_COMPONENT_THREADS", "PREVIEW_RETRY_ATTEMPTS",
		"CANVASCHAT_LOG_LEVEL", "CANVASCHAT_LOG_FORMAT", "MATRIX_HOMESERVER", "MATRIX_USER_ID",
		"MATRIX_ACCESS_TOKEN", "MATRIX_ROOMS", "CHAT_ALLOWED_ORIGINS",
	} {
		t.Setenv(name, "")
	}

	cfg, err := config.FromEnv()
	require.NoError(t, err)
	assert.Equal(t, config.DefaultDatabasePath, cfg.DatabasePath)
	assert.Equal(t, config.DefaultHTTPAddr, cfg.HTTPAddr)
	assert.Equal(t, config.DefaultMaxComponentThreads, cfg.MaxComponentThreads)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Empty(t, cfg.ChatOrigins)
	assert.False(t, cfg.Matrix.Enabled())
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_PATH", "/tmp/cc.db")
	t.Setenv("MAX_COMPONENT_THREADS", "8")
	t.Setenv("PREVIEW_RETRY_ATTEMPTS", "nope")
	t.Setenv("CANVASCHAT_LOG_LEVEL", "debug")
	t.Setenv("CANVASCHAT_LOG_FORMAT", "JSON")
	t.Setenv("MATRIX_HOMESERVER", "https://matrix.example.com")
	t.Setenv("MATRIX_USER_ID", "@canvas:example.com")
	t.Setenv("MATRIX_ACCESS_TOKEN", "secret")
	t.Setenv("MATRIX_ROOMS", " !a:example.com, ,!b:example.com ")
	t.Setenv("CHAT_ALLOWED_ORIGINS", "https://ui.example.com")

	cfg, err := config.FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/cc.db", cfg.DatabasePath)
	assert.Equal(t, 8, cfg.MaxComponentThreads)
	assert.Equal(t, config.DefaultPreviewRetryAttempts, cfg.PreviewRetryAttempts)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.True(t, cfg.Matrix.Enabled())
	assert.Equal(t, []string{"!a:example.com", "!b:example.com"}, cfg.Matrix.Rooms)
	assert.Equal(t, []string{"https://ui.example.com"}, cfg.ChatOrigins)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"bad level", map[string]string{"CANVASCHAT_LOG_LEVEL": "loud"}, "CANVASCHAT_LOG_LEVEL"},
		{"bad format", map[string]string{"CANVASCHAT_LOG_FORMAT": "xml"}, "CANVASCHAT_LOG_FORMAT"},
		{"zero threads", map[string]string{"MAX_COMPONENT_THREADS": "0"}, "MAX_COMPONENT_THREADS"},
		{"matrix without token", map[string]string{"MATRIX_HOMESERVER": "https://m.example.com", "MATRIX_USER_ID": "@a:b", "MATRIX_ROOMS": "!r:b"}, "MATRIX_ACCESS_TOKEN"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, name := range []string{"CANVASCHAT_LOG_LEVEL", "CANVASCHAT_LOG_FORMAT", "MAX_COMPONENT_THREADS", "MATRIX_HOMESERVER", "MATRIX_USER_ID", "MATRIX_ACCESS_TOKEN", "MATRIX_ROOMS"} {
				t.Setenv(name, "")
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := config.FromEnv()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestMatrixConfigRedactsToken(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	log.Info("matrix", "config", config.MatrixConfig{Homeserver: "https://m.example.com", AccessToken: "syt_secret_token"})
	assert.NotContains(t, buf.String(), "syt_secret_token")
	assert.Contains(t, buf.String(), "[REDACTED]")
}
