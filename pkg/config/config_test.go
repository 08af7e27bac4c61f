package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shouni/gemini-reproject-kit/pkg/generator"
)

var envNames = []string{
	"GEMINI_API_KEY", "GOOGLE_API_KEY", "LOG_LEVEL", "LOG_FORMAT", "WEB_ADDR",
	"REQUEST_TIMEOUT_SECONDS", "HTTP_TIMEOUT_SECONDS", "PREFER_IPV4", "MAX_UPLOAD_MB",
	"GEMINI_STANDARD_MODEL", "GEMINI_PRO_MODEL",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range envNames {
		t.Setenv(name, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Empty(t, cfg.GeminiAPIKey)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, ":8080", cfg.WebAddr)
	assert.Equal(t, 180*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 180*time.Second, cfg.HTTPTimeout)
	assert.True(t, cfg.PreferIPv4)
	assert.Equal(t, int64(25<<20), cfg.MaxUploadBytes)
	assert.Equal(t, generator.ModelStandard, cfg.StandardModel)
	assert.Equal(t, generator.ModelPro, cfg.ProModel)
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("GOOGLE_API_KEY", "google")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("WEB_ADDR", "127.0.0.1:9000")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "30")
	t.Setenv("HTTP_TIMEOUT_SECONDS", "-1")
	t.Setenv("PREFER_IPV4", "false")
	t.Setenv("MAX_UPLOAD_MB", "notanumber")
	t.Setenv("GEMINI_PRO_MODEL", "custom-pro")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "google", cfg.GeminiAPIKey)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "127.0.0.1:9000", cfg.WebAddr)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 180*time.Second, cfg.HTTPTimeout)
	assert.False(t, cfg.PreferIPv4)
	assert.Equal(t, int64(25<<20), cfg.MaxUploadBytes)
	assert.Equal(t, "custom-pro", cfg.ProModel)

	t.Setenv("GEMINI_API_KEY", "gemini")
	cfg, err = FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "gemini", cfg.GeminiAPIKey)
}

func TestFromEnv_InvalidLogFormat(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOG_FORMAT", "xml")

	_, err := FromEnv()
	assert.Error(t, err)
}
