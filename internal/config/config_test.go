package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	// Save current env and restore later
	origEndpoint := os.Getenv("MINIO_ENDPOINT")
	defer os.Setenv("MINIO_ENDPOINT", origEndpoint)

	os.Setenv("MINIO_ENDPOINT", "store.local:9000")
	os.Setenv("MINIO_USE_SSL", "true")
	os.Setenv("DB_MAX_OPEN_CONNS", "20")
	os.Setenv("FFMPEG_TIMEOUT_SEC", "120")
	defer os.Unsetenv("FFMPEG_TIMEOUT_SEC")

	cfg := Load()

	assert.Equal(t, "store.local:9000", cfg.MinIO.Endpoint)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.Equal(t, 120, cfg.Transcode.TimeoutSec)
}

func TestLoadDefaults(t *testing.T) {
	os.Unsetenv("FFMPEG_PATH")
	os.Unsetenv("FFMPEG_TIMEOUT_SEC")
	os.Unsetenv("MINIO_PUBLIC_BASE_URL")

	cfg := Load()

	assert.Equal(t, "ffmpeg", cfg.Transcode.FFmpegPath)
	assert.Equal(t, 300, cfg.Transcode.TimeoutSec)
	assert.Empty(t, cfg.MinIO.PublicBaseURL)
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	os.Setenv(key, "value")
	defer os.Unsetenv(key)

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	os.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	os.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	os.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	os.Unsetenv(key)
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	os.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	os.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	os.Unsetenv(key)
	assert.Equal(t, 10, getEnvInt(key, 10))
}
