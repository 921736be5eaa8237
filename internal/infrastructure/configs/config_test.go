package configs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, uint16(8080), cfg.HTTP.Port)
	assert.Equal(t, []string{"*"}, cfg.HTTP.AllowedOrigins)

	assert.Equal(t, 4, cfg.Rooms.CodeLength)
	assert.Equal(t, "ABCDEFGHJKMNPQRSTUVWXYZ23456789", cfg.Rooms.CodeAlphabet)
	assert.Equal(t, 5*time.Minute, cfg.Rooms.TTL)
	assert.Equal(t, 10, cfg.Rooms.MaxCodeAttempts)
	assert.Equal(t, time.Minute, cfg.Rooms.SweepInterval)

	assert.Equal(t, "zap", cfg.Logger.Logger)
	assert.Equal(t, "info", cfg.Logger.Level)

	assert.False(t, cfg.Tracing.Enabled)
	assert.False(t, cfg.AMQP.Enabled)
	assert.False(t, cfg.Audit.Enabled)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := []byte(`
http:
  port: 9090
rooms:
  code_length: 6
  ttl: 2m
logger:
  logger: zerolog
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, uint16(9090), cfg.HTTP.Port)
	assert.Equal(t, 6, cfg.Rooms.CodeLength)
	assert.Equal(t, 2*time.Minute, cfg.Rooms.TTL)
	assert.Equal(t, "zerolog", cfg.Logger.Logger)

	// Untouched keys still get defaults.
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, 10, cfg.Rooms.MaxCodeAttempts)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestEnvOverridesWin(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http:\n  port: 9090\n"), 0o600))

	t.Setenv("HTTP_PORT", "7070")
	t.Setenv("ROOM_TTL", "90s")
	t.Setenv("ROOM_CODE_ALPHABET", "ABC")
	t.Setenv("AMQP_ENABLED", "true")
	t.Setenv("RABBITMQ_URI", "amqp://relay:relay@mq:5672/")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, uint16(7070), cfg.HTTP.Port)
	assert.Equal(t, 90*time.Second, cfg.Rooms.TTL)
	assert.Equal(t, "ABC", cfg.Rooms.CodeAlphabet)
	assert.True(t, cfg.AMQP.Enabled)
	assert.Equal(t, "amqp://relay:relay@mq:5672/", cfg.AMQP.URI)
}
