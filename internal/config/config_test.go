package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestMustLoad(t *testing.T) {
	t.Run("Reads values from file", func(t *testing.T) {
		// Given: a config file with every section filled
		path := writeConfig(t, `
log-level: debug
mode: terminal
http-port: "8080"
socket-port: "8081"
storage: redis
game-id: kitchen
redis:
  host: cache
  port: "6380"
`)

		// When: the config is loaded
		conf := MustLoad(path)

		// Then: the values come from the file
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, ModeTerminal, conf.Mode)
		assert.Equal(t, "8080", conf.HTTPPort)
		assert.Equal(t, "8081", conf.SocketPort)
		assert.Equal(t, StorageRedis, conf.Storage)
		assert.Equal(t, "kitchen", conf.GameID)
		assert.Equal(t, "cache:6380", conf.Redis.GetRedisAddr())
	})

	t.Run("Falls back to defaults", func(t *testing.T) {
		// Given: a config file that only sets the log level
		path := writeConfig(t, "log-level: warn\n")

		// When: the config is loaded
		conf := MustLoad(path)

		// Then: the defaults are used for the rest
		assert.Equal(t, "warn", conf.LogLevel)
		assert.Equal(t, ModeWeb, conf.Mode)
		assert.Equal(t, "9090", conf.HTTPPort)
		assert.Equal(t, "9091", conf.SocketPort)
		assert.Equal(t, StorageMemory, conf.Storage)
		assert.Equal(t, "local", conf.GameID)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
	})

	t.Run("Panics on missing file", func(t *testing.T) {
		// Given: a path that does not exist
		path := filepath.Join(t.TempDir(), "missing.yml")

		// Then: loading panics
		assert.Panics(t, func() {
			MustLoad(path)
		})
	})
}
