package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, DriverMemory, cfg.ProgressDriver())
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, time.Second, cfg.GetCountdownTick())
	assert.Equal(t, time.Duration(0), cfg.GetWriteTimeout())
	require.NoError(t, cfg.Validate())
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
app: herd-tracker
server:
  port: 9000
log:
  level: debug
storage:
  driver: sqlite
  sqlite_path: /tmp/herd.db
schedule:
  timezone: UTC
  countdown_tick: 500ms
`), 0o644))

	t.Setenv("PORT", "9100")
	t.Setenv("PROGRESS_DRIVER", "S3")
	t.Setenv("PROGRESS_S3_BUCKET", "herd-progress")
	t.Setenv("PROGRESS_S3_PATH_STYLE", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "herd-tracker", cfg.App)
	assert.Equal(t, 9100, cfg.Server.Port, "env wins over yaml")
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "/tmp/herd.db", cfg.Storage.SQLitePath)
	assert.Equal(t, DriverS3, cfg.ProgressDriver())
	assert.True(t, cfg.Progress.S3.PathStyle)
	assert.Equal(t, 500*time.Millisecond, cfg.GetCountdownTick())

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
	require.NoError(t, cfg.Validate())
}

func TestEnvOverrides_DSNImpliesPostgres(t *testing.T) {
	t.Run("DB_DSN alone selects postgres", func(t *testing.T) {
		t.Setenv("DB_DSN", "postgres://localhost/herd")
		t.Setenv("STORAGE_DRIVER", "")

		cfg := DefaultConfig()
		require.NoError(t, cfg.applyEnvOverrides())

		assert.Equal(t, DriverPostgres, cfg.Storage.Driver)
		assert.Equal(t, DriverPostgres, cfg.ProgressDriver())
	})

	t.Run("STORAGE_DRIVER wins over DB_DSN", func(t *testing.T) {
		t.Setenv("DB_DSN", "postgres://localhost/herd")
		t.Setenv("STORAGE_DRIVER", "sqlite")

		cfg := DefaultConfig()
		require.NoError(t, cfg.applyEnvOverrides())

		assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	})

	t.Run("bad PORT", func(t *testing.T) {
		t.Setenv("PORT", "eighty")

		cfg := DefaultConfig()
		assert.Error(t, cfg.applyEnvOverrides())
	})
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"unknown storage", func(c *Config) { c.Storage.Driver = "mongo" }},
		{"postgres without dsn", func(c *Config) { c.Storage.Driver = DriverPostgres }},
		{"unknown progress", func(c *Config) { c.Progress.Driver = "redis" }},
		{"s3 without bucket", func(c *Config) { c.Progress.Driver = DriverS3 }},
		{"sqlite progress on memory storage", func(c *Config) { c.Progress.Driver = DriverSQLite }},
		{"bad tick", func(c *Config) { c.Schedule.CountdownTick = "soon" }},
		{"zero tick", func(c *Config) { c.Schedule.CountdownTick = "0s" }},
		{"bad timezone", func(c *Config) { c.Schedule.Timezone = "Mars/Olympus" }},
		{"bad port", func(c *Config) { c.Server.Port = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
