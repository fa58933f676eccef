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
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  host: "127.0.0.1"
  port: 9090
database:
  host: "db.internal"
  port: 5432
  user: "app"
  password: "pw"
  database: "carrental"
jwt:
  secret: "abc"
log:
  level: "debug"
scheduler:
  lifecycle_sweep: "0 0 3 * * *"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9090", cfg.GetServerAddress())
	assert.Equal(t, "0 0 3 * * *", cfg.Scheduler.LifecycleSweep)
	assert.Equal(t, "0 10 2 * * *", cfg.Scheduler.VehicleStatusSync, "unset specs fall back to defaults")
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 60, cfg.JWT.AccessTokenExpiry)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Contains(t, cfg.GetDatabaseConnectionString(), "host=db.internal")
	assert.Contains(t, cfg.GetDatabaseConnectionString(), "dbname=carrental")
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
database:
  host: "localhost"
  user: "app"
  database: "carrental"
jwt:
  secret: "abc"
`)

	t.Setenv("DB_HOST", "override.internal")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("JWT_SECRET", "env-secret")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "override.internal", cfg.Database.Host)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, "env-secret", cfg.JWT.Secret)
}

func TestLoadValidation(t *testing.T) {
	t.Run("MissingSecret", func(t *testing.T) {
		path := writeConfig(t, `
database:
  host: "localhost"
  user: "app"
  database: "carrental"
`)
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt secret is required")
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}
