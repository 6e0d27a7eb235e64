package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var overrideKeys = []string{
	"PORT", "DATABASE_URL", "PGHOST", "PGPORT", "PGDATABASE", "PGUSER", "PGPASSWORD",
	"PGPOOL_MAX", "PG_IDLE_TIMEOUT_MS", "PG_CONNECT_TIMEOUT_MS",
	"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "JWT_SECRET", PathEnv,
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range overrideKeys {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "velodrive.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFile_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFile("")

	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 10, cfg.Database.MaxConns)
	assert.Equal(t, 10*time.Second, cfg.Database.IdleTimeout())
	assert.Equal(t, 5*time.Second, cfg.Database.ConnectTimeout())
	assert.Equal(t, 5*time.Minute, cfg.Redis.LookupTTL())
	assert.Equal(t, 4*time.Minute, cfg.Jobs.LookupRefreshInterval())
	assert.Len(t, cfg.Auth.JWTSecret, 32, "a development secret is generated")
	assert.Equal(t, "host=127.0.0.1 port=5432 dbname=postgres user=postgres password=''", cfg.Database.DSN())
}

func TestLoadFile_TOMLThenEnv(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
[server]
port = 9090

[database]
host = "db.internal"
name = "velodrive"
max_conns = 4

[redis]
lookup_ttl_seconds = 60

[auth]
jwt_secret = "from-file"

[jobs]
lookup_refresh_seconds = 0
`)
	t.Setenv("PGHOST", "override.internal")
	t.Setenv("PGPOOL_MAX", "not-a-number")
	t.Setenv("REDIS_DB", "2")

	cfg, err := LoadFile(path)

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "override.internal", cfg.Database.Host)
	assert.Equal(t, "velodrive", cfg.Database.Name)
	assert.Equal(t, 4, cfg.Database.MaxConns, "invalid env value keeps the file value")
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, time.Minute, cfg.Redis.LookupTTL())
	assert.Equal(t, "from-file", cfg.Auth.JWTSecret)
	assert.Equal(t, time.Duration(0), cfg.Jobs.LookupRefreshInterval())
}

func TestLoad_UsesConfigPathEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(PathEnv, writeConfig(t, "[server]\nport = 7000\n"))

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Server.Port)
}

func TestLoadFile_DatabaseURLWins(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://app:pw@db:5432/velodrive")

	cfg, err := LoadFile("")

	require.NoError(t, err)
	assert.Equal(t, "postgres://app:pw@db:5432/velodrive", cfg.Database.DSN())
}

func TestLoadFile_Errors(t *testing.T) {
	clearEnv(t)

	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = LoadFile(writeConfig(t, "[server]\nport = 0\n"))
	assert.ErrorContains(t, err, "server.port")
}

func TestDSNQuoting(t *testing.T) {
	d := DatabaseConfig{Host: "h", Port: 1, Name: "db", User: "u", Password: "it's secret"}
	assert.Equal(t, `host=h port=1 dbname=db user=u password='it\'s secret'`, d.DSN())
}
