package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"LIGHTWEIGHT_ADDR", "LIGHTWEIGHT_DB_DRIVER", "DATABASE_URL", "LIGHTWEIGHT_SECRET",
		"LIGHTWEIGHT_HASHER", "LIGHTWEIGHT_LOG_LEVEL", "REDIS_ADDR", "LIGHTWEIGHT_SECURE_COOKIE",
		"OIDC_ISSUER", "OIDC_CLIENT_ID", "OIDC_CLIENT_SECRET", "OIDC_REDIRECT_URL",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.False(t, cfg.Redis.Enabled)
	assert.False(t, cfg.OIDC.Enabled())
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "lightweight.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":9000"
database:
  driver: postgres
  dsn: postgres://localhost/lightweight
auth:
  secret: from-file
  token_ttl: 2h
redis:
  enabled: true
  ttl: 30s
log:
  level: debug
`), 0o600))

	t.Setenv("LIGHTWEIGHT_SECRET", "from-env")
	t.Setenv("LIGHTWEIGHT_SECURE_COOKIE", "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "postgres://localhost/lightweight", cfg.Database.DSN)
	assert.Equal(t, "from-env", cfg.Auth.Secret)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.True(t, cfg.Auth.SecureCookie)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 30*time.Second, cfg.Redis.TTL)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "stdout", cfg.Log.Output, "unset keys keep defaults")
	require.NoError(t, cfg.Validate())
}

func TestRedisAddrEnablesCache(t *testing.T) {
	clearEnv(t)
	t.Setenv("REDIS_ADDR", "cache:6379")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("server: [oops"), 0o600))
	_, err = Load(bad)
	require.Error(t, err)

	t.Setenv("LIGHTWEIGHT_SECURE_COOKIE", "maybe")
	_, err = Load("")
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := Default()
	valid.Auth.Secret = "s3cret"
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown driver", func(c *Config) { c.Database.Driver = "mysql" }},
		{"empty dsn", func(c *Config) { c.Database.DSN = "" }},
		{"empty secret", func(c *Config) { c.Auth.Secret = "" }},
		{"zero token ttl", func(c *Config) { c.Auth.TokenTTL = 0 }},
		{"redis without ttl", func(c *Config) { c.Redis.Enabled = true; c.Redis.TTL = 0 }},
		{"oidc without client", func(c *Config) { c.OIDC.Issuer = "https://idp.example.com" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid
			tc.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestDatabaseValidateIgnoresSecret(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Database.Validate())
	assert.Error(t, cfg.Validate())
}
