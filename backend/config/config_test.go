package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "auth-token", cfg.Auth.CookieName)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.Equal(t, "dev-secret", cfg.Auth.TokenSecret)
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.True(t, cfg.Development())
	assert.False(t, cfg.SecureCookies())
	assert.Equal(t, "127.0.0.1:3000", cfg.Server.Addr())
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8080
  env: production
db:
  driver: MySQL
  name: kitchen
auth:
  session_ttl: 48h
  token_secret: s3cret
redis:
  addr: 127.0.0.1:6379
  stats_ttl: 30s
log_level: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.False(t, cfg.Development())
	assert.True(t, cfg.SecureCookies())
	assert.Equal(t, "mysql", cfg.DB.Driver)
	assert.Equal(t, "kitchen", cfg.DB.Name)
	assert.Equal(t, 48*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, "s3cret", cfg.Auth.TokenSecret)
	assert.Equal(t, "127.0.0.1:6379", cfg.Redis.Addr)
	assert.Equal(t, 30*time.Second, cfg.Redis.StatsTTL)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 8080\n")
	t.Setenv("CULINARY_SERVER_PORT", "9090")
	t.Setenv("CULINARY_ADMIN_EMAIL", "root@example.com")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "root@example.com", cfg.Admin.Email)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadRequiresTokenSecretOutsideDevelopment(t *testing.T) {
	path := writeConfig(t, "server:\n  env: production\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "auth.token_secret")

	t.Setenv("CULINARY_AUTH_TOKEN_SECRET", "from-env")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Auth.TokenSecret)
}

func TestLoadTrustedProxies(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Empty(t, cfg.Server.TrustedProxies)

	path := writeConfig(t, "server:\n  trusted_proxies: [127.0.0.1, 10.0.0.0/8]\n")
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"127.0.0.1", "10.0.0.0/8"}, cfg.Server.TrustedProxies)
}
