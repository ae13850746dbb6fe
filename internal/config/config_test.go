package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:5555", cfg.Server.Addr)
	assert.Empty(t, cfg.Server.CORSOrigins)
	assert.Equal(t, "data/recipebook.db", cfg.Database.Path)
	assert.Equal(t, SessionBackendSQLite, cfg.Session.Backend)
	assert.Equal(t, "session", cfg.Session.CookieName)
	assert.Empty(t, cfg.Session.Secret)
	assert.Equal(t, 7*24*time.Hour, cfg.SessionTTL())
	assert.False(t, cfg.Session.Secure)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "info", cfg.Log.Level)

	assert.ErrorContains(t, cfg.Validate(), "session secret is required")
}

func TestLoadFromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("RECIPEBOOK_SERVER_ADDR", "127.0.0.1:9000")
	t.Setenv("RECIPEBOOK_SERVER_CORSORIGINS", "http://a.test,http://b.test")
	t.Setenv("RECIPEBOOK_SESSION_BACKEND", "redis")
	t.Setenv("RECIPEBOOK_SESSION_SECRET", "shh")
	t.Setenv("RECIPEBOOK_SESSION_TTLMINUTES", "30")
	t.Setenv("RECIPEBOOK_SESSION_SECURE", "true")
	t.Setenv("RECIPEBOOK_REDIS_DB", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.CORSOrigins)
	assert.Equal(t, SessionBackendRedis, cfg.Session.Backend)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL())
	assert.True(t, cfg.Session.Secure)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.NoError(t, cfg.Validate())
}

func TestLoadDotEnvDoesNotOverrideEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	dotenv := "# local overrides\nRECIPEBOOK_SESSION_SECRET=\"from-dotenv\"\nRECIPEBOOK_LOG_LEVEL=debug\nnot a pair\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(dotenv), 0o600))
	t.Setenv("RECIPEBOOK_LOG_LEVEL", "warn")
	// register for restoration; loadDotEnv only sets variables that are absent
	t.Setenv("RECIPEBOOK_SESSION_SECRET", "")
	require.NoError(t, os.Unsetenv("RECIPEBOOK_SESSION_SECRET"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "from-dotenv", cfg.Session.Secret)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := func() Config {
		var cfg Config
		cfg.Session.Backend = SessionBackendSQLite
		cfg.Session.Secret = "shh"
		cfg.Session.TTLMinutes = 10
		return cfg
	}

	require.NoError(t, valid().Validate())

	cfg := valid()
	cfg.Session.Backend = "memcached"
	assert.ErrorContains(t, cfg.Validate(), `unknown session backend "memcached"`)

	cfg = valid()
	cfg.Session.TTLMinutes = 0
	assert.ErrorContains(t, cfg.Validate(), "ttl must be positive")

	cfg = valid()
	cfg.Session.Secret = "  "
	assert.ErrorContains(t, cfg.Validate(), "secret is required")
}
