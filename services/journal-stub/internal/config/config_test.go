package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("JOURNAL_STUB_JWT_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":8000", cfg.HTTPAddress())
	require.Equal(t, 30*time.Minute, cfg.JWTExpiration())
	require.Equal(t, []string{"*"}, cfg.CORS.Origins)
	require.Empty(t, cfg.Redis.Addr)
	require.Equal(t, 5, cfg.Login.MaxFailures)
	require.Equal(t, 15*time.Minute, cfg.Login.Window)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("JOURNAL_STUB_JWT_SECRET", "s3cret")
	t.Setenv("JOURNAL_STUB_HTTP_PORT", ":9100")
	t.Setenv("JOURNAL_STUB_JWT_EXPIRES_MINUTES", "5")
	t.Setenv("JOURNAL_STUB_CORS_ORIGINS", "http://localhost:5173,https://journal.example.com")
	t.Setenv("JOURNAL_STUB_REDIS_ADDR", "localhost:6379")
	t.Setenv("JOURNAL_STUB_LOGIN_WINDOW", "90s")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9100", cfg.HTTPAddress())
	require.Equal(t, 5*time.Minute, cfg.JWTExpiration())
	require.Equal(t, []string{"http://localhost:5173", "https://journal.example.com"}, cfg.CORS.Origins)
	require.Equal(t, "localhost:6379", cfg.Redis.Addr)
	require.Equal(t, 90*time.Second, cfg.Login.Window)
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("JOURNAL_STUB_JWT_SECRET", " ")

	_, err := Load()
	require.ErrorContains(t, err, "jwt secret")
}
