package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tripjournal/libs/config"
)

type sampleConfig struct {
	HTTP struct {
		Port string `yaml:"port" toml:"port" env:"SAMPLE_HTTP_PORT"`
	} `yaml:"http" toml:"http"`
	Client struct {
		Timeout time.Duration `yaml:"timeout" toml:"timeout"`
		Retries int           `yaml:"retries" toml:"retries"`
	} `yaml:"client" toml:"client"`
	Origins []string `yaml:"origins" toml:"origins" env:"SAMPLE_ORIGINS"`
	Debug   bool     `yaml:"debug" toml:"debug" env:"SAMPLE_DEBUG"`
	Ignored string   `env:"-"`
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_envOverrides(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("SAMPLE_HTTP_PORT", "9090")
	t.Setenv("CLIENT_TIMEOUT", "1500ms")
	t.Setenv("CLIENT_RETRIES", "3")
	t.Setenv("SAMPLE_ORIGINS", "https://a.example.com, ,https://b.example.com")
	t.Setenv("SAMPLE_DEBUG", "true")
	t.Setenv("IGNORED", "nope")

	var cfg sampleConfig
	require.NoError(t, config.LoadConfig(&cfg))

	require.Equal(t, "9090", cfg.HTTP.Port)
	require.Equal(t, 1500*time.Millisecond, cfg.Client.Timeout)
	require.Equal(t, 3, cfg.Client.Retries)
	require.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.Origins)
	require.True(t, cfg.Debug)
	require.Empty(t, cfg.Ignored)
}

func TestLoadConfig_yamlFile(t *testing.T) {
	path := writeFile(t, "config.yaml", "http:\n  port: \"7000\"\nclient:\n  retries: 2\norigins:\n  - http://localhost:5173\n")
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("SAMPLE_HTTP_PORT", "")
	os.Unsetenv("SAMPLE_HTTP_PORT")

	var cfg sampleConfig
	require.NoError(t, config.LoadConfig(&cfg))

	require.Equal(t, "7000", cfg.HTTP.Port)
	require.Equal(t, 2, cfg.Client.Retries)
	require.Equal(t, []string{"http://localhost:5173"}, cfg.Origins)
}

func TestLoadConfig_tomlFileThenEnv(t *testing.T) {
	path := writeFile(t, "config.toml", "debug = false\n\n[http]\nport = \"7001\"\n\n[client]\nretries = 5\n")
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("SAMPLE_DEBUG", "1")

	var cfg sampleConfig
	require.NoError(t, config.LoadConfig(&cfg))

	require.Equal(t, 5, cfg.Client.Retries)
	require.True(t, cfg.Debug, "env must override the file")
}

func TestLoadConfig_errors(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")

	require.Error(t, config.LoadConfig(nil))

	var notStruct string
	require.Error(t, config.LoadConfig(&notStruct))

	t.Setenv("CLIENT_TIMEOUT", "soon")
	var cfg sampleConfig
	err := config.LoadConfig(&cfg)
	require.ErrorContains(t, err, "CLIENT_TIMEOUT")

	t.Setenv("CLIENT_TIMEOUT", "")
	os.Unsetenv("CLIENT_TIMEOUT")
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorContains(t, config.LoadConfig(&cfg), "read file")
}

func TestLoadConfig_blankEnvKeepsDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("CLIENT_TIMEOUT", " ")
	t.Setenv("SAMPLE_HTTP_PORT", "")

	cfg := sampleConfig{}
	cfg.HTTP.Port = "8000"
	require.NoError(t, config.LoadConfig(&cfg))
	require.Equal(t, "8000", cfg.HTTP.Port)
	require.Zero(t, cfg.Client.Timeout)
}
