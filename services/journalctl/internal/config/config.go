package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"

	libconfig "tripjournal/libs/config"
	"tripjournal/libs/journal"
)

// Config represents journalctl settings loaded from .env, file and env.
type Config struct {
	BaseURL     string        `yaml:"baseUrl" toml:"baseUrl" env:"JOURNAL_BASE_URL"`
	Username    string        `yaml:"username" toml:"username" env:"JOURNAL_USERNAME"`
	Password    string        `yaml:"password" toml:"password" env:"JOURNAL_PASSWORD"`
	HTTPTimeout time.Duration `yaml:"httpTimeout" toml:"httpTimeout" env:"JOURNAL_HTTP_TIMEOUT"`
}

// Load reads envFile into the process environment when it exists and then
// applies the shared config loader. Variables already set win over the file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{
		BaseURL:     journal.DefaultBaseURL,
		HTTPTimeout: 10 * time.Second,
	}
	if err := libconfig.LoadConfig(cfg); err != nil {
		return nil, err
	}

	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	if cfg.BaseURL == "" {
		cfg.BaseURL = journal.DefaultBaseURL
	}
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = 10 * time.Second
	}
	return cfg, nil
}

// RequireCredentials reports whether a username and password are configured.
func (c *Config) RequireCredentials() error {
	if c.Username == "" || c.Password == "" {
		return errors.New("JOURNAL_USERNAME and JOURNAL_PASSWORD must be set")
	}
	return nil
}
