package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	libconfig "tripjournal/libs/config"
)

// Config represents journal-stub configuration loaded from file/env.
type Config struct {
	HTTP struct {
		Port string `yaml:"port" toml:"port" env:"JOURNAL_STUB_HTTP_PORT"`
	} `yaml:"http" toml:"http"`
	JWT struct {
		Secret           string `yaml:"secret" toml:"secret" env:"JOURNAL_STUB_JWT_SECRET"`
		ExpiresInMinutes int    `yaml:"expiresInMinutes" toml:"expiresInMinutes" env:"JOURNAL_STUB_JWT_EXPIRES_MINUTES"`
	} `yaml:"jwt" toml:"jwt"`
	CORS struct {
		Origins []string `yaml:"origins" toml:"origins" env:"JOURNAL_STUB_CORS_ORIGINS"`
	} `yaml:"cors" toml:"cors"`
	Redis struct {
		Addr     string `yaml:"addr" toml:"addr" env:"JOURNAL_STUB_REDIS_ADDR"`
		Password string `yaml:"password" toml:"password" env:"JOURNAL_STUB_REDIS_PASSWORD"`
	} `yaml:"redis" toml:"redis"`
	Login struct {
		MaxFailures int           `yaml:"maxFailures" toml:"maxFailures" env:"JOURNAL_STUB_LOGIN_MAX_FAILURES"`
		Window      time.Duration `yaml:"window" toml:"window" env:"JOURNAL_STUB_LOGIN_WINDOW"`
	} `yaml:"login" toml:"login"`
}

// Load reads configuration using the shared config loader.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.HTTP.Port = "8000"
	cfg.JWT.ExpiresInMinutes = 30
	cfg.CORS.Origins = []string{"*"}
	cfg.Login.MaxFailures = 5
	cfg.Login.Window = 15 * time.Minute

	if err := libconfig.LoadConfig(cfg); err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.JWT.Secret) == "" {
		return nil, errors.New("config: jwt secret is required")
	}
	if cfg.JWT.ExpiresInMinutes <= 0 {
		cfg.JWT.ExpiresInMinutes = 30
	}
	return cfg, nil
}

// HTTPAddress ensures we always return host:port formatted string.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.HTTP.Port)
	if port == "" {
		port = "8000"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}

// JWTExpiration converts configured expiry to duration.
func (c *Config) JWTExpiration() time.Duration {
	if c.JWT.ExpiresInMinutes <= 0 {
		return 30 * time.Minute
	}
	return time.Duration(c.JWT.ExpiresInMinutes) * time.Minute
}
