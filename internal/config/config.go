// Package config loads the server configuration from an optional YAML file
// and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"lightweight/internal/logger"
)

// Config is the full runtime configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Hasher   HasherConfig   `yaml:"hasher"`
	Log      logger.Config  `yaml:"log"`
	Redis    RedisConfig    `yaml:"redis"`
	OIDC     OIDCConfig     `yaml:"oidc"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"` // sqlite, postgres
	DSN    string `yaml:"dsn"`
}

// Validate checks the settings needed to open the record store. The
// administrative commands only need these.
func (d DatabaseConfig) Validate() error {
	switch d.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("database.driver: unsupported driver %q", d.Driver)
	}
	if d.DSN == "" {
		return errors.New("database.dsn is required")
	}
	return nil
}

type AuthConfig struct {
	Secret       string        `yaml:"secret"`
	TokenTTL     time.Duration `yaml:"token_ttl"`
	SecureCookie bool          `yaml:"secure_cookie"`
}

type HasherConfig struct {
	Algorithm string `yaml:"algorithm"`
}

// RedisConfig configures the optional profile-image cache.
type RedisConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

// OIDCConfig configures single sign-on. SSO is off while Issuer is empty.
type OIDCConfig struct {
	Issuer       string `yaml:"issuer"`
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	RedirectURL  string `yaml:"redirect_url"`
}

// Enabled reports whether SSO is configured.
func (c OIDCConfig) Enabled() bool { return c.Issuer != "" }

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Server:   ServerConfig{Addr: ":8080", ShutdownTimeout: 10 * time.Second},
		Database: DatabaseConfig{Driver: "sqlite", DSN: "lightweight.db"},
		Auth:     AuthConfig{TokenTTL: 7 * 24 * time.Hour},
		Hasher:   HasherConfig{Algorithm: "sha256"},
		Log:      logger.Config{Level: "info", Format: "console", Output: "stdout"},
		Redis:    RedisConfig{Addr: "localhost:6379", TTL: 10 * time.Minute},
	}
}

// Load reads path over the defaults, when path is not empty, and then applies
// environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.Server.Addr = env("LIGHTWEIGHT_ADDR", c.Server.Addr)
	c.Database.Driver = env("LIGHTWEIGHT_DB_DRIVER", c.Database.Driver)
	c.Database.DSN = env("DATABASE_URL", c.Database.DSN)
	c.Auth.Secret = env("LIGHTWEIGHT_SECRET", c.Auth.Secret)
	c.Hasher.Algorithm = env("LIGHTWEIGHT_HASHER", c.Hasher.Algorithm)
	c.Log.Level = env("LIGHTWEIGHT_LOG_LEVEL", c.Log.Level)
	c.OIDC.Issuer = env("OIDC_ISSUER", c.OIDC.Issuer)
	c.OIDC.ClientID = env("OIDC_CLIENT_ID", c.OIDC.ClientID)
	c.OIDC.ClientSecret = env("OIDC_CLIENT_SECRET", c.OIDC.ClientSecret)
	c.OIDC.RedirectURL = env("OIDC_REDIRECT_URL", c.OIDC.RedirectURL)

	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		c.Redis.Addr = addr
		c.Redis.Enabled = true
	}
	if v := os.Getenv("LIGHTWEIGHT_SECURE_COOKIE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("LIGHTWEIGHT_SECURE_COOKIE: %w", err)
		}
		c.Auth.SecureCookie = b
	}
	return nil
}

// Validate reports the first setting that would keep the server from
// starting.
func (c Config) Validate() error {
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if c.Auth.Secret == "" {
		return errors.New("auth.secret is required (set LIGHTWEIGHT_SECRET)")
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("auth.token_ttl must be positive")
	}
	if c.Redis.Enabled && c.Redis.TTL <= 0 {
		return errors.New("redis.ttl must be positive")
	}
	if c.OIDC.Enabled() && (c.OIDC.ClientID == "" || c.OIDC.RedirectURL == "") {
		return errors.New("oidc: client_id and redirect_url are required when issuer is set")
	}
	return nil
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
