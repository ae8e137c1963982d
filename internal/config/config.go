package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config holds the full server configuration. Environment variables are
// the primary source; CONFIG_FILE may point at a YAML file whose values
// override them.
type Config struct {
	WSAddr  string `env:"WS_ADDR" envDefault:":8081" yaml:"ws_addr"`
	APIAddr string `env:"API_ADDR" envDefault:":8080" yaml:"api_addr"`

	DatabaseURL string `env:"DATABASE_URL" yaml:"database_url"`
	RedisURL    string `env:"REDIS_URL" yaml:"redis_url"`

	JWTSecret string        `env:"JWT_SECRET" envDefault:"change-me-in-production" yaml:"jwt_secret"`
	JWTExpiry time.Duration `env:"JWT_EXPIRY" envDefault:"24h" yaml:"jwt_expiry"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info" yaml:"log_level"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console" yaml:"log_format"`
	LogFile   string `env:"LOG_FILE" yaml:"log_file"`

	AllowInsecureDefaults bool `env:"ALLOW_INSECURE_DEFAULTS" envDefault:"false" yaml:"allow_insecure_defaults"`
}

// Load parses the environment and, if CONFIG_FILE is set, overlays the
// YAML file on top.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}
	return cfg, nil
}

// Validate rejects configuration that must not reach production.
func (c *Config) Validate() error {
	if c.AllowInsecureDefaults {
		return nil
	}
	if c.JWTSecret == "change-me-in-production" {
		return fmt.Errorf("JWT_SECRET is the insecure default; set a real secret or ALLOW_INSECURE_DEFAULTS=true for local dev")
	}
	if len(c.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET too short (%d chars); 32 minimum", len(c.JWTSecret))
	}
	return nil
}
