// Package config loads and validates application configuration from a YAML
// file, with environment overrides for anything secret. Credential material
// never lives in source or in checked-in config.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   Server   `yaml:"server"`
	Database Database `yaml:"database"`
	Remote   Remote   `yaml:"remote"`
	Auth     Auth     `yaml:"auth"`
	Log      Log      `yaml:"log"`
}

type Server struct {
	Port int `yaml:"port"`
}

type Database struct {
	Path string `yaml:"path"`
}

// Remote configures the blob store mirror. Which bin service sits behind
// BaseURL is a deployment detail; the client only needs the save/load
// contract.
type Remote struct {
	BaseURL        string `yaml:"base_url"`
	BinID          string `yaml:"bin_id"`
	APIKey         string `yaml:"api_key"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type Auth struct {
	Username          string `yaml:"username"`
	PasswordHash      string `yaml:"password_hash"`
	JWTSecret         string `yaml:"jwt_secret"`
	SessionTTLMinutes int    `yaml:"session_ttl_minutes"`
}

type Log struct {
	Level string `yaml:"level"` // debug|info|warn|error
}

// Load reads the YAML file at path (skipped when path is empty), applies
// environment overrides and fills defaults. Missing config files are an
// error; missing optional values are not.
func Load(path string) (*Config, error) {
	var c Config

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("unmarshal config %s: %w", path, err)
		}
	}

	c.applyEnv()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// applyEnv overlays environment variables. Secrets are env-only by
// convention; the YAML keys exist for local development.
func (c *Config) applyEnv() {
	if v := os.Getenv("EDUBLOG_DB_PATH"); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv("EDUBLOG_REMOTE_BASE_URL"); v != "" {
		c.Remote.BaseURL = v
	}
	if v := os.Getenv("EDUBLOG_REMOTE_BIN_ID"); v != "" {
		c.Remote.BinID = v
	}
	if v := os.Getenv("EDUBLOG_REMOTE_API_KEY"); v != "" {
		c.Remote.APIKey = v
	}
	if v := os.Getenv("EDUBLOG_ADMIN_USERNAME"); v != "" {
		c.Auth.Username = v
	}
	if v := os.Getenv("EDUBLOG_ADMIN_PASSWORD_HASH"); v != "" {
		c.Auth.PasswordHash = v
	}
	if v := os.Getenv("EDUBLOG_JWT_SECRET"); v != "" {
		c.Auth.JWTSecret = v
	}
}

// Validate checks ranges and fills defaults. There is deliberately no
// default password hash: with none configured, every login fails.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.New("server.port must be in [0, 65535]")
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Database.Path == "" {
		c.Database.Path = "./edublog.db"
	}
	if c.Remote.TimeoutSeconds < 0 {
		return errors.New("remote.timeout_seconds must be >= 0")
	}
	if c.Remote.TimeoutSeconds == 0 {
		c.Remote.TimeoutSeconds = 5
	}
	if c.Auth.Username == "" {
		c.Auth.Username = "admin"
	}
	if c.Auth.SessionTTLMinutes < 0 {
		return errors.New("auth.session_ttl_minutes must be >= 0")
	}
	if c.Auth.SessionTTLMinutes == 0 {
		c.Auth.SessionTTLMinutes = 60
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	return nil
}
