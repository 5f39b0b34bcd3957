// Package config handles configuration for the site server: defaults, an
// optional JSON file, SITE_* environment variables and command-line flags,
// applied in that order.
package config

import (
	"errors"
	"time"
)

// Config holds runtime settings for the site backend.
//
// Fields:
//   - HTTPAddr: bind address of the HTTP server.
//   - DatabaseDriver / DatabaseDSN: "sqlite" (default) or "postgres" and its DSN.
//   - SessionBackend: "memory" (default) or "redis"; RedisAddr/RedisPassword/RedisDB
//     are used by the latter.
//   - SessionTTL: session lifetime; zero keeps sessions until logout.
//   - CookieSecure: sets the Secure attribute on the sid cookie.
//   - SeedAdmin: creates or repairs the AdminEmail account at startup. Off by default.
//   - StaticDir: when set, files from this directory are served at "/".
type Config struct {
	HTTPAddr       string
	DatabaseDriver string
	DatabaseDSN    string
	SessionBackend string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	SessionTTL     time.Duration
	CookieSecure   bool
	SeedAdmin      bool
	AdminEmail     string
	AdminPassword  string
	AdminName      string
	LogLevel       string
	StaticDir      string
}

// LoadDefaults populates Config with development defaults.
// Admin seeding stays off and there is no default admin password.
func (c *Config) LoadDefaults() {
	c.HTTPAddr = ":3000"
	c.DatabaseDriver = "sqlite"
	c.DatabaseDSN = "file:site.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	c.SessionBackend = "memory"
	c.RedisAddr = "127.0.0.1:6379"
	c.SessionTTL = 0
	c.AdminEmail = "admin@admin"
	c.AdminName = "Administrator"
	c.LogLevel = "info"
}

// Validate reports settings that cannot work together.
func (c *Config) Validate() error {
	switch c.SessionBackend {
	case "memory", "redis":
	default:
		return errors.New("session backend must be memory or redis")
	}
	if c.SessionTTL < 0 {
		return errors.New("session ttl must not be negative")
	}
	if c.SeedAdmin {
		if c.AdminEmail == "" {
			return errors.New("admin seeding needs an admin email")
		}
		if c.AdminPassword == "" {
			return errors.New("admin seeding needs an admin password (SITE_ADMIN_PASSWORD or -admin-password)")
		}
	}
	return nil
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
