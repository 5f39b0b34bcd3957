package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/siteback/internal/flagx"
	"github.com/dmitrijs2005/siteback/internal/timex"
)

// JsonConfig mirrors Config for JSON files. Absent keys leave the current
// value alone, so pointer types are used where the zero value is meaningful.
type JsonConfig struct {
	HTTPAddr       string          `json:"http_addr"`
	DatabaseDriver string          `json:"database_driver"`
	DatabaseDSN    string          `json:"database_dsn"`
	SessionBackend string          `json:"session_backend"`
	RedisAddr      string          `json:"redis_addr"`
	RedisPassword  string          `json:"redis_password"`
	RedisDB        *int            `json:"redis_db"`
	SessionTTL     *timex.Duration `json:"session_ttl"`
	CookieSecure   *bool           `json:"cookie_secure"`
	SeedAdmin      *bool           `json:"seed_admin"`
	AdminEmail     string          `json:"admin_email"`
	AdminPassword  string          `json:"admin_password"`
	AdminName      string          `json:"admin_name"`
	LogLevel       string          `json:"log_level"`
	StaticDir      string          `json:"static_dir"`
}

// parseJson loads the file named by -c/-config, if any, over config.
// An unreadable file or invalid JSON panics: the server cannot start with a
// half-applied configuration.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.HTTPAddr, c.HTTPAddr)
	setString(&config.DatabaseDriver, c.DatabaseDriver)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SessionBackend, c.SessionBackend)
	setString(&config.RedisAddr, c.RedisAddr)
	setString(&config.RedisPassword, c.RedisPassword)
	setString(&config.AdminEmail, c.AdminEmail)
	setString(&config.AdminPassword, c.AdminPassword)
	setString(&config.AdminName, c.AdminName)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.StaticDir, c.StaticDir)

	if c.RedisDB != nil {
		config.RedisDB = *c.RedisDB
	}
	if c.SessionTTL != nil {
		config.SessionTTL = c.SessionTTL.Duration
	}
	if c.CookieSecure != nil {
		config.CookieSecure = *c.CookieSecure
	}
	if c.SeedAdmin != nil {
		config.SeedAdmin = *c.SeedAdmin
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
