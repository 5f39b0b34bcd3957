package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// parseEnv overlays SITE_* environment variables. Malformed numeric or
// boolean values panic, like a bad JSON file does.
//
//	SITE_HTTP_ADDR, SITE_DB_DRIVER, SITE_DB_DSN, SITE_SESSION_BACKEND,
//	SITE_REDIS_ADDR, SITE_REDIS_PASSWORD, SITE_REDIS_DB, SITE_SESSION_TTL,
//	SITE_COOKIE_SECURE, SITE_SEED_ADMIN, SITE_ADMIN_EMAIL,
//	SITE_ADMIN_PASSWORD, SITE_ADMIN_NAME, SITE_LOG_LEVEL, SITE_STATIC_DIR
func parseEnv(config *Config) {
	envString("SITE_HTTP_ADDR", &config.HTTPAddr)
	envString("SITE_DB_DRIVER", &config.DatabaseDriver)
	envString("SITE_DB_DSN", &config.DatabaseDSN)
	envString("SITE_SESSION_BACKEND", &config.SessionBackend)
	envString("SITE_REDIS_ADDR", &config.RedisAddr)
	envString("SITE_REDIS_PASSWORD", &config.RedisPassword)
	envString("SITE_ADMIN_EMAIL", &config.AdminEmail)
	envString("SITE_ADMIN_PASSWORD", &config.AdminPassword)
	envString("SITE_ADMIN_NAME", &config.AdminName)
	envString("SITE_LOG_LEVEL", &config.LogLevel)
	envString("SITE_STATIC_DIR", &config.StaticDir)

	if v, ok := os.LookupEnv("SITE_REDIS_DB"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			panic(fmt.Errorf("SITE_REDIS_DB: %w", err))
		}
		config.RedisDB = n
	}
	if v, ok := os.LookupEnv("SITE_SESSION_TTL"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(fmt.Errorf("SITE_SESSION_TTL: %w", err))
		}
		config.SessionTTL = d
	}
	envBool("SITE_COOKIE_SECURE", &config.CookieSecure)
	envBool("SITE_SEED_ADMIN", &config.SeedAdmin)
}

func envString(name string, dst *string) {
	if v, ok := os.LookupEnv(name); ok && v != "" {
		*dst = v
	}
}

func envBool(name string, dst *bool) {
	v, ok := os.LookupEnv(name)
	if !ok || v == "" {
		return
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		panic(fmt.Errorf("%s: %w", name, err))
	}
	*dst = b
}
