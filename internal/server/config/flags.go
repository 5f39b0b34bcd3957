package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/siteback/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
//	-a string          HTTP bind address (e.g. ":3000")
//	-driver string     database driver: sqlite or postgres
//	-d string          database DSN
//	-sessions string   session backend: memory or redis
//	-redis string      Redis address
//	-ttl int           session lifetime in minutes, 0 = until logout
//	-secure            mark the sid cookie Secure
//	-seed-admin        create or repair the admin account at startup
//	-admin-email string
//	-admin-password string
//	-log-level string
//	-static string     directory served at "/"
//
// Only these flags are taken from os.Args; -c/-config belongs to parseJson.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:],
		[]string{"-a", "-driver", "-d", "-sessions", "-redis", "-ttl", "-admin-email", "-admin-password", "-log-level", "-static"},
		"-secure", "-seed-admin")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDriver, "driver", config.DatabaseDriver, "database driver (sqlite|postgres)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SessionBackend, "sessions", config.SessionBackend, "session backend (memory|redis)")
	fs.StringVar(&config.RedisAddr, "redis", config.RedisAddr, "redis address")

	ttl := fs.Int("ttl", int(config.SessionTTL.Minutes()), "session lifetime (in minutes), 0 = until logout")

	fs.BoolVar(&config.CookieSecure, "secure", config.CookieSecure, "set Secure on the session cookie")
	fs.BoolVar(&config.SeedAdmin, "seed-admin", config.SeedAdmin, "create or repair the admin account at startup")
	fs.StringVar(&config.AdminEmail, "admin-email", config.AdminEmail, "admin account email")
	fs.StringVar(&config.AdminPassword, "admin-password", config.AdminPassword, "admin account password")
	fs.StringVar(&config.LogLevel, "log-level", config.LogLevel, "log level (debug|info|warn|error)")
	fs.StringVar(&config.StaticDir, "static", config.StaticDir, "directory with static site files")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// -ttl only wins when given, so a JSON "90s" is not rounded to minutes.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "ttl" {
			config.SessionTTL = time.Duration(*ttl) * time.Minute
		}
	})
}
