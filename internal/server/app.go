// Package server wires and runs the site backend: it opens the database and
// applies migrations, builds the session store and services, optionally seeds
// the admin account, and serves the HTTP API until a signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/siteback/internal/logging"
	"github.com/dmitrijs2005/siteback/internal/server/config"
	"github.com/dmitrijs2005/siteback/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/siteback/internal/server/rest"
	"github.com/dmitrijs2005/siteback/internal/server/services"
	"github.com/dmitrijs2005/siteback/internal/server/session"
	"github.com/redis/go-redis/v9"
)

const maxSweepInterval = time.Minute

type App struct {
	config          *config.Config
	logger          logging.Logger
	db              *sql.DB
	redis           *redis.Client
	sessions        session.Store
	accountService  *services.AccountService
	reviewService   *services.ReviewService
	callbackService *services.CallbackService
	metrics         *rest.Metrics
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSON(os.Stdout, c.LogLevel)
	return newApp(ctx, c, logger)
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	db, m, err := repomanager.Open(ctx, c.DatabaseDriver, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := m.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	app := &App{config: c, logger: logger, db: db}

	if err := app.initSessions(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	app.accountService = services.NewAccountService(db, m, app.sessions, logger)
	app.reviewService = services.NewReviewService(db, m, logger)
	app.callbackService = services.NewCallbackService(db, m, logger)
	app.metrics = rest.NewMetrics(app.sessions)

	if c.SeedAdmin {
		if _, _, err := app.accountService.SeedAdmin(ctx, c.AdminEmail, c.AdminPassword, c.AdminName); err != nil {
			app.Close()
			return nil, err
		}
	}

	return app, nil
}

func (app *App) initSessions(ctx context.Context) error {
	switch app.config.SessionBackend {
	case "redis":
		client, err := session.NewRedisClient(ctx, app.config.RedisAddr, app.config.RedisPassword, app.config.RedisDB)
		if err != nil {
			return fmt.Errorf("redis init error: %w", err)
		}
		app.redis = client
		app.sessions = session.NewRedisStore(client, app.config.SessionTTL)
	default:
		app.sessions = session.NewMemoryStore(app.config.SessionTTL)
	}
	return nil
}

// Close releases the database and Redis connections.
func (app *App) Close() {
	if app.redis != nil {
		_ = app.redis.Close()
	}
	if app.db != nil {
		_ = app.db.Close()
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	opts := rest.Options{CookieSecure: app.config.CookieSecure, StaticDir: app.config.StaticDir}
	s := rest.NewHTTPServer(app.config.HTTPAddr, app.logger, app.accountService, app.reviewService,
		app.callbackService, app.metrics, opts)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func sweepInterval(ttl time.Duration) time.Duration {
	if ttl < maxSweepInterval {
		return ttl
	}
	return maxSweepInterval
}

// Run serves until ctx is cancelled, a termination signal arrives or the
// HTTP server fails, then closes the app.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()
	defer app.Close()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	if app.config.SessionTTL > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			session.RunSweeper(ctx, app.sessions, sweepInterval(app.config.SessionTTL), app.logger)
		}()
	}

	wg.Wait()

	app.logger.Info(ctx, "App stopped")
}
