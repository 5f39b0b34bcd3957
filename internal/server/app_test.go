package server

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/dmitrijs2005/siteback/internal/logging"
	"github.com/dmitrijs2005/siteback/internal/server/config"
	"github.com/dmitrijs2005/siteback/internal/server/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.HTTPAddr = "127.0.0.1:0"
	cfg.DatabaseDSN = "file:" + filepath.Join(t.TempDir(), "site.db") + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	return cfg
}

func TestNewApp_SeedsAdmin(t *testing.T) {
	cfg := testConfig(t)
	cfg.SeedAdmin = true
	cfg.AdminPassword = "s3cret"

	ctx := context.Background()
	app, err := newApp(ctx, cfg, logging.Discard())
	require.NoError(t, err)
	defer app.Close()

	token, err := app.accountService.Login(ctx, "admin@admin", "s3cret")
	require.NoError(t, err)

	id, err := app.accountService.Resolve(ctx, token)
	require.NoError(t, err)

	assert.NoError(t, app.accountService.RequireAdmin(ctx, id))
	assert.IsType(t, &session.MemoryStore{}, app.sessions)
}

func TestNewApp_NoSeedByDefault(t *testing.T) {
	ctx := context.Background()
	app, err := newApp(ctx, testConfig(t), logging.Discard())
	require.NoError(t, err)
	defer app.Close()

	accounts, err := app.accountService.ListAccounts(ctx)
	require.NoError(t, err)
	assert.Empty(t, accounts)
}

func TestNewApp_InvalidConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.SeedAdmin = true

	_, err := newApp(context.Background(), cfg, logging.Discard())
	assert.ErrorContains(t, err, "config error")
}

func TestNewApp_BadDriver(t *testing.T) {
	cfg := testConfig(t)
	cfg.DatabaseDriver = "oracle"

	_, err := newApp(context.Background(), cfg, logging.Discard())
	assert.ErrorContains(t, err, "db init error")
}

func TestNewApp_RedisSessions(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := testConfig(t)
	cfg.SessionBackend = "redis"
	cfg.RedisAddr = mr.Addr()

	app, err := newApp(context.Background(), cfg, logging.Discard())
	require.NoError(t, err)
	defer app.Close()

	assert.IsType(t, &session.RedisStore{}, app.sessions)
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	cfg := testConfig(t)
	cfg.SessionTTL = time.Hour

	app, err := newApp(context.Background(), cfg, logging.Discard())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.Run(ctx)
		close(done)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("app did not stop")
	}
}

func TestSweepInterval(t *testing.T) {
	assert.Equal(t, 10*time.Second, sweepInterval(10*time.Second))
	assert.Equal(t, time.Minute, sweepInterval(24*time.Hour))
}
