package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/siteback/internal/dbx"
	"github.com/dmitrijs2005/siteback/internal/server/models"
	"github.com/dmitrijs2005/siteback/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/siteback/internal/server/repositories/callbacks"
	"github.com/dmitrijs2005/siteback/internal/server/repositories/reviews"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorsReturnSQLRepositories(t *testing.T) {
	m := NewSQLRepositoryManager(dbx.Postgres)
	assert.Equal(t, dbx.Postgres, m.Dialect())

	var db *sql.DB

	_, ok := m.Accounts(db).(*accounts.SQLRepository)
	assert.True(t, ok)
	_, ok = m.Reviews(db).(*reviews.SQLRepository)
	assert.True(t, ok)
	_, ok = m.Callbacks(db).(*callbacks.SQLRepository)
	assert.True(t, ok)
}

func TestRunMigrations_PropagatesError(t *testing.T) {
	orig := migrateUp
	t.Cleanup(func() { migrateUp = orig })

	var gotDialect dbx.Dialect
	migrateUp = func(ctx context.Context, db *sql.DB, d dbx.Dialect) (int, error) {
		gotDialect = d
		return 0, errors.New("boom")
	}

	err := NewSQLRepositoryManager(dbx.Postgres).RunMigrations(context.Background(), nil)
	require.EqualError(t, err, "boom")
	assert.Equal(t, dbx.Postgres, gotDialect)
}

func TestOpen_SQLiteEndToEnd(t *testing.T) {
	ctx := context.Background()
	dsn := "file:" + filepath.Join(t.TempDir(), "site.db")

	db, m, err := Open(ctx, "sqlite", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, m.RunMigrations(ctx, db))

	a, err := m.Accounts(db).Create(ctx, &models.Account{
		FullName: "Ann", Email: "ann@example.com", PasswordHash: []byte("h"), PasswordSalt: []byte("s"),
	})
	require.NoError(t, err)
	assert.NotZero(t, a.ID)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, _, err := Open(context.Background(), "oracle", "x")
	assert.Error(t, err)
}
