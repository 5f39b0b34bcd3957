// Package repomanager provides a concrete RepositoryManager for the supported
// SQL dialects, wiring together repository constructors and database
// migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/siteback/internal/dbx"
	"github.com/dmitrijs2005/siteback/internal/server/migrations"
	"github.com/dmitrijs2005/siteback/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/siteback/internal/server/repositories/callbacks"
	"github.com/dmitrijs2005/siteback/internal/server/repositories/reviews"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

type SQLRepositoryManager struct {
	dialect dbx.Dialect
}

func NewSQLRepositoryManager(dialect dbx.Dialect) *SQLRepositoryManager {
	return &SQLRepositoryManager{dialect: dialect}
}

func (m *SQLRepositoryManager) Dialect() dbx.Dialect {
	return m.dialect
}

// Accounts returns an accounts.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Accounts(db dbx.DBTX) accounts.Repository {
	return accounts.NewSQLRepository(db, m.dialect)
}

// Reviews returns a reviews.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Reviews(db dbx.DBTX) reviews.Repository {
	return reviews.NewSQLRepository(db, m.dialect)
}

// Callbacks returns a callbacks.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Callbacks(db dbx.DBTX) callbacks.Repository {
	return callbacks.NewSQLRepository(db, m.dialect)
}

var _ RepositoryManager = (*SQLRepositoryManager)(nil)

// migrateUp is a seam for testing.
var migrateUp = migrations.Up

// RunMigrations applies the embedded migrations for the manager's dialect.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	if _, err := migrateUp(ctx, db, m.dialect); err != nil {
		return err
	}
	return nil
}

// Open opens and pings a database for the named driver ("sqlite" or
// "postgres") and returns a manager for its dialect.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, *SQLRepositoryManager, error) {
	dialect, err := dbx.ParseDialect(driver)
	if err != nil {
		return nil, nil, err
	}

	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", dialect, err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("ping %s: %w", dialect, err)
	}

	return db, NewSQLRepositoryManager(dialect), nil
}
