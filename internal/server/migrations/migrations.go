// Package migrations embeds the goose SQL migrations, one directory per
// supported dialect, and applies them.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/dmitrijs2005/siteback/internal/dbx"
	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var Migrations embed.FS

func gooseDialect(d dbx.Dialect) goose.Dialect {
	if d == dbx.Postgres {
		return goose.DialectPostgres
	}
	return goose.DialectSQLite3
}

// Up applies every pending migration for the dialect and returns how many
// were applied.
func Up(ctx context.Context, db *sql.DB, dialect dbx.Dialect) (int, error) {
	fsys, err := fs.Sub(Migrations, string(dialect))
	if err != nil {
		return 0, err
	}

	provider, err := goose.NewProvider(gooseDialect(dialect), db, fsys)
	if err != nil {
		return 0, fmt.Errorf("goose provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return 0, fmt.Errorf("migrate: %w", err)
	}
	return len(results), nil
}
