// Package dbtest opens throwaway, fully migrated SQLite databases for tests.
package dbtest

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/siteback/internal/dbx"
	"github.com/dmitrijs2005/siteback/internal/server/migrations"
	_ "modernc.org/sqlite"
)

// NewSQLite returns a migrated database stored under t.TempDir(). It is
// closed when the test ends.
func NewSQLite(t testing.TB) *sql.DB {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "site.db") +
		"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

	db, err := sql.Open(dbx.SQLite.DriverName(), dsn)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if _, err := migrations.Up(context.Background(), db, dbx.SQLite); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return db
}
