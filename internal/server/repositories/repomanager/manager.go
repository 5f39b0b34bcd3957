package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/siteback/internal/dbx"
	"github.com/dmitrijs2005/siteback/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/siteback/internal/server/repositories/callbacks"
	"github.com/dmitrijs2005/siteback/internal/server/repositories/reviews"
)

// RepositoryManager vends repositories bound to a DBTX, so the same code runs
// on *sql.DB or inside a transaction.
type RepositoryManager interface {
	Dialect() dbx.Dialect
	RunMigrations(context.Context, *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
	Reviews(db dbx.DBTX) reviews.Repository
	Callbacks(db dbx.DBTX) callbacks.Repository
}
