package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/siteback/internal/dbx"
	"github.com/dmitrijs2005/siteback/internal/logging"
	"github.com/dmitrijs2005/siteback/internal/server/dbtest"
	"github.com/dmitrijs2005/siteback/internal/server/models"
	"github.com/dmitrijs2005/siteback/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/siteback/internal/server/repositories/callbacks"
	"github.com/dmitrijs2005/siteback/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/siteback/internal/server/repositories/reviews"
	"github.com/dmitrijs2005/siteback/internal/server/session"
)

type testEnv struct {
	db       *sql.DB
	manager  repomanager.RepositoryManager
	sessions *session.MemoryStore
	accounts *AccountService
	reviews  *ReviewService
	calls    *CallbackService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := dbtest.NewSQLite(t)
	m := repomanager.NewSQLRepositoryManager(dbx.SQLite)
	store := session.NewMemoryStore(0)
	l := logging.Discard()

	return &testEnv{
		db:       db,
		manager:  m,
		sessions: store,
		accounts: NewAccountService(db, m, store, l),
		reviews:  NewReviewService(db, m, l),
		calls:    NewCallbackService(db, m, l),
	}
}

func strp(s string) *string { return &s }

// fakeManager serves a canned accounts repository; used for failure paths
// a real database does not produce on demand.
type fakeManager struct {
	accounts accounts.Repository
}

func (f *fakeManager) Dialect() dbx.Dialect                         { return dbx.SQLite }
func (f *fakeManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (f *fakeManager) Accounts(dbx.DBTX) accounts.Repository        { return f.accounts }
func (f *fakeManager) Reviews(dbx.DBTX) reviews.Repository          { return nil }
func (f *fakeManager) Callbacks(dbx.DBTX) callbacks.Repository      { return nil }

type failingAccounts struct {
	err error
}

func (f *failingAccounts) Create(context.Context, *models.Account) (*models.Account, error) {
	return nil, f.err
}
func (f *failingAccounts) GetByID(context.Context, int64) (*models.Account, error) { return nil, f.err }
func (f *failingAccounts) GetByEmail(context.Context, string) (*models.Account, error) {
	return nil, f.err
}
func (f *failingAccounts) List(context.Context) ([]*models.Account, error) { return nil, f.err }
func (f *failingAccounts) Update(context.Context, int64, models.AccountPatch) error {
	return f.err
}
func (f *failingAccounts) SetCredential(context.Context, int64, []byte, []byte) error { return f.err }
func (f *failingAccounts) SetRole(context.Context, int64, models.Role) error          { return f.err }
