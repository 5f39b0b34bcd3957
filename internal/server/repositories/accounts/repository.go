package accounts

import (
	"context"

	"github.com/dmitrijs2005/siteback/internal/server/models"
)

// Repository is the account directory. Emails are stored and looked up in
// their canonical lowercase form; uniqueness of email and phone is left to
// the database so concurrent inserts cannot both succeed.
type Repository interface {
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
	GetByID(ctx context.Context, id int64) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	List(ctx context.Context) ([]*models.Account, error)
	Update(ctx context.Context, id int64, patch models.AccountPatch) error
	SetCredential(ctx context.Context, id int64, hash, salt []byte) error
	SetRole(ctx context.Context, id int64, role models.Role) error
}
