// Package services contains server-side business logic. This file implements
// AccountService: registration, login and logout over the session store,
// profile reads and updates, and the admin operations on the directory.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/siteback/internal/common"
	"github.com/dmitrijs2005/siteback/internal/cryptox"
	"github.com/dmitrijs2005/siteback/internal/dbx"
	"github.com/dmitrijs2005/siteback/internal/logging"
	"github.com/dmitrijs2005/siteback/internal/server/models"
	"github.com/dmitrijs2005/siteback/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/siteback/internal/server/session"
)

type AccountService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	sessions    session.Store
	log         logging.Logger
}

func NewAccountService(db *sql.DB, m repomanager.RepositoryManager, sessions session.Store, l logging.Logger) *AccountService {
	return &AccountService{
		db:          db,
		repomanager: m,
		sessions:    sessions,
		log:         l.With("module", "accounts"),
	}
}

// Register creates a user account and logs it in. The email is stored
// lowercased; a second registration differing only in case fails with
// common.ErrEmailExists.
func (s *AccountService) Register(ctx context.Context, fullName, email, password string) (string, *models.Account, error) {
	fullName = strings.TrimSpace(fullName)
	email = models.NormalizeEmail(email)
	if fullName == "" || email == "" || password == "" {
		return "", nil, common.ErrMissingFields
	}

	salt := cryptox.GenerateSalt()
	account := &models.Account{
		FullName:     fullName,
		Email:        email,
		PasswordHash: cryptox.HashPassword(password, salt),
		PasswordSalt: salt,
		Role:         models.RoleUser,
	}

	account, err := s.repomanager.Accounts(s.db).Create(ctx, account)
	if err != nil {
		if errors.Is(err, common.ErrEmailExists) {
			return "", nil, common.ErrEmailExists
		}
		return "", nil, fmt.Errorf("error creating account: %w", err)
	}

	token, err := s.sessions.Create(ctx, account.ID)
	if err != nil {
		return "", nil, fmt.Errorf("error creating session: %w", err)
	}

	s.log.Info(ctx, "account registered", "account_id", account.ID)
	return token, account, nil
}

// Login checks the credentials and opens a new session. An unknown email and
// a wrong password both give common.ErrInvalidCredentials, and both cost one
// key derivation.
func (s *AccountService) Login(ctx context.Context, login, password string) (string, error) {
	email := models.NormalizeEmail(login)
	if email == "" || password == "" {
		return "", common.ErrMissingFields
	}

	account, err := s.repomanager.Accounts(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			cryptox.VerifyPassword(password, s.getRandomSalt(), nil)
			return "", common.ErrInvalidCredentials
		}
		return "", fmt.Errorf("error looking up account: %w", err)
	}

	if !cryptox.VerifyPassword(password, account.PasswordSalt, account.PasswordHash) {
		s.log.Debug(ctx, "wrong password", "account_id", account.ID)
		return "", common.ErrInvalidCredentials
	}

	token, err := s.sessions.Create(ctx, account.ID)
	if err != nil {
		return "", fmt.Errorf("error creating session: %w", err)
	}
	return token, nil
}

// Logout destroys the session behind token. Empty or unknown tokens are fine.
func (s *AccountService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Destroy(ctx, token)
}

// Resolve returns the account a session token belongs to, or
// common.ErrorUnauthorized.
func (s *AccountService) Resolve(ctx context.Context, token string) (int64, error) {
	if token == "" {
		return 0, common.ErrorUnauthorized
	}

	id, err := s.sessions.Resolve(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) || errors.Is(err, common.ErrSessionExpired) {
			return 0, common.ErrorUnauthorized
		}
		return 0, fmt.Errorf("error resolving session: %w", err)
	}
	return id, nil
}

func (s *AccountService) Profile(ctx context.Context, id int64) (*models.Account, error) {
	return s.repomanager.Accounts(s.db).GetByID(ctx, id)
}

// UpdateProfile applies a self-service patch. The email is not editable here.
func (s *AccountService) UpdateProfile(ctx context.Context, id int64, patch models.AccountPatch) error {
	patch.Email = nil
	return s.update(ctx, id, patch)
}

// RequireAdmin returns common.ErrForbidden unless the account is an admin.
// A vanished account is reported as common.ErrorNotFound.
func (s *AccountService) RequireAdmin(ctx context.Context, id int64) error {
	account, err := s.repomanager.Accounts(s.db).GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !account.IsAdmin() {
		return common.ErrForbidden
	}
	return nil
}

func (s *AccountService) ListAccounts(ctx context.Context) ([]*models.Account, error) {
	return s.repomanager.Accounts(s.db).List(ctx)
}

// AdminUpdate edits another account's profile, plan or email. Roles are not
// editable through it.
func (s *AccountService) AdminUpdate(ctx context.Context, adminID, id int64, patch models.AccountPatch) error {
	if err := s.update(ctx, id, patch); err != nil {
		return err
	}
	s.log.Info(ctx, "account updated by admin", "admin_id", adminID, "account_id", id)
	return nil
}

func (s *AccountService) update(ctx context.Context, id int64, patch models.AccountPatch) error {
	patch, err := patch.Normalize()
	if err != nil {
		return err
	}
	if patch.Empty() {
		// Still report a missing account.
		_, err := s.repomanager.Accounts(s.db).GetByID(ctx, id)
		return err
	}
	return s.repomanager.Accounts(s.db).Update(ctx, id, patch)
}

// SeedAdmin makes sure an admin account with the given credentials exists:
// it is created when absent, otherwise promoted and its password reset.
// It reports whether a new account was created.
func (s *AccountService) SeedAdmin(ctx context.Context, email, password, fullName string) (*models.Account, bool, error) {
	email = models.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, false, common.ErrMissingFields
	}
	if strings.TrimSpace(fullName) == "" {
		fullName = "Administrator"
	}

	salt := cryptox.GenerateSalt()
	hash := cryptox.HashPassword(password, salt)

	var (
		account *models.Account
		created bool
	)

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Accounts(tx)

		existing, err := repo.GetByEmail(ctx, email)
		if err != nil && !errors.Is(err, common.ErrorNotFound) {
			return err
		}

		if existing == nil {
			account, err = repo.Create(ctx, &models.Account{
				FullName:     fullName,
				Email:        email,
				PasswordHash: hash,
				PasswordSalt: salt,
				Role:         models.RoleAdmin,
			})
			created = true
			return err
		}

		if err := repo.SetRole(ctx, existing.ID, models.RoleAdmin); err != nil {
			return err
		}
		if err := repo.SetCredential(ctx, existing.ID, hash, salt); err != nil {
			return err
		}
		existing.Role = models.RoleAdmin
		existing.PasswordHash, existing.PasswordSalt = hash, salt
		account = existing
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("error seeding admin: %w", err)
	}

	s.log.Warn(ctx, "admin account seeded", "email", email, "account_id", account.ID, "created", created)
	return account, created, nil
}

func (s *AccountService) getRandomSalt() []byte { return cryptox.GenerateSalt() }
