// Package accounts stores site accounts in the users table.
package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/siteback/internal/common"
	"github.com/dmitrijs2005/siteback/internal/dbx"
	"github.com/dmitrijs2005/siteback/internal/server/models"
)

const selectColumns = `id, full_name, email, password_hash, password_salt, phone, city, plan, role, created_at`

// SQLRepository works on both SQLite and Postgres; queries are written with
// '?' placeholders and rebound for the dialect.
type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
}

func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

func (r *SQLRepository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	query :=
		`INSERT INTO users (full_name, email, password_hash, password_salt, phone, city, plan, role, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 RETURNING id`

	if account.Role == "" {
		account.Role = models.RoleUser
	}
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now().UTC()
	}

	err := r.db.QueryRowContext(ctx, r.dialect.Rebind(query),
		account.FullName, account.Email, account.PasswordHash, account.PasswordSalt,
		dbx.NullString(account.Phone), dbx.NullString(account.City), dbx.NullString(account.Plan),
		string(account.Role), account.CreatedAt,
	).Scan(&account.ID)

	if err != nil {
		if conflict := dbx.AccountConflict(err); conflict != nil {
			return nil, conflict
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return account, nil
}

func (r *SQLRepository) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	query := `SELECT ` + selectColumns + ` FROM users WHERE id = ?`
	return r.getOne(ctx, query, id)
}

func (r *SQLRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	query := `SELECT ` + selectColumns + ` FROM users WHERE email = ?`
	return r.getOne(ctx, query, email)
}

func (r *SQLRepository) getOne(ctx context.Context, query string, arg any) (*models.Account, error) {
	row := r.db.QueryRowContext(ctx, r.dialect.Rebind(query), arg)

	account, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return account, nil
}

func (r *SQLRepository) List(ctx context.Context) ([]*models.Account, error) {
	query := `SELECT ` + selectColumns + ` FROM users ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Account, 0)
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

// Update applies the non-nil fields of patch. The statement is fixed: each
// column gets a presence flag and keeps its value when the flag is false.
// Empty optional fields are stored as NULL.
func (r *SQLRepository) Update(ctx context.Context, id int64, patch models.AccountPatch) error {
	query :=
		`UPDATE users SET
		   full_name = CASE WHEN ? THEN ? ELSE full_name END,
		   email     = CASE WHEN ? THEN ? ELSE email END,
		   phone     = CASE WHEN ? THEN ? ELSE phone END,
		   city      = CASE WHEN ? THEN ? ELSE city END,
		   plan      = CASE WHEN ? THEN ? ELSE plan END
		 WHERE id = ?`

	res, err := r.db.ExecContext(ctx, r.dialect.Rebind(query),
		patch.FullName != nil, valueOf(patch.FullName),
		patch.Email != nil, valueOf(patch.Email),
		patch.Phone != nil, dbx.NullString(patch.Phone),
		patch.City != nil, dbx.NullString(patch.City),
		patch.Plan != nil, dbx.NullString(patch.Plan),
		id,
	)
	if err != nil {
		if conflict := dbx.AccountConflict(err); conflict != nil {
			return conflict
		}
		return fmt.Errorf("db error: %w", err)
	}

	return expectOneRow(res)
}

func (r *SQLRepository) SetCredential(ctx context.Context, id int64, hash, salt []byte) error {
	query := `UPDATE users SET password_hash = ?, password_salt = ? WHERE id = ?`

	res, err := r.db.ExecContext(ctx, r.dialect.Rebind(query), hash, salt, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

func (r *SQLRepository) SetRole(ctx context.Context, id int64, role models.Role) error {
	query := `UPDATE users SET role = ? WHERE id = ?`

	res, err := r.db.ExecContext(ctx, r.dialect.Rebind(query), string(role), id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAccount(s scanner) (*models.Account, error) {
	var (
		a                 models.Account
		role              string
		phone, city, plan sql.NullString
	)
	err := s.Scan(&a.ID, &a.FullName, &a.Email, &a.PasswordHash, &a.PasswordSalt,
		&phone, &city, &plan, &role, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	a.Role = models.Role(role)
	a.Phone = dbx.StringPtr(phone)
	a.City = dbx.StringPtr(city)
	a.Plan = dbx.StringPtr(plan)
	return &a, nil
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func valueOf(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
