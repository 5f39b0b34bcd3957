// Package callbacks stores contact-form callback requests.
package callbacks

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/siteback/internal/dbx"
	"github.com/dmitrijs2005/siteback/internal/server/models"
)

type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
}

func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

func (r *SQLRepository) Create(ctx context.Context, cb *models.Callback) (*models.Callback, error) {
	query := `INSERT INTO callbacks (name, phone, created_at) VALUES (?, ?, ?) RETURNING id`

	if cb.CreatedAt.IsZero() {
		cb.CreatedAt = time.Now().UTC()
	}

	err := r.db.QueryRowContext(ctx, r.dialect.Rebind(query), cb.Name, cb.Phone, cb.CreatedAt).Scan(&cb.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return cb, nil
}

func (r *SQLRepository) List(ctx context.Context) ([]*models.Callback, error) {
	query := `SELECT id, name, phone, created_at FROM callbacks ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Callback, 0)
	for rows.Next() {
		var cb models.Callback
		if err := rows.Scan(&cb.ID, &cb.Name, &cb.Phone, &cb.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, &cb)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
