// Package reviews stores testimonials shown on the site.
package reviews

import (
	"context"
	"database/sql"
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

func (r *SQLRepository) Create(ctx context.Context, review *models.Review) (*models.Review, error) {
	query :=
		`INSERT INTO reviews (name, position, company, message, rating, user_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 RETURNING id`

	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now().UTC()
	}

	var userID sql.NullInt64
	if review.UserID != nil {
		userID = sql.NullInt64{Int64: *review.UserID, Valid: true}
	}

	err := r.db.QueryRowContext(ctx, r.dialect.Rebind(query),
		review.Name, dbx.NullString(review.Position), dbx.NullString(review.Company),
		review.Message, review.Rating, userID, review.CreatedAt,
	).Scan(&review.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return review, nil
}

// List returns reviews newest first.
func (r *SQLRepository) List(ctx context.Context) ([]*models.Review, error) {
	query :=
		`SELECT id, name, position, company, message, rating, user_id, created_at
		 FROM reviews
		 ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Review, 0)
	for rows.Next() {
		var (
			rv                models.Review
			position, company sql.NullString
			userID            sql.NullInt64
		)
		if err := rows.Scan(&rv.ID, &rv.Name, &position, &company, &rv.Message, &rv.Rating, &userID, &rv.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		rv.Position = dbx.StringPtr(position)
		rv.Company = dbx.StringPtr(company)
		if userID.Valid {
			id := userID.Int64
			rv.UserID = &id
		}
		result = append(result, &rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

// Delete removes a review. Deleting a missing id is not an error.
func (r *SQLRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM reviews WHERE id = ?`

	if _, err := r.db.ExecContext(ctx, r.dialect.Rebind(query), id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
