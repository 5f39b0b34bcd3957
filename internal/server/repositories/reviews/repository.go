package reviews

import (
	"context"

	"github.com/dmitrijs2005/siteback/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, review *models.Review) (*models.Review, error)
	List(ctx context.Context) ([]*models.Review, error)
	Delete(ctx context.Context, id int64) error
}
