package callbacks

import (
	"context"

	"github.com/dmitrijs2005/siteback/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, cb *models.Callback) (*models.Callback, error)
	List(ctx context.Context) ([]*models.Callback, error)
}
