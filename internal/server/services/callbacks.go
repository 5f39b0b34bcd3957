package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/siteback/internal/common"
	"github.com/dmitrijs2005/siteback/internal/logging"
	"github.com/dmitrijs2005/siteback/internal/server/models"
	"github.com/dmitrijs2005/siteback/internal/server/repositories/repomanager"
)

type CallbackService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	log         logging.Logger
}

func NewCallbackService(db *sql.DB, m repomanager.RepositoryManager, l logging.Logger) *CallbackService {
	return &CallbackService{db: db, repomanager: m, log: l.With("module", "callbacks")}
}

func (s *CallbackService) Create(ctx context.Context, name, phone string) (*models.Callback, error) {
	name, phone = strings.TrimSpace(name), strings.TrimSpace(phone)
	if name == "" || phone == "" {
		return nil, common.ErrMissingFields
	}

	cb, err := s.repomanager.Callbacks(s.db).Create(ctx, &models.Callback{Name: name, Phone: phone})
	if err != nil {
		return nil, fmt.Errorf("error creating callback: %w", err)
	}
	s.log.Info(ctx, "callback requested", "callback_id", cb.ID)
	return cb, nil
}

func (s *CallbackService) List(ctx context.Context) ([]*models.Callback, error) {
	return s.repomanager.Callbacks(s.db).List(ctx)
}
