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

type ReviewService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	log         logging.Logger
}

func NewReviewService(db *sql.DB, m repomanager.RepositoryManager, l logging.Logger) *ReviewService {
	return &ReviewService{db: db, repomanager: m, log: l.With("module", "reviews")}
}

// Create validates and stores a review. Name, message and rating are
// required; the rating must be within 1..5.
func (s *ReviewService) Create(ctx context.Context, review *models.Review) (*models.Review, error) {
	review.Name = strings.TrimSpace(review.Name)
	review.Message = strings.TrimSpace(review.Message)
	review.Position = blankToNil(review.Position)
	review.Company = blankToNil(review.Company)

	if review.Name == "" || review.Message == "" || review.Rating == 0 {
		return nil, common.ErrMissingFields
	}
	if review.Rating < 1 || review.Rating > 5 {
		return nil, common.ErrInvalidRating
	}

	created, err := s.repomanager.Reviews(s.db).Create(ctx, review)
	if err != nil {
		return nil, fmt.Errorf("error creating review: %w", err)
	}
	return created, nil
}

func (s *ReviewService) List(ctx context.Context) ([]*models.Review, error) {
	return s.repomanager.Reviews(s.db).List(ctx)
}

func (s *ReviewService) Delete(ctx context.Context, adminID, id int64) error {
	if err := s.repomanager.Reviews(s.db).Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info(ctx, "review deleted", "admin_id", adminID, "review_id", id)
	return nil
}

func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
