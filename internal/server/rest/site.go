package rest

import (
	"encoding/json"
	"net/http"

	"github.com/dmitrijs2005/siteback/internal/server/models"
)

type reviewRequest struct {
	Name     string      `json:"name"`
	Position *string     `json:"position"`
	Company  *string     `json:"company"`
	Message  string      `json:"message"`
	Rating   json.Number `json:"rating"`
}

type reviewsResponse struct {
	Reviews []*models.Review `json:"reviews"`
}

type callbackRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

func (s *HTTPServer) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ok)
}

// createReview is public. A logged-in author is linked to the review.
func (s *HTTPServer) createReview(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	review := &models.Review{
		Name:     req.Name,
		Position: req.Position,
		Company:  req.Company,
		Message:  req.Message,
	}

	// Range and presence are checked by the service; 0 counts as missing.
	if req.Rating != "" {
		rating, err := req.Rating.Int64()
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_rating")
			return
		}
		review.Rating = int(rating)
	}

	if token := sessionToken(r); token != "" {
		if id, err := s.accounts.Resolve(r.Context(), token); err == nil {
			review.UserID = &id
		}
	}

	if _, err := s.reviews.Create(r.Context(), review); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ok)
}

func (s *HTTPServer) listReviews(w http.ResponseWriter, r *http.Request) {
	list, err := s.reviews.List(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reviewsResponse{Reviews: list})
}

func (s *HTTPServer) createCallback(w http.ResponseWriter, r *http.Request) {
	var req callbackRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if _, err := s.callbacks.Create(r.Context(), req.Name, req.Phone); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ok)
}
