package rest

import (
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/siteback/internal/server/models"
	"github.com/go-chi/chi/v5"
)

type usersResponse struct {
	Users []*models.Account `json:"users"`
}

type callbacksResponse struct {
	Callbacks []*models.Callback `json:"callbacks"`
}

type adminUserPatch struct {
	FullName *string `json:"full_name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	City     *string `json:"city"`
	Plan     *string `json:"plan"`
}

func (p adminUserPatch) toModel() models.AccountPatch {
	return models.AccountPatch{FullName: p.FullName, Email: p.Email, Phone: p.Phone, City: p.City, Plan: p.Plan}
}

// pathID parses the {id} URL parameter; it answers 400 invalid_id itself.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_id")
		return 0, false
	}
	return id, true
}

func (s *HTTPServer) listUsers(w http.ResponseWriter, r *http.Request) {
	accounts, err := s.accounts.ListAccounts(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, usersResponse{Users: accounts})
}

func (s *HTTPServer) updateUser(w http.ResponseWriter, r *http.Request) {
	id, okID := pathID(w, r)
	if !okID {
		return
	}

	var req adminUserPatch
	if !decodeJSON(w, r, &req) {
		return
	}

	adminID, _ := AccountIDFromContext(r.Context())
	if err := s.accounts.AdminUpdate(r.Context(), adminID, id, req.toModel()); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ok)
}

func (s *HTTPServer) deleteReview(w http.ResponseWriter, r *http.Request) {
	id, okID := pathID(w, r)
	if !okID {
		return
	}

	adminID, _ := AccountIDFromContext(r.Context())
	if err := s.reviews.Delete(r.Context(), adminID, id); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ok)
}

func (s *HTTPServer) listCallbacks(w http.ResponseWriter, r *http.Request) {
	list, err := s.callbacks.List(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, callbacksResponse{Callbacks: list})
}
