package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/siteback/internal/common"
	"github.com/dmitrijs2005/siteback/internal/server/models"
)

type meResponse struct {
	User *models.Account `json:"user"`
}

// profilePatch is the body of PUT /api/me. Absent or null fields are left
// as they are; "" clears phone, city and plan.
type profilePatch struct {
	FullName *string `json:"full_name"`
	Phone    *string `json:"phone"`
	City     *string `json:"city"`
	Plan     *string `json:"plan"`
}

func (p profilePatch) toModel() models.AccountPatch {
	return models.AccountPatch{FullName: p.FullName, Phone: p.Phone, City: p.City, Plan: p.Plan}
}

func (s *HTTPServer) getMe(w http.ResponseWriter, r *http.Request) {
	id, _ := AccountIDFromContext(r.Context())

	account, err := s.accounts.Profile(r.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, meResponse{User: account})
}

func (s *HTTPServer) updateMe(w http.ResponseWriter, r *http.Request) {
	id, _ := AccountIDFromContext(r.Context())

	var req profilePatch
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := s.accounts.UpdateProfile(r.Context(), id, req.toModel()); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ok)
}
