package rest

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dmitrijs2005/siteback/internal/common"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

var ok = okResponse{OK: true}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, errorResponse{Error: code})
}

// decodeJSON reads a single JSON object from the request body. An empty body
// decodes as {}.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	writeError(w, http.StatusBadRequest, "invalid_body")
	return false
}

// statusFor maps a service error to the status code and wire error code.
// Anything unknown is a server_error; its detail stays in the log.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, common.ErrMissingFields):
		return http.StatusBadRequest, "missing_fields"
	case errors.Is(err, common.ErrInvalidPlan):
		return http.StatusBadRequest, "invalid_plan"
	case errors.Is(err, common.ErrInvalidRating):
		return http.StatusBadRequest, "invalid_rating"
	case errors.Is(err, common.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid_credentials"
	case errors.Is(err, common.ErrorUnauthorized):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, common.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, common.ErrEmailExists):
		return http.StatusConflict, "email_exists"
	case errors.Is(err, common.ErrPhoneExists):
		return http.StatusConflict, "phone_exists"
	}
	return http.StatusInternalServerError, "server_error"
}

func (s *HTTPServer) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error(r.Context(), "request failed", "error", err, "request_id", RequestIDFromContext(r.Context()))
	}
	writeError(w, status, code)
}
