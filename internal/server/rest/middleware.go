package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/siteback/internal/common"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

type ctxKey string

const (
	accountIDKey ctxKey = "accountID"
	requestIDKey ctxKey = "requestID"
)

const requestIDHeader = "X-Request-ID"

// AccountIDFromContext returns the account attached by RequireAuth.
func AccountIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(accountIDKey).(int64)
	return id, ok
}

func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

func (s *HTTPServer) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

func (s *HTTPServer) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if p := recover(); p != nil {
				if p == http.ErrAbortHandler {
					panic(p)
				}
				s.logger.Error(r.Context(), "panic in handler", "panic", p, "request_id", RequestIDFromContext(r.Context()))
				writeError(w, http.StatusInternalServerError, "server_error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// accessLog logs one line per request and feeds the request metrics.
func (s *HTTPServer) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := routePattern(r)
		elapsed := time.Since(start)

		if s.metrics != nil {
			s.metrics.observeRequest(r.Method, route, status, elapsed)
		}
		s.logger.Info(r.Context(), "request",
			"method", r.Method,
			"route", route,
			"status", status,
			"duration_ms", elapsed.Milliseconds(),
			"request_id", RequestIDFromContext(r.Context()),
		)
	})
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

// RequireAuth resolves the sid cookie to an account id and stores it in the
// request context. No cookie or an unknown session is 401 unauthorized.
func (s *HTTPServer) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := sessionToken(r)
		if token == "" {
			s.metrics.authEvent("unauthorized")
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		id, err := s.accounts.Resolve(r.Context(), token)
		if err != nil {
			if errors.Is(err, common.ErrorUnauthorized) {
				s.metrics.authEvent("unauthorized")
			}
			s.writeServiceError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), accountIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin must run after RequireAuth. An account that vanished after
// login is a server error, a non-admin is 403 forbidden.
func (s *HTTPServer) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := AccountIDFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		if err := s.accounts.RequireAdmin(r.Context(), id); err != nil {
			if errors.Is(err, common.ErrForbidden) {
				s.metrics.authEvent("forbidden")
				s.writeServiceError(w, r, err)
				return
			}
			s.logger.Error(r.Context(), "role lookup failed", "account_id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "server_error")
			return
		}

		next.ServeHTTP(w, r)
	})
}
