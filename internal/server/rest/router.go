package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handler builds the routing tree. Every /api/admin route sits behind
// RequireAuth and RequireAdmin.
func (s *HTTPServer) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(s.requestID, s.recoverer, s.accessLog)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.health)

		r.Post("/register", s.register)
		r.Post("/login", s.login)
		r.Post("/logout", s.logout)

		r.Group(func(r chi.Router) {
			r.Use(s.RequireAuth)
			r.Get("/me", s.getMe)
			r.Put("/me", s.updateMe)
		})

		r.Get("/reviews", s.listReviews)
		r.Post("/reviews", s.createReview)
		r.Post("/callbacks", s.createCallback)

		r.Route("/admin", func(r chi.Router) {
			r.Use(s.RequireAuth, s.RequireAdmin)
			r.Get("/users", s.listUsers)
			r.Put("/users/{id}", s.updateUser)
			r.Delete("/reviews/{id}", s.deleteReview)
			r.Get("/callbacks", s.listCallbacks)
		})

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			writeError(w, http.StatusNotFound, "not_found")
		})
	})

	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler())
	}

	if s.opts.StaticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(s.opts.StaticDir)))
	}

	return r
}
