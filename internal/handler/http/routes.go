package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
	})

	// routes of the authenticated user
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/api/notes", func(r chi.Router) {
			r.Get("/", h.listNotes)
			r.Post("/", h.createNote)
			r.Get("/{noteID}", h.getNote)
			r.Put("/{noteID}", h.updateNote)
			r.Delete("/{noteID}", h.deleteNote)
			r.Post("/{noteID}/toggle", h.toggleNote)
		})

		r.Get("/api/export/excel", h.exportNotes)

		// admin-only routes
		r.Route("/api/admin/users", func(r chi.Router) {
			r.Use(h.adminOnly)

			r.Get("/", h.listUsers)
			r.Post("/{userID}/toggle", h.toggleUserStatus)
			r.Post("/{userID}/role", h.changeUserRole)
			r.Delete("/{userID}", h.deleteUser)
		})
	})

	return router
}
