package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes registers every endpoint. Public routes come first, then routes that
// recognise a signed-in user if there is one, then routes that require one.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Get("/health", handlers.healthHandler.getHealth())
		r.Get("/skills", handlers.projectHandler.getSkills())
		r.Get("/projects/latest", handlers.projectHandler.getLatestProjects())
		r.Get("/project/{projectID}", handlers.projectHandler.getProject())
		r.Get("/volunteers", handlers.profileHandler.listVolunteers())

		// Optionally authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.identify)

			r.Get("/projects", handlers.projectHandler.getProjects())
			r.Get("/projects/stream", handlers.streamHandler.getStream())
		})

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.authenticate)

			r.Post("/project", handlers.projectHandler.createProject())
			r.Post("/project/{projectID}/select", handlers.projectHandler.selectProject())
			r.Post("/project/{projectID}/complete", handlers.projectHandler.completeProject())
			r.Delete("/project/{projectID}", handlers.projectHandler.deleteProject())
			r.Get("/dashboard", handlers.projectHandler.getDashboard())

			r.Get("/me", handlers.profileHandler.getMe())
			r.Put("/me/profile", handlers.profileHandler.putProfile())
		})
	})
}
