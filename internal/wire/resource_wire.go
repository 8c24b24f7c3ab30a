package wire

import (
	"github.com/pellyjosh/psychiatrist-sub000/internal/adaptor"
	"github.com/pellyjosh/psychiatrist-sub000/internal/data/repository"
	"github.com/pellyjosh/psychiatrist-sub000/pkg/middleware"
	"github.com/pellyjosh/psychiatrist-sub000/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireResource(
	r chi.Router,
	resourceHandler *adaptor.ResourceHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/resources - Published patient education library
	r.Get("/api/resources", resourceHandler.List)

	// GET /api/resources/{id} - Single resource, counts the view
	r.Get("/api/resources/{id}", resourceHandler.Get)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/resources", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.Patient, log))
		r.Use(middleware.Admin(log))

		// POST /api/admin/resources - Create a resource
		r.Post("/", resourceHandler.Create)

		// PUT /api/admin/resources/{id} - Update a resource
		r.Put("/{id}", resourceHandler.Update)

		// DELETE /api/admin/resources/{id} - Remove a resource
		r.Delete("/{id}", resourceHandler.Delete)
	})
}
