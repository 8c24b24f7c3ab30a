package wire

import (
	"github.com/pellyjosh/psychiatrist-sub000/internal/adaptor"
	"github.com/pellyjosh/psychiatrist-sub000/internal/data/repository"
	"github.com/pellyjosh/psychiatrist-sub000/pkg/middleware"
	"github.com/pellyjosh/psychiatrist-sub000/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCatalog(
	r chi.Router,
	catalogHandler *adaptor.CatalogHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/services - Bookable services for the wizard's first step
	r.Get("/api/services", catalogHandler.ListServices)

	// GET /api/appointment-types - Active visit modes
	r.Get("/api/appointment-types", catalogHandler.ListAppointmentTypes)

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.Patient, log))
		r.Use(middleware.Admin(log))

		// GET /api/admin/services - Full catalog, inactive included
		r.Get("/api/admin/services", catalogHandler.ListAllServices)

		// PUT /api/admin/services - Create or update a service by code
		r.Put("/api/admin/services", catalogHandler.UpsertService)

		// PUT /api/admin/appointment-types - Create or update a visit mode
		r.Put("/api/admin/appointment-types", catalogHandler.UpsertAppointmentType)
	})
}
