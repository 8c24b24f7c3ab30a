package wire

import (
	"github.com/pellyjosh/psychiatrist-sub000/internal/adaptor"
	"github.com/pellyjosh/psychiatrist-sub000/internal/data/repository"
	"github.com/pellyjosh/psychiatrist-sub000/pkg/middleware"
	"github.com/pellyjosh/psychiatrist-sub000/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// POST /api/register - Create a patient account
	r.Post("/api/register", authHandler.Register)

	// POST /api/login - Open a session
	r.Post("/api/login", authHandler.Login)

	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.Patient, log))

		// POST /api/logout - Revoke the current session
		r.Post("/api/logout", authHandler.Logout)

		// GET /api/user/profile - Current patient profile
		r.Get("/api/user/profile", authHandler.Me)

		// PUT /api/user/profile - Edit profile or change password
		r.Put("/api/user/profile", authHandler.UpdateProfile)

		// DELETE /api/user/profile - Delete the account and its appointments
		r.Delete("/api/user/profile", authHandler.DeleteAccount)
	})
}
