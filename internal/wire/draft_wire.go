package wire

import (
	"github.com/pellyjosh/psychiatrist-sub000/internal/adaptor"
	"github.com/pellyjosh/psychiatrist-sub000/internal/data/repository"
	"github.com/pellyjosh/psychiatrist-sub000/pkg/middleware"
	"github.com/pellyjosh/psychiatrist-sub000/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireDraft(
	r chi.Router,
	draftHandler *adaptor.DraftHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	// Draft sync lets a signed-in patient resume a half-filled wizard on
	// another device. Anonymous visitors keep drafts client-side.
	r.Route("/api/booking/draft", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.Patient, log))

		// PUT /api/booking/draft - Save the in-progress form
		r.Put("/", draftHandler.Save)

		// GET /api/booking/draft - Load the saved form
		r.Get("/", draftHandler.Load)

		// DELETE /api/booking/draft - Discard the saved form
		r.Delete("/", draftHandler.Discard)
	})
}
