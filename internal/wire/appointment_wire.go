package wire

import (
	"github.com/pellyjosh/psychiatrist-sub000/internal/adaptor"
	"github.com/pellyjosh/psychiatrist-sub000/internal/data/repository"
	"github.com/pellyjosh/psychiatrist-sub000/pkg/middleware"
	"github.com/pellyjosh/psychiatrist-sub000/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAppointment(
	r chi.Router,
	appointmentHandler *adaptor.AppointmentHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// POST /api/appointments - Submit the booking wizard (no account needed)
	r.Post("/api/appointments", appointmentHandler.Create)

	// POST /api/appointments/check-returning-client - Prefill lookup for step 3
	r.Post("/api/appointments/check-returning-client", appointmentHandler.CheckReturningClient)

	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.Patient, log))

		// GET /api/user/appointments - Own appointment history
		r.Get("/api/user/appointments", appointmentHandler.ListMine)

		// GET /api/user/appointments/counts - Own per-status totals
		r.Get("/api/user/appointments/counts", appointmentHandler.MyCounts)

		// GET /api/appointments/{id} - Appointment details (owner or admin)
		r.Get("/api/appointments/{id}", appointmentHandler.Get)

		// GET /api/appointments/{id}/activity - Audit trail (owner or admin)
		r.Get("/api/appointments/{id}/activity", appointmentHandler.Activity)

		// PATCH /api/appointments/{id}/cancel - Cancel own appointment
		r.Patch("/api/appointments/{id}/cancel", appointmentHandler.Cancel)

		// POST /api/appointments/{id}/reschedule - Move to a new slot
		r.Post("/api/appointments/{id}/reschedule", appointmentHandler.Reschedule)
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/appointments", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.Patient, log))
		r.Use(middleware.Admin(log))

		// GET /api/admin/appointments - Filterable list of all appointments
		r.Get("/", appointmentHandler.List)

		// GET /api/admin/appointments/{id} - Any appointment's details
		r.Get("/{id}", appointmentHandler.Get)

		// GET /api/admin/appointments/{id}/activity - Any appointment's trail
		r.Get("/{id}/activity", appointmentHandler.Activity)

		// POST /api/admin/appointments/{id}/approve - pending -> confirmed
		r.Post("/{id}/approve", appointmentHandler.Approve)

		// POST /api/admin/appointments/{id}/decline - pending -> cancelled
		r.Post("/{id}/decline", appointmentHandler.Decline)

		// POST /api/admin/appointments/{id}/complete - confirmed -> completed
		r.Post("/{id}/complete", appointmentHandler.Complete)
	})

	// GET /api/admin/patients/{id}/appointment-counts - Per-status totals
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.Patient, log))
		r.Use(middleware.Admin(log))

		r.Get("/api/admin/patients/{id}/appointment-counts", appointmentHandler.PatientCounts)
	})
}
