package adaptor

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/pellyjosh/psychiatrist-sub000/internal/data/entity"
	"github.com/pellyjosh/psychiatrist-sub000/internal/dto/request"
	"github.com/pellyjosh/psychiatrist-sub000/internal/dto/response"
	"github.com/pellyjosh/psychiatrist-sub000/internal/usecase"
	"github.com/pellyjosh/psychiatrist-sub000/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AppointmentHandler struct {
	service usecase.AppointmentService
	log     *zap.Logger
}

func NewAppointmentHandler(service usecase.AppointmentService, log *zap.Logger) *AppointmentHandler {
	return &AppointmentHandler{
		service: service,
		log:     log.With(zap.String("handler", "appointment")),
	}
}

// actorFromContext builds the caller identity from the authenticated request.
// Unauthenticated requests yield the zero Actor.
func actorFromContext(ctx context.Context) usecase.Actor {
	actor := usecase.Actor{}
	if userID, ok := utils.GetUserIDFromContext(ctx); ok {
		actor.ID = userID
	}
	if role, ok := utils.GetRoleFromContext(ctx); ok {
		actor.Role = entity.PatientRole(role)
	}
	return actor
}

// Create handles POST /api/appointments (public)
func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	appt, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create appointment")
		return
	}

	utils.ResponseCreated(w, "success", appt)
}

// CheckReturningClient handles POST /api/appointments/check-returning-client (public)
func (h *AppointmentHandler) CheckReturningClient(w http.ResponseWriter, r *http.Request) {
	var req request.CheckReturningClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.service.CheckReturningClient(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "check returning client")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// Get handles GET /api/appointments/{id} (protected)
func (h *AppointmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	appointmentID := chi.URLParam(r, "id")

	appt, err := h.service.GetByID(r.Context(), actorFromContext(r.Context()), appointmentID)
	if err != nil {
		writeServiceError(w, h.log, err, "get appointment")
		return
	}

	utils.ResponseSuccess(w, "success", appt)
}

// ListMine handles GET /api/user/appointments (protected)
func (h *AppointmentHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	appts, err := h.service.ListForPatient(r.Context(), actorFromContext(r.Context()), req)
	if err != nil {
		writeServiceError(w, h.log, err, "list appointments")
		return
	}

	utils.ResponseSuccess(w, "success", appts)
}

// Cancel handles PATCH /api/appointments/{id}/cancel (protected)
func (h *AppointmentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.applyTransition(w, r, "cancel appointment", h.service.Cancel)
}

// Approve handles POST /api/admin/appointments/{id}/approve (admin)
func (h *AppointmentHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.applyTransition(w, r, "approve appointment", h.service.Approve)
}

// Decline handles POST /api/admin/appointments/{id}/decline (admin)
func (h *AppointmentHandler) Decline(w http.ResponseWriter, r *http.Request) {
	h.applyTransition(w, r, "decline appointment", h.service.Decline)
}

// Complete handles POST /api/admin/appointments/{id}/complete (admin)
func (h *AppointmentHandler) Complete(w http.ResponseWriter, r *http.Request) {
	h.applyTransition(w, r, "complete appointment", h.service.Complete)
}

type transitionFunc func(ctx context.Context, actor usecase.Actor, appointmentID string, req *request.TransitionRequest) (*response.AppointmentResponse, error)

// applyTransition decodes the optional notes body and runs one transition.
func (h *AppointmentHandler) applyTransition(w http.ResponseWriter, r *http.Request, operation string, fn transitionFunc) {
	appointmentID := chi.URLParam(r, "id")

	req := &request.TransitionRequest{}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(req); err != nil {
			utils.ResponseBadRequest(w, "Invalid request body", nil)
			return
		}
	}

	appt, err := fn(r.Context(), actorFromContext(r.Context()), appointmentID, req)
	if err != nil {
		writeServiceError(w, h.log, err, operation)
		return
	}

	utils.ResponseSuccess(w, "success", appt)
}

// Reschedule handles POST /api/appointments/{id}/reschedule (protected)
func (h *AppointmentHandler) Reschedule(w http.ResponseWriter, r *http.Request) {
	appointmentID := chi.URLParam(r, "id")

	var req request.RescheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	appt, err := h.service.Reschedule(r.Context(), actorFromContext(r.Context()), appointmentID, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "reschedule appointment")
		return
	}

	utils.ResponseSuccess(w, "success", appt)
}

// List handles GET /api/admin/appointments (admin)
func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.ListAppointmentsRequest{
		PaginatedRequest: request.PaginatedRequest{
			Page:    utils.ParseInt(query.Get("page"), 1),
			PerPage: utils.ParseInt(query.Get("per_page"), 20),
		},
		Status:   query.Get("status"),
		DateFrom: query.Get("date_from"),
		DateTo:   query.Get("date_to"),
		Search:   query.Get("search"),
	}

	appts, err := h.service.List(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.log, err, "list appointments")
		return
	}

	utils.ResponseSuccess(w, "success", appts)
}

// Activity handles GET /api/appointments/{id}/activity (protected)
func (h *AppointmentHandler) Activity(w http.ResponseWriter, r *http.Request) {
	appointmentID := chi.URLParam(r, "id")

	trail, err := h.service.ActivityTrail(r.Context(), actorFromContext(r.Context()), appointmentID)
	if err != nil {
		writeServiceError(w, h.log, err, "get appointment activity")
		return
	}

	utils.ResponseSuccess(w, "success", trail)
}

// MyCounts handles GET /api/user/appointments/counts (protected)
func (h *AppointmentHandler) MyCounts(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())

	counts, err := h.service.StatusCounts(r.Context(), actor, actor.ID.String())
	if err != nil {
		writeServiceError(w, h.log, err, "get appointment counts")
		return
	}

	utils.ResponseSuccess(w, "success", counts)
}

// PatientCounts handles GET /api/admin/patients/{id}/appointment-counts (admin)
func (h *AppointmentHandler) PatientCounts(w http.ResponseWriter, r *http.Request) {
	patientID := chi.URLParam(r, "id")

	counts, err := h.service.StatusCounts(r.Context(), actorFromContext(r.Context()), patientID)
	if err != nil {
		writeServiceError(w, h.log, err, "get appointment counts")
		return
	}

	utils.ResponseSuccess(w, "success", counts)
}
