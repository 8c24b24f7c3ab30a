package adaptor

import (
	"encoding/json"
	"net/http"

	"github.com/pellyjosh/psychiatrist-sub000/internal/dto/request"
	"github.com/pellyjosh/psychiatrist-sub000/internal/usecase"
	"github.com/pellyjosh/psychiatrist-sub000/pkg/utils"

	"go.uber.org/zap"
)

type CatalogHandler struct {
	service usecase.CatalogService
	log     *zap.Logger
}

func NewCatalogHandler(service usecase.CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		log:     log.With(zap.String("handler", "catalog")),
	}
}

// ListServices handles GET /api/services (public)
func (h *CatalogHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.service.ListServices(r.Context(), false)
	if err != nil {
		writeServiceError(w, h.log, err, "list services")
		return
	}

	utils.ResponseSuccess(w, "success", services)
}

// ListAllServices handles GET /api/admin/services (admin), inactive included
func (h *CatalogHandler) ListAllServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.service.ListServices(r.Context(), true)
	if err != nil {
		writeServiceError(w, h.log, err, "list services")
		return
	}

	utils.ResponseSuccess(w, "success", services)
}

// ListAppointmentTypes handles GET /api/appointment-types (public)
func (h *CatalogHandler) ListAppointmentTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.service.ListAppointmentTypes(r.Context())
	if err != nil {
		writeServiceError(w, h.log, err, "list appointment types")
		return
	}

	utils.ResponseSuccess(w, "success", types)
}

// UpsertService handles PUT /api/admin/services (admin)
func (h *CatalogHandler) UpsertService(w http.ResponseWriter, r *http.Request) {
	var req request.UpsertServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	svc, err := h.service.UpsertService(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "upsert service")
		return
	}

	utils.ResponseSuccess(w, "success", svc)
}

// UpsertAppointmentType handles PUT /api/admin/appointment-types (admin)
func (h *CatalogHandler) UpsertAppointmentType(w http.ResponseWriter, r *http.Request) {
	var req request.UpsertAppointmentTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	at, err := h.service.UpsertAppointmentType(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "upsert appointment type")
		return
	}

	utils.ResponseSuccess(w, "success", at)
}
