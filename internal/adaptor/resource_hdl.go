package adaptor

import (
	"encoding/json"
	"net/http"

	"github.com/pellyjosh/psychiatrist-sub000/internal/data/entity"
	"github.com/pellyjosh/psychiatrist-sub000/internal/data/repository"
	"github.com/pellyjosh/psychiatrist-sub000/internal/dto/request"
	"github.com/pellyjosh/psychiatrist-sub000/internal/usecase"
	"github.com/pellyjosh/psychiatrist-sub000/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ResourceHandler struct {
	service usecase.ResourceService
	log     *zap.Logger
}

func NewResourceHandler(service usecase.ResourceService, log *zap.Logger) *ResourceHandler {
	return &ResourceHandler{
		service: service,
		log:     log.With(zap.String("handler", "resource")),
	}
}

// List handles GET /api/resources (public)
func (h *ResourceHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page := utils.ParseInt(query.Get("page"), 1)
	perPage := utils.ParseInt(query.Get("per_page"), 20)
	if perPage > 100 {
		perPage = 100
	}

	filter := repository.ResourceFilter{
		Category: query.Get("category"),
		Tag:      query.Get("tag"),
		Type:     entity.ResourceType(query.Get("type")),
		Limit:    perPage,
		Offset:   (page - 1) * perPage,
	}

	resources, err := h.service.List(r.Context(), filter, page, perPage)
	if err != nil {
		writeServiceError(w, h.log, err, "list resources")
		return
	}

	utils.ResponseSuccess(w, "success", resources)
}

// Get handles GET /api/resources/{id} (public)
func (h *ResourceHandler) Get(w http.ResponseWriter, r *http.Request) {
	resourceID := chi.URLParam(r, "id")

	resource, err := h.service.Get(r.Context(), resourceID)
	if err != nil {
		writeServiceError(w, h.log, err, "get resource")
		return
	}

	utils.ResponseSuccess(w, "success", resource)
}

// Create handles POST /api/admin/resources (admin)
func (h *ResourceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateResourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resource, err := h.service.Create(r.Context(), actorFromContext(r.Context()), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create resource")
		return
	}

	utils.ResponseCreated(w, "success", resource)
}

// Update handles PUT /api/admin/resources/{id} (admin)
func (h *ResourceHandler) Update(w http.ResponseWriter, r *http.Request) {
	resourceID := chi.URLParam(r, "id")

	var req request.UpdateResourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resource, err := h.service.Update(r.Context(), actorFromContext(r.Context()), resourceID, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "update resource")
		return
	}

	utils.ResponseSuccess(w, "success", resource)
}

// Delete handles DELETE /api/admin/resources/{id} (admin)
func (h *ResourceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	resourceID := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), actorFromContext(r.Context()), resourceID); err != nil {
		writeServiceError(w, h.log, err, "delete resource")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
