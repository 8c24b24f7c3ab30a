package adaptor

import (
	"encoding/json"
	"net/http"

	"github.com/pellyjosh/psychiatrist-sub000/internal/dto/request"
	"github.com/pellyjosh/psychiatrist-sub000/internal/usecase"
	"github.com/pellyjosh/psychiatrist-sub000/pkg/utils"

	"go.uber.org/zap"
)

type DraftHandler struct {
	service usecase.DraftService
	log     *zap.Logger
}

func NewDraftHandler(service usecase.DraftService, log *zap.Logger) *DraftHandler {
	return &DraftHandler{
		service: service,
		log:     log.With(zap.String("handler", "draft")),
	}
}

// Save handles PUT /api/booking/draft (protected)
func (h *DraftHandler) Save(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.SaveDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	draft, err := h.service.Save(r.Context(), userID, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "save draft")
		return
	}

	utils.ResponseSuccess(w, "success", draft)
}

// Load handles GET /api/booking/draft (protected)
func (h *DraftHandler) Load(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	draft, err := h.service.Load(r.Context(), userID)
	if err != nil {
		writeServiceError(w, h.log, err, "load draft")
		return
	}

	utils.ResponseSuccess(w, "success", draft)
}

// Discard handles DELETE /api/booking/draft (protected)
func (h *DraftHandler) Discard(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	if err := h.service.Discard(r.Context(), userID); err != nil {
		writeServiceError(w, h.log, err, "discard draft")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
