package adaptor

import (
	"github.com/pellyjosh/psychiatrist-sub000/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth        *AuthHandler
	Appointment *AppointmentHandler
	Catalog     *CatalogHandler
	Resource    *ResourceHandler
	Draft       *DraftHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:        NewAuthHandler(service.Auth, log),
		Appointment: NewAppointmentHandler(service.Appointment, log),
		Catalog:     NewCatalogHandler(service.Catalog, log),
		Resource:    NewResourceHandler(service.Resource, log),
		Draft:       NewDraftHandler(service.Draft, log),
	}
}
