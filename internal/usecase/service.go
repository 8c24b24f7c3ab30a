package usecase

import (
	"github.com/pellyjosh/psychiatrist-sub000/internal/data/repository"
	"github.com/pellyjosh/psychiatrist-sub000/internal/wizard/draft"
	"github.com/pellyjosh/psychiatrist-sub000/pkg/metrics"
	"github.com/pellyjosh/psychiatrist-sub000/pkg/utils"

	"go.uber.org/zap"
)

// Service bundles every use case behind one constructor for wiring.
type Service struct {
	Auth        AuthService
	Appointment AppointmentService
	Catalog     CatalogService
	Resource    ResourceService
	Draft       DraftService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger, m *metrics.BookingMetrics, draftStore draft.Store) *Service {
	return &Service{
		Auth:        NewAuthService(repo, config, log),
		Appointment: NewAppointmentService(repo, m, log),
		Catalog:     NewCatalogService(repo, log),
		Resource:    NewResourceService(repo, log),
		Draft:       NewDraftService(draftStore, log),
	}
}
