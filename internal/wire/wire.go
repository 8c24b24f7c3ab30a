package wire

import (
	"net/http"

	"github.com/pellyjosh/psychiatrist-sub000/internal/adaptor"
	"github.com/pellyjosh/psychiatrist-sub000/internal/data/repository"
	"github.com/pellyjosh/psychiatrist-sub000/internal/usecase"
	"github.com/pellyjosh/psychiatrist-sub000/internal/wizard/draft"
	"github.com/pellyjosh/psychiatrist-sub000/pkg/metrics"
	"github.com/pellyjosh/psychiatrist-sub000/pkg/middleware"
	"github.com/pellyjosh/psychiatrist-sub000/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// App holds the wired dependencies
type App struct {
	Router *chi.Mux
}

// Wiring initializes services, handlers and routes
func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger, m *metrics.BookingMetrics, draftStore draft.Store) *App {
	service := usecase.NewService(repo, config, logger, m, draftStore)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, config, logger, m)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
	m *metrics.BookingMetrics,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())
	r.Use(middleware.Metrics(m))

	// Routes
	wireAuth(r, handler.Auth, repo, config, logger)
	wireAppointment(r, handler.Appointment, repo, config, logger)
	wireCatalog(r, handler.Catalog, repo, config, logger)
	wireResource(r, handler.Resource, repo, config, logger)
	wireDraft(r, handler.Draft, repo, config, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Prometheus scrape endpoint
	r.Handle("/metrics", promhttp.Handler())

	return r
}
