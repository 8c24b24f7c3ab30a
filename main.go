package main

import (
	"context"
	"log"
	"time"

	"github.com/pellyjosh/psychiatrist-sub000/cmd"
	"github.com/pellyjosh/psychiatrist-sub000/internal/data/repository"
	"github.com/pellyjosh/psychiatrist-sub000/internal/wire"
	"github.com/pellyjosh/psychiatrist-sub000/internal/wizard/draft"
	"github.com/pellyjosh/psychiatrist-sub000/pkg/database"
	"github.com/pellyjosh/psychiatrist-sub000/pkg/metrics"
	"github.com/pellyjosh/psychiatrist-sub000/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Draft store: Redis when configured, otherwise in-memory
	draftTTL := time.Duration(config.Booking.DraftTTLHours) * time.Hour
	var draftStore draft.Store
	if config.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     config.Redis.Addr,
			Password: config.Redis.Password,
			DB:       config.Redis.DB,
		})
		draftStore = draft.NewRedisStore(client, draftTTL)
		logger.Info("Draft store using Redis", zap.String("addr", config.Redis.Addr))
	} else {
		draftStore = draft.NewMemoryStore(draftTTL)
		logger.Info("Draft store using in-memory backend")
	}

	// Sweep expired sessions hourly
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if err := repos.Session.CleanExpiredSessions(context.Background()); err != nil {
				logger.Warn("Failed to clean expired sessions", zap.Error(err))
			}
		}
	}()

	// Prometheus metrics
	bookingMetrics := metrics.NewBookingMetrics(nil)

	// Wire all dependencies
	app := wire.Wiring(repos, config, logger, bookingMetrics, draftStore)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
