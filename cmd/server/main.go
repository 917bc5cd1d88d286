package main

import (
	"log"
	"net/http"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/CVHCAdmin/chippewa-home-care-crm-sub001/internal/adapters/cache"
	"github.com/CVHCAdmin/chippewa-home-care-crm-sub001/internal/adapters/distance"
	"github.com/CVHCAdmin/chippewa-home-care-crm-sub001/internal/adapters/repositories"
	"github.com/CVHCAdmin/chippewa-home-care-crm-sub001/internal/api"
	"github.com/CVHCAdmin/chippewa-home-care-crm-sub001/internal/config"
	"github.com/CVHCAdmin/chippewa-home-care-crm-sub001/internal/platform/db"
	"github.com/CVHCAdmin/chippewa-home-care-crm-sub001/internal/platform/logging"
	"github.com/CVHCAdmin/chippewa-home-care-crm-sub001/internal/ports"
	"github.com/CVHCAdmin/chippewa-home-care-crm-sub001/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, Redis, ORS) behind ports and starts
// the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.New(cfg.Env)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	database, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	defer database.Close()

	// Distance cache: Redis when configured, Postgres otherwise.
	var distanceCache ports.DistanceCache = cache.NewSQLDistanceCache(database)
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		distanceCache = cache.NewRedisDistanceCache(rdb, 0)
		logger.Info("using redis distance cache", zap.String("addr", cfg.RedisAddr))
	}

	// Road routing is optional: without a key every plan degrades to
	// great-circle estimates and says so.
	var provider ports.DistanceProvider
	if cfg.ORSAPIKey != "" {
		ors, err := distance.NewORSDistanceProvider(cfg.ORSAPIKey, distanceCache, logger)
		if err != nil {
			logger.Fatal("configure ORS provider", zap.Error(err))
		}
		provider = ors
	} else {
		logger.Warn("ORS_API_KEY not set; route plans will be estimate-based")
	}

	router := api.NewRouter(api.Deps{
		Caregivers:      repositories.NewPostgresCaregiverRepository(database),
		Clients:         repositories.NewPostgresClientRepository(database),
		Shifts:          repositories.NewPostgresShiftRepository(database),
		Plans:           repositories.NewPostgresRoutePlanRepository(database),
		Provider:        provider,
		Fallback:        distance.NewHaversineProvider(cfg.FallbackSpeedKmh),
		ProviderTimeout: time.Duration(cfg.ORSTimeoutSeconds) * time.Second,
		Weights:         services.DefaultRankWeights(),
		Logger:          logger,
	})

	// Timeouts are tuned for cold-cache route optimization (external API latency).
	logger.Info("server listening", zap.String("addr", ":"+cfg.AppPort))
	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	logger.Fatal("server stopped", zap.Error(srv.ListenAndServe()))
}
