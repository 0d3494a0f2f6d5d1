package main

import (
	"net/http"
	"os"

	"github.com/MassCalmStudio/Serenity-backend/internal/achievement"
	"github.com/MassCalmStudio/Serenity-backend/internal/api"
	"github.com/MassCalmStudio/Serenity-backend/internal/cache"
	"github.com/MassCalmStudio/Serenity-backend/internal/config"
	"github.com/MassCalmStudio/Serenity-backend/internal/database"
	"github.com/MassCalmStudio/Serenity-backend/internal/handler"
	"github.com/MassCalmStudio/Serenity-backend/internal/leaderboard"
	"github.com/MassCalmStudio/Serenity-backend/internal/logger"
	"github.com/MassCalmStudio/Serenity-backend/internal/middleware"
	"github.com/MassCalmStudio/Serenity-backend/internal/points"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Could not load config: %v", err)
		os.Exit(1)
	}

	// Connect to PostgreSQL
	db, err := database.ConnectPostgres(cfg)
	if err != nil {
		logger.Error("Database connection failed: %v", err)
		os.Exit(1)
	}
	defer db.Close()

	// Cache process-local + traqueur de stats, une seule instance de chaque,
	// partagée par injection
	cacheStore := cache.NewStore(cfg.CacheSweepInterval)
	defer cacheStore.Stop()

	statsTracker := cache.NewStatsTracker(cache.NewPostgresSnapshotStore(db))
	statsTracker.StartStatsPersistence(cfg.StatsPersistInterval)
	defer statsTracker.StopStatsPersistence()

	// Classements, journal de points et moteur de succès.
	// Le journal invalide les vues du ranker à chaque gain.
	ranker := leaderboard.NewRanker(leaderboard.NewPostgresStore(db), cacheStore, statsTracker, cfg.LeaderboardCacheTTL)
	ledger := points.NewLedger(points.NewPostgresStore(db), ranker)
	engine := achievement.NewEngine(achievement.NewPostgresStore(db), ledger, cfg.StreakWindowDays)

	// Initialize routes
	h := handler.New(engine, ledger, ranker, statsTracker)
	router := api.SetupRouter(h)

	// Wrap router with CORS middleware
	srv := middleware.CORSMiddleware(router)

	// Start server
	logger.Success("Server starting on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, srv); err != nil {
		logger.Error("Server failed: %v", err)
		os.Exit(1)
	}
}
