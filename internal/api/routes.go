package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MassCalmStudio/Serenity-backend/internal/handler"
	"github.com/MassCalmStudio/Serenity-backend/internal/logger"
	"github.com/MassCalmStudio/Serenity-backend/internal/middleware"
)

func SetupRouter(h *handler.Handler) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.LoggerMiddleware)

	// Root - API documentation
	r.HandleFunc("/", h.RootHandler).Methods(http.MethodGet)

	// Événements entrants (services session / social)
	r.HandleFunc("/events/session-completed", h.SessionCompleted).Methods(http.MethodPost)
	r.HandleFunc("/events/friend-count", h.FriendCount).Methods(http.MethodPost)

	// Achievements
	r.HandleFunc("/users/{userId}/achievements/provision", h.ProvisionAchievements).Methods(http.MethodPost)
	r.HandleFunc("/users/{userId}/achievements", h.GetUserAchievements).Methods(http.MethodGet)

	// Points
	r.HandleFunc("/users/{userId}/points", h.GetUserPoints).Methods(http.MethodGet)
	r.HandleFunc("/users/{userId}/points/history", h.GetPointsHistory).Methods(http.MethodGet)

	// Leaderboard
	r.HandleFunc("/leaderboard", h.GetLeaderboard).Methods(http.MethodGet)
	r.HandleFunc("/leaderboard/top", h.GetTopAchievers).Methods(http.MethodGet)
	r.HandleFunc("/leaderboard/users/{userId}", h.GetUserRank).Methods(http.MethodGet)
	r.HandleFunc("/users/{userId}/progress/weekly", h.GetWeeklyProgress).Methods(http.MethodGet)

	// Cache stats (admin)
	r.HandleFunc("/admin/cache/stats", h.GetCacheStats).Methods(http.MethodGet)
	r.HandleFunc("/admin/cache/stats/history", h.GetCacheStatsHistory).Methods(http.MethodGet)

	// Health check
	r.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Warning("404 Not Found: %s %s", r.Method, r.URL.Path)
		http.Error(w, "Route not found", http.StatusNotFound)
	})

	return r
}
