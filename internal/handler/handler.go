package handler

import (
	"net/http"

	"github.com/MassCalmStudio/Serenity-backend/internal/achievement"
	"github.com/MassCalmStudio/Serenity-backend/internal/cache"
	"github.com/MassCalmStudio/Serenity-backend/internal/leaderboard"
	"github.com/MassCalmStudio/Serenity-backend/internal/points"
	"github.com/MassCalmStudio/Serenity-backend/internal/utils"
)

// Handler regroupe les dépendances injectées des handlers HTTP.
// Construit une fois au démarrage, aucun état global.
type Handler struct {
	Engine *achievement.Engine
	Ledger *points.Ledger
	Ranker *leaderboard.Ranker
	Stats  *cache.StatsTracker
}

func New(engine *achievement.Engine, ledger *points.Ledger, ranker *leaderboard.Ranker, stats *cache.StatsTracker) *Handler {
	return &Handler{Engine: engine, Ledger: ledger, Ranker: ranker, Stats: stats}
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	utils.Message(w, "ok")
}
