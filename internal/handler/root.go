package handler

import (
	"net/http"

	"github.com/MassCalmStudio/Serenity-backend/internal/utils"
)

// RootHandler affiche toutes les routes disponibles de l'API
func (h *Handler) RootHandler(w http.ResponseWriter, r *http.Request) {
	routes := map[string]interface{}{
		"name":    "Serenity Gamification API",
		"version": "1.0.0",
		"status":  "running",
		"routes": map[string]interface{}{
			"events": []map[string]string{
				{"method": "POST", "path": "/events/session-completed", "description": "Ingestion d'une session terminée (règles de succès, streaks, points)"},
				{"method": "POST", "path": "/events/friend-count", "description": "Compte d'amitiés acceptées rapporté par le service social"},
			},
			"achievements": []map[string]string{
				{"method": "POST", "path": "/users/{userId}/achievements/provision", "description": "Provisionner les succès du catalogue (onboarding)"},
				{"method": "GET", "path": "/users/{userId}/achievements", "description": "Succès d'un utilisateur avec flag earned"},
			},
			"points": []map[string]string{
				{"method": "GET", "path": "/users/{userId}/points", "description": "Totaux de points par catégorie"},
				{"method": "GET", "path": "/users/{userId}/points/history", "description": "Derniers gains du journal (param: limit)"},
			},
			"leaderboard": []map[string]string{
				{"method": "GET", "path": "/leaderboard", "description": "Classement (params: period, category, limit)"},
				{"method": "GET", "path": "/leaderboard/top", "description": "Top achievers all-time (param: limit)"},
				{"method": "GET", "path": "/leaderboard/users/{userId}", "description": "Rang d'un utilisateur (params: period, category)"},
				{"method": "GET", "path": "/users/{userId}/progress/weekly", "description": "Résumé de la semaine courante"},
			},
			"admin": []map[string]string{
				{"method": "GET", "path": "/admin/cache/stats", "description": "Compteurs cache en direct (params: cacheType, category)"},
				{"method": "GET", "path": "/admin/cache/stats/history", "description": "Instantanés persistés (params: cacheType, start, end)"},
			},
			"health": []map[string]string{
				{"method": "GET", "path": "/health", "description": "Health check de l'API"},
			},
		},
	}

	utils.Success(w, routes)
}
