package handler

import (
	"net/http"
	"time"

	"github.com/MassCalmStudio/Serenity-backend/internal/utils"
)

// GetCacheStats récupère les compteurs courants d'un cacheType
// (params: cacheType, category)
func (h *Handler) GetCacheStats(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	cacheType := query.Get("cacheType")
	category := query.Get("category")

	if cacheType == "" {
		// Sans cacheType : survol de tous les types observés
		overview := make(map[string]interface{})
		for _, name := range h.Stats.CacheTypes() {
			overview[name] = map[string]interface{}{
				"hitRate": h.Stats.GetHitRate(name, ""),
				"stats":   h.Stats.GetStats(name),
			}
		}
		utils.Success(w, overview)
		return
	}

	utils.Success(w, map[string]interface{}{
		"cacheType": cacheType,
		"hitRate":   h.Stats.GetHitRate(cacheType, category),
		"stats":     h.Stats.GetStats(cacheType),
	})
}

// GetCacheStatsHistory récupère les instantanés persistés d'un cacheType
// (params: cacheType, start, end en RFC 3339)
func (h *Handler) GetCacheStatsHistory(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	cacheType := query.Get("cacheType")
	if cacheType == "" {
		utils.ErrorSimple(w, http.StatusBadRequest, "cacheType is required")
		return
	}

	// Par défaut : dernières 24 heures
	end := time.Now()
	start := end.Add(-24 * time.Hour)

	if s := query.Get("start"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid start timestamp", err)
			return
		}
		start = t
	}
	if s := query.Get("end"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid end timestamp", err)
			return
		}
		end = t
	}

	snapshots, err := h.Stats.GetHistoricalStats(r.Context(), cacheType, start, end)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not fetch stats history", err)
		return
	}

	utils.Success(w, snapshots)
}
