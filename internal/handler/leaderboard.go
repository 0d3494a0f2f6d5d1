package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/MassCalmStudio/Serenity-backend/internal/leaderboard"
	model "github.com/MassCalmStudio/Serenity-backend/internal/models"
	"github.com/MassCalmStudio/Serenity-backend/internal/utils"
)

// GetLeaderboard récupère le classement (params: period, category, limit)
func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	period := query.Get("period")
	if period == "" {
		period = model.PeriodAllTime
	}
	category := query.Get("category")
	if category == "" {
		category = model.CategoryTotal
	}

	limit := leaderboard.DefaultLimit
	if limitStr := query.Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil {
			limit = l
		}
	}

	if !model.ValidPeriod(period) || !model.ValidCategory(category) {
		utils.ErrorSimple(w, http.StatusBadRequest, "unknown period or category")
		return
	}

	entries, err := h.Ranker.GetLeaderboard(r.Context(), period, category, limit)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query leaderboard", err)
		return
	}

	utils.Success(w, entries)
}

// GetTopAchievers récupère le haut du classement all-time (param: limit)
func (h *Handler) GetTopAchievers(w http.ResponseWriter, r *http.Request) {
	limit := leaderboard.DefaultLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil {
			limit = l
		}
	}

	entries, err := h.Ranker.GetTopAchievers(r.Context(), limit)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query top achievers", err)
		return
	}

	utils.Success(w, entries)
}

// GetUserRank récupère le rang d'un utilisateur (params: period, category)
func (h *Handler) GetUserRank(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := vars["userId"]

	period := r.URL.Query().Get("period")
	if period == "" {
		period = model.PeriodAllTime
	}
	category := r.URL.Query().Get("category")
	if category == "" {
		category = model.CategoryTotal
	}

	if err := utils.ValidateUserID(userID); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid user id", err)
		return
	}
	if !model.ValidPeriod(period) || !model.ValidCategory(category) {
		utils.ErrorSimple(w, http.StatusBadRequest, "unknown period or category")
		return
	}

	rank, err := h.Ranker.GetUserRank(r.Context(), userID, period, category)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not fetch user rank", err)
		return
	}

	utils.Success(w, rank)
}

// GetWeeklyProgress récupère le résumé de la semaine courante
func (h *Handler) GetWeeklyProgress(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := vars["userId"]

	if err := utils.ValidateUserID(userID); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid user id", err)
		return
	}

	wp, err := h.Ranker.GetWeeklyProgress(r.Context(), userID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not fetch weekly progress", err)
		return
	}

	utils.Success(w, wp)
}
