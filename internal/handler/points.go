package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	model "github.com/MassCalmStudio/Serenity-backend/internal/models"
	"github.com/MassCalmStudio/Serenity-backend/internal/utils"
)

// GetUserPoints récupère les totaux de points d'un utilisateur.
// Un utilisateur sans gain obtient des totaux à zéro, pas une erreur.
func (h *Handler) GetUserPoints(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := vars["userId"]

	if err := utils.ValidateUserID(userID); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid user id", err)
		return
	}

	totals, err := h.Ledger.GetTotals(r.Context(), userID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not fetch user points", err)
		return
	}

	utils.Success(w, model.UserPoints{
		Total:        totals.Total,
		Achievements: totals.AchievementPoints,
		Streaks:      totals.StreakPoints,
		Recent:       totals.RecentPoints,
	})
}

// GetPointsHistory récupère les derniers gains du journal (param: limit)
func (h *Handler) GetPointsHistory(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := vars["userId"]

	if err := utils.ValidateUserID(userID); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid user id", err)
		return
	}

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil {
			limit = l
		}
	}

	entries, err := h.Ledger.GetHistory(r.Context(), userID, limit)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not fetch points history", err)
		return
	}
	if entries == nil {
		entries = []model.PointsLedgerEntry{}
	}

	utils.Success(w, entries)
}
