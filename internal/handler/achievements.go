package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MassCalmStudio/Serenity-backend/internal/utils"
)

// ProvisionAchievements crée les succès du catalogue pour un utilisateur.
// Appelé à l'onboarding ; idempotent.
func (h *Handler) ProvisionAchievements(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := vars["userId"]

	if err := h.Engine.ProvisionUser(r.Context(), userID); err != nil {
		if verr := utils.ValidateUserID(userID); verr != nil {
			utils.Error(w, http.StatusBadRequest, "invalid user id", verr)
			return
		}
		utils.Error(w, http.StatusInternalServerError, "could not provision achievements", err)
		return
	}

	utils.Message(w, "achievements provisioned")
}

// GetUserAchievements récupère les succès d'un utilisateur avec le flag
// earned et la date d'obtention. Liste vide si jamais provisionné.
func (h *Handler) GetUserAchievements(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := vars["userId"]

	if err := utils.ValidateUserID(userID); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid user id", err)
		return
	}

	achievements, err := h.Engine.GetUserAchievements(r.Context(), userID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not fetch achievements", err)
		return
	}

	utils.Success(w, achievements)
}
