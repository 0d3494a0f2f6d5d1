package handler

import (
	"net/http"

	model "github.com/MassCalmStudio/Serenity-backend/internal/models"
	"github.com/MassCalmStudio/Serenity-backend/internal/utils"
)

// SessionCompleted reçoit l'événement de fin de session du service de
// sessions et déroule les règles de succès, streaks et points
func (h *Handler) SessionCompleted(w http.ResponseWriter, r *http.Request) {
	var ev model.SessionCompletedEvent
	if err := utils.DecodeJSON(r, &ev); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid JSON body", err)
		return
	}

	if err := utils.ValidateUserID(ev.UserID); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid user id", err)
		return
	}
	if ev.SessionID == "" {
		utils.ErrorSimple(w, http.StatusBadRequest, "sessionId is required")
		return
	}
	if ev.Duration < 0 || ev.Interruptions < 0 {
		utils.ErrorSimple(w, http.StatusBadRequest, "duration and interruptions must be >= 0")
		return
	}

	if err := h.Engine.HandleSessionCompleted(r.Context(), ev); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not process session event", err)
		return
	}

	utils.Message(w, "session event processed")
}

// FriendCount reçoit le compte d'amitiés acceptées du service social
func (h *Handler) FriendCount(w http.ResponseWriter, r *http.Request) {
	var ev model.FriendCountEvent
	if err := utils.DecodeJSON(r, &ev); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid JSON body", err)
		return
	}

	if err := utils.ValidateUserID(ev.UserID); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid user id", err)
		return
	}
	if ev.Count < 0 {
		utils.ErrorSimple(w, http.StatusBadRequest, "count must be >= 0")
		return
	}

	if err := h.Engine.HandleFriendCount(r.Context(), ev.UserID, ev.Count); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not process friend count", err)
		return
	}

	utils.Message(w, "friend count processed")
}
