package utils

import (
	"encoding/json"
	"net/http"

	"github.com/MassCalmStudio/Serenity-backend/internal/logger"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

func JSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// Success renvoie une réponse 200 avec les données
func Success(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusOK, APIResponse{Success: true, Data: data})
}

// Error renvoie une réponse d'erreur et log la cause
func Error(w http.ResponseWriter, status int, msg string, err error) {
	if err != nil {
		logger.Error("%s: %v", msg, err)
	} else {
		logger.Error("%s", msg)
	}
	JSON(w, status, APIResponse{Success: false, Error: msg})
}

// ErrorSimple renvoie une réponse d'erreur sans cause sous-jacente
func ErrorSimple(w http.ResponseWriter, status int, msg string) {
	Error(w, status, msg, nil)
}

// Message renvoie une réponse 200 avec un simple message
func Message(w http.ResponseWriter, msg string) {
	JSON(w, http.StatusOK, APIResponse{Success: true, Message: msg})
}
