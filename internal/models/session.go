package model

import "time"

// SessionCompletedEvent est l'événement émis par le service de sessions
// quand une session de méditation/respiration se termine.
// CompletedDates porte l'historique (dates calendaires, tronquées à minuit)
// sur la fenêtre glissante, pour le calcul des streaks.
type SessionCompletedEvent struct {
	UserID           string      `json:"userId"`
	SessionID        string      `json:"sessionId"`
	Duration         int         `json:"duration"` // secondes
	Interruptions    int         `json:"interruptions"`
	MoodBefore       *int        `json:"moodBefore,omitempty"` // échelle 1-5
	MoodAfter        *int        `json:"moodAfter,omitempty"`
	FocusRating      *int        `json:"focusRating,omitempty"` // échelle 1-5
	StreakMaintained *bool       `json:"streakMaintained,omitempty"`
	StreakDay        *int        `json:"streakDay,omitempty"`
	CompletedDates   []time.Time `json:"completedDates,omitempty"`
}

// FriendCountEvent est le résultat de la requête auprès du service social
type FriendCountEvent struct {
	UserID string `json:"userId"`
	Count  int    `json:"count"`
}

// WeeklyProgress est le résumé hebdomadaire servi depuis le cache
type WeeklyProgress struct {
	UserID     string `json:"userId"`
	Sessions   int    `json:"sessions"`
	Points     int    `json:"points"`
	StreakDays int    `json:"streakDays"`
}
