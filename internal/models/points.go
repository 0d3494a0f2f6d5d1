package model

import "time"

// Catégories de sources pour les gains de points
const (
	PointsSourceAchievement = "achievement"
	PointsSourceStreak      = "streak"
	PointsSourceSocial      = "social"
	PointsSourceMeditation  = "meditation"
)

// PointsLedgerEntry est une ligne du journal de points (append-only, immuable)
type PointsLedgerEntry struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	Points         int       `json:"points"`
	SourceCategory string    `json:"sourceCategory"`
	Description    string    `json:"description"`
	CreatedAt      time.Time `json:"createdAt"`
}

// PointsTotals contient les totaux cumulés par catégorie pour un utilisateur.
// RecentPoints couvre les 7 derniers jours et est recalculé à la lecture.
type PointsTotals struct {
	UserID            string `json:"userId"`
	Total             int    `json:"total"`
	AchievementPoints int    `json:"achievementPoints"`
	StreakPoints      int    `json:"streakPoints"`
	SocialPoints      int    `json:"socialPoints"`
	RecentPoints      int    `json:"recentPoints"`
}

// UserPoints est la forme renvoyée par GET /users/{userId}/points
type UserPoints struct {
	Total        int `json:"total"`
	Achievements int `json:"achievements"`
	Streaks      int `json:"streaks"`
	Recent       int `json:"recent"`
}
