package model

import (
	"database/sql"
	"time"
)

// AchievementProgress représente la progression d'un utilisateur vers un succès.
// Une ligne par (user, type), créée à l'onboarding, jamais supprimée.
// Invariant : 0 <= progress <= target ; completed == true ssi progress >= target ;
// completed ne repasse jamais à false et completedAt est posé une seule fois.
type AchievementProgress struct {
	UserID          string       `json:"userId"`
	AchievementType string       `json:"achievementType"`
	Progress        int          `json:"progress"`
	Target          int          `json:"target"`
	Completed       bool         `json:"completed"`
	CompletedAt     sql.NullTime `json:"completedAt,omitempty"`
	Points          int          `json:"points"`
	Category        string       `json:"category"` // meditation, streak, social
	Title           string       `json:"title"`
	Description     string       `json:"description"`
	CreatedAt       time.Time    `json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`
}

// UserAchievement est la vue API d'un succès avec le flag earned
type UserAchievement struct {
	AchievementType string     `json:"achievementType"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Category        string     `json:"category"`
	Progress        int        `json:"progress"`
	Target          int        `json:"target"`
	Points          int        `json:"points"`
	Earned          bool       `json:"earned"`
	DateEarned      *time.Time `json:"dateEarned,omitempty"`
}
