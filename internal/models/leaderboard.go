package model

// Périodes de classement supportées
const (
	PeriodDaily   = "daily"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
	PeriodAllTime = "all-time"
)

// Catégories de classement supportées
const (
	CategoryTotal      = "total"
	CategoryMeditation = "meditation"
	CategoryStreak     = "streak"
	CategorySocial     = "social"
)

// LeaderboardEntry représente la position d'un utilisateur dans le classement.
// Le rang est dense (1..N), strictement par points décroissants ; à égalité de
// points, l'ordre est déterministe par user_id croissant.
type LeaderboardEntry struct {
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
	Points   int    `json:"points"`
	Rank     int    `json:"rank"`
}

// UserRank représente le rang d'un utilisateur dans une période/catégorie
type UserRank struct {
	UserID     string `json:"userId"`
	Rank       int    `json:"rank"`
	Points     int    `json:"points"`
	TotalUsers int    `json:"totalUsers"` // utilisateurs avec des points > 0 dans le scope
}

// ValidPeriod vérifie qu'une période est connue
func ValidPeriod(period string) bool {
	switch period {
	case PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodAllTime:
		return true
	}
	return false
}

// ValidCategory vérifie qu'une catégorie est connue
func ValidCategory(category string) bool {
	switch category {
	case CategoryTotal, CategoryMeditation, CategoryStreak, CategorySocial:
		return true
	}
	return false
}
