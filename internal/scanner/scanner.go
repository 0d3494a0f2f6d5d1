package scanner

import (
	model "github.com/MassCalmStudio/Serenity-backend/internal/models"
)

// RowScanner couvre pgx.Row et pgx.Rows
type RowScanner interface {
	Scan(dest ...interface{}) error
}

// ScanAchievementProgress scanne une ligne SQL vers un AchievementProgress
func ScanAchievementProgress(row RowScanner) (*model.AchievementProgress, error) {
	var p model.AchievementProgress
	err := row.Scan(
		&p.UserID, &p.AchievementType, &p.Progress, &p.Target, &p.Completed,
		&p.CompletedAt, &p.Points, &p.Category, &p.Title, &p.Description,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ScanLedgerEntry scanne une ligne SQL vers un PointsLedgerEntry
func ScanLedgerEntry(row RowScanner) (*model.PointsLedgerEntry, error) {
	var e model.PointsLedgerEntry
	err := row.Scan(&e.ID, &e.UserID, &e.Points, &e.SourceCategory, &e.Description, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// ScanLeaderboardEntry scanne une ligne SQL vers un LeaderboardEntry
func ScanLeaderboardEntry(row RowScanner) (*model.LeaderboardEntry, error) {
	var e model.LeaderboardEntry
	err := row.Scan(&e.UserID, &e.UserName, &e.Points, &e.Rank)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
