package points

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	model "github.com/MassCalmStudio/Serenity-backend/internal/models"
	"github.com/MassCalmStudio/Serenity-backend/internal/scanner"
)

// PostgresStore implémente Store sur points_ledger et points_totals
type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Append(ctx context.Context, entry model.PointsLedgerEntry) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO points_ledger (id, user_id, points, source_category, description, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`, entry.ID, entry.UserID, entry.Points, entry.SourceCategory, entry.Description)
	if err != nil {
		return fmt.Errorf("could not append ledger entry: %w", err)
	}
	return nil
}

// colonne de totaux incrémentée selon la catégorie source.
// meditation ne compte que dans le total général.
func categoryColumn(sourceCategory string) string {
	switch sourceCategory {
	case model.PointsSourceAchievement:
		return "achievement_points"
	case model.PointsSourceStreak:
		return "streak_points"
	case model.PointsSourceSocial:
		return "social_points"
	default:
		return ""
	}
}

func (s *PostgresStore) AddToTotals(ctx context.Context, userID string, pts int, sourceCategory string) error {
	column := categoryColumn(sourceCategory)

	query := `
		INSERT INTO points_totals (user_id, total, achievement_points, streak_points, social_points, updated_at)
		VALUES ($1, $2, 0, 0, 0, NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET total = points_totals.total + EXCLUDED.total, updated_at = NOW()
	`
	if column != "" {
		query = fmt.Sprintf(`
			INSERT INTO points_totals (user_id, total, achievement_points, streak_points, social_points, updated_at)
			VALUES ($1, $2, %[1]s, %[2]s, %[3]s, NOW())
			ON CONFLICT (user_id) DO UPDATE
			SET total = points_totals.total + EXCLUDED.total,
			    %[4]s = points_totals.%[4]s + EXCLUDED.%[4]s,
			    updated_at = NOW()
		`,
			insertValue(column, "achievement_points"),
			insertValue(column, "streak_points"),
			insertValue(column, "social_points"),
			column,
		)
	}

	if _, err := s.db.Exec(ctx, query, userID, pts); err != nil {
		return fmt.Errorf("could not update points totals: %w", err)
	}
	return nil
}

// insertValue vaut $2 pour la colonne visée, 0 sinon
func insertValue(target, column string) string {
	if target == column {
		return "$2"
	}
	return "0"
}

func (s *PostgresStore) GetTotals(ctx context.Context, userID string) (model.PointsTotals, error) {
	var t model.PointsTotals
	err := s.db.QueryRow(ctx, `
		SELECT user_id, total, achievement_points, streak_points, social_points
		FROM points_totals
		WHERE user_id = $1
	`, userID).Scan(&t.UserID, &t.Total, &t.AchievementPoints, &t.StreakPoints, &t.SocialPoints)
	if errors.Is(err, pgx.ErrNoRows) {
		// Utilisateur sans gain : totaux à zéro, pas une erreur
		return model.PointsTotals{UserID: userID}, nil
	}
	if err != nil {
		return model.PointsTotals{}, fmt.Errorf("could not query points totals: %w", err)
	}
	return t, nil
}

func (s *PostgresStore) History(ctx context.Context, userID string, limit int) ([]model.PointsLedgerEntry, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, points, source_category, description, created_at
		FROM points_ledger
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("could not query ledger history: %w", err)
	}
	defer rows.Close()

	var entries []model.PointsLedgerEntry
	for rows.Next() {
		e, err := scanner.ScanLedgerEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("could not scan ledger row: %w", err)
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

func (s *PostgresStore) SumSince(ctx context.Context, userID string, since time.Time) (int, error) {
	var sum int
	err := s.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(points), 0)
		FROM points_ledger
		WHERE user_id = $1 AND created_at >= $2
	`, userID, since).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("could not sum recent points: %w", err)
	}
	return sum, nil
}
