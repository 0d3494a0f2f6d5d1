package leaderboard

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

// Store fournit les agrégations de classement depuis le journal de points
type Store interface {
	// Top retourne les meilleurs utilisateurs. since à zéro : all-time,
	// servi depuis les totaux précalculés quand la catégorie en a une
	// colonne ; sinon agrégation du journal sur la période.
	// Ordre : points décroissants, user_id croissant à égalité.
	Top(ctx context.Context, category string, since time.Time, limit int) ([]model.LeaderboardEntry, error)
	// UserRank retourne (rang, points, utilisateurs à points > 0) dans le scope
	UserRank(ctx context.Context, userID, category string, since time.Time) (rank, pts, totalUsers int, err error)
	// WeeklySummary compte sessions, points et jours actifs depuis weekStart
	WeeklySummary(ctx context.Context, userID string, weekStart time.Time) (model.WeeklyProgress, error)
}

// PostgresStore implémente Store sur points_ledger / points_totals
type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// totalsColumn choisit la colonne des totaux précalculés pour l'all-time.
// meditation n'a pas de colonne dédiée : cette catégorie passe toujours par
// l'agrégation du journal.
func totalsColumn(category string) string {
	switch category {
	case model.CategoryStreak:
		return "streak_points"
	case model.CategorySocial:
		return "social_points"
	default:
		return "total"
	}
}

// fromTotals indique si le scope (category, since) peut être servi depuis les
// totaux précalculés
func fromTotals(category string, since time.Time) bool {
	return since.IsZero() && category != model.CategoryMeditation
}

func (s *PostgresStore) Top(ctx context.Context, category string, since time.Time, limit int) ([]model.LeaderboardEntry, error) {
	var rows pgx.Rows
	var err error

	if fromTotals(category, since) {
		// All-time : totaux précalculés
		query := fmt.Sprintf(`
			WITH ranked_users AS (
				SELECT
					pt.user_id,
					pt.%[1]s AS points,
					ROW_NUMBER() OVER (ORDER BY pt.%[1]s DESC, pt.user_id ASC) AS rank
				FROM points_totals pt
				WHERE pt.%[1]s > 0
			)
			SELECT ru.user_id, COALESCE(u.name, ru.user_id), ru.points, ru.rank
			FROM ranked_users ru
			LEFT JOIN users u ON ru.user_id = u.id
			ORDER BY ru.rank
			LIMIT $1
		`, totalsColumn(category))
		rows, err = s.db.Query(ctx, query, limit)
	} else {
		// Agrégation du journal, filtrée par source. since à zéro (all-time
		// meditation) couvre tout le journal.
		rows, err = s.db.Query(ctx, `
			WITH user_scores AS (
				SELECT pl.user_id, SUM(pl.points) AS points
				FROM points_ledger pl
				WHERE pl.created_at >= $1
				  AND ($2 = 'total' OR pl.source_category = $2)
				GROUP BY pl.user_id
			),
			ranked_users AS (
				SELECT
					us.user_id,
					us.points,
					ROW_NUMBER() OVER (ORDER BY us.points DESC, us.user_id ASC) AS rank
				FROM user_scores us
				WHERE us.points > 0
			)
			SELECT ru.user_id, COALESCE(u.name, ru.user_id), ru.points, ru.rank
			FROM ranked_users ru
			LEFT JOIN users u ON ru.user_id = u.id
			ORDER BY ru.rank
			LIMIT $3
		`, since, category, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("could not query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []model.LeaderboardEntry
	for rows.Next() {
		e, err := scanner.ScanLeaderboardEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("could not scan leaderboard row: %w", err)
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

func (s *PostgresStore) UserRank(ctx context.Context, userID, category string, since time.Time) (int, int, int, error) {
	var query string
	var args []interface{}

	if fromTotals(category, since) {
		query = fmt.Sprintf(`
			WITH scoped AS (
				SELECT user_id, %[1]s AS points
				FROM points_totals
				WHERE %[1]s > 0
			)
			SELECT
				COALESCE((SELECT points FROM scoped WHERE user_id = $1), 0) AS points,
				(SELECT COUNT(*) FROM scoped
				 WHERE points > COALESCE((SELECT points FROM scoped WHERE user_id = $1), 0)) AS greater,
				(SELECT COUNT(*) FROM scoped) AS total_users
		`, totalsColumn(category))
		args = []interface{}{userID}
	} else {
		query = `
			WITH scoped AS (
				SELECT user_id, SUM(points) AS points
				FROM points_ledger
				WHERE created_at >= $2
				  AND ($3 = 'total' OR source_category = $3)
				GROUP BY user_id
				HAVING SUM(points) > 0
			)
			SELECT
				COALESCE((SELECT points FROM scoped WHERE user_id = $1), 0) AS points,
				(SELECT COUNT(*) FROM scoped
				 WHERE points > COALESCE((SELECT points FROM scoped WHERE user_id = $1), 0)) AS greater,
				(SELECT COUNT(*) FROM scoped) AS total_users
		`
		args = []interface{}{userID, since, category}
	}

	var pts, greater, totalUsers int
	err := s.db.QueryRow(ctx, query, args...).Scan(&pts, &greater, &totalUsers)
	if errors.Is(err, pgx.ErrNoRows) {
		return 1, 0, 0, nil
	}
	if err != nil {
		return 0, 0, 0, fmt.Errorf("could not query user rank: %w", err)
	}

	// rang = nombre d'utilisateurs strictement au-dessus + 1
	return greater + 1, pts, totalUsers, nil
}

func (s *PostgresStore) WeeklySummary(ctx context.Context, userID string, weekStart time.Time) (model.WeeklyProgress, error) {
	wp := model.WeeklyProgress{UserID: userID}

	// Une ligne de journal en catégorie meditation par session terminée
	err := s.db.QueryRow(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE source_category = 'meditation'),
			COALESCE(SUM(points), 0),
			COUNT(DISTINCT DATE(created_at)) FILTER (WHERE source_category = 'meditation')
		FROM points_ledger
		WHERE user_id = $1 AND created_at >= $2
	`, userID, weekStart).Scan(&wp.Sessions, &wp.Points, &wp.StreakDays)
	if err != nil {
		return model.WeeklyProgress{}, fmt.Errorf("could not query weekly summary: %w", err)
	}
	return wp, nil
}
