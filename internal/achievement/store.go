package achievement

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	model "github.com/MassCalmStudio/Serenity-backend/internal/models"
	"github.com/MassCalmStudio/Serenity-backend/internal/scanner"
)

// Store est la persistance des AchievementProgress.
//
// Les mutations de progression ne touchent jamais une ligne déjà complétée,
// et la transition vers completed est une mise à jour conditionnelle unique :
// deux événements concurrents ne peuvent pas compléter deux fois.
type Store interface {
	// Provision crée les lignes manquantes du catalogue pour un utilisateur
	Provision(ctx context.Context, userID string, defs []Definition) error
	// List retourne toutes les lignes d'un utilisateur, ordre du catalogue
	List(ctx context.Context, userID string) ([]model.AchievementProgress, error)
	// AddProgress fait progress = min(target, progress+amount) si non complété.
	// found == false si la ligne n'existe pas ou est déjà complétée.
	AddProgress(ctx context.Context, userID string, t Type, amount int) (progress, target int, found bool, err error)
	// RaiseProgress fait progress = min(target, max(progress, value)) si non
	// complété. Même contrat de retour que AddProgress.
	RaiseProgress(ctx context.Context, userID string, t Type, value int) (progress, target int, found bool, err error)
	// Complete pose progress = target, completed = true, completed_at = NOW()
	// uniquement si completed est encore false. Retourne true si la
	// transition a eu lieu dans cet appel.
	Complete(ctx context.Context, userID string, t Type) (bool, error)
}

// PostgresStore implémente Store sur la table user_achievements
type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Provision(ctx context.Context, userID string, defs []Definition) error {
	for _, def := range defs {
		_, err := s.db.Exec(ctx, `
			INSERT INTO user_achievements
				(user_id, achievement_type, progress, target, completed, points,
				 category, title, description, created_at, updated_at)
			VALUES ($1, $2, 0, $3, FALSE, $4, $5, $6, $7, NOW(), NOW())
			ON CONFLICT (user_id, achievement_type) DO NOTHING
		`, userID, string(def.Type), def.Target, def.Points, def.Category, def.Title, def.Description)
		if err != nil {
			return fmt.Errorf("could not provision achievement %s: %w", def.Type, err)
		}
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context, userID string) ([]model.AchievementProgress, error) {
	rows, err := s.db.Query(ctx, `
		SELECT user_id, achievement_type, progress, target, completed,
		       completed_at, points, category, title, description,
		       created_at, updated_at
		FROM user_achievements
		WHERE user_id = $1
		ORDER BY created_at ASC, achievement_type ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("could not query achievements: %w", err)
	}
	defer rows.Close()

	var out []model.AchievementProgress
	for rows.Next() {
		p, err := scanner.ScanAchievementProgress(rows)
		if err != nil {
			return nil, fmt.Errorf("could not scan achievement row: %w", err)
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (s *PostgresStore) AddProgress(ctx context.Context, userID string, t Type, amount int) (int, int, bool, error) {
	return s.updateProgress(ctx, `
		UPDATE user_achievements
		SET progress = LEAST(target, progress + $3), updated_at = NOW()
		WHERE user_id = $1 AND achievement_type = $2 AND completed = FALSE
		RETURNING progress, target
	`, userID, t, amount)
}

func (s *PostgresStore) RaiseProgress(ctx context.Context, userID string, t Type, value int) (int, int, bool, error) {
	return s.updateProgress(ctx, `
		UPDATE user_achievements
		SET progress = LEAST(target, GREATEST(progress, $3)), updated_at = NOW()
		WHERE user_id = $1 AND achievement_type = $2 AND completed = FALSE
		RETURNING progress, target
	`, userID, t, value)
}

func (s *PostgresStore) updateProgress(ctx context.Context, query, userID string, t Type, amount int) (int, int, bool, error) {
	var progress, target int
	err := s.db.QueryRow(ctx, query, userID, string(t), amount).Scan(&progress, &target)
	if errors.Is(err, pgx.ErrNoRows) {
		// Ligne absente ou déjà complétée : rien à faire
		return 0, 0, false, nil
	}
	if err != nil {
		return 0, 0, false, fmt.Errorf("could not update achievement progress: %w", err)
	}
	return progress, target, true, nil
}

func (s *PostgresStore) Complete(ctx context.Context, userID string, t Type) (bool, error) {
	// Mise à jour conditionnelle unique : la transition n'a lieu qu'une fois,
	// même sous événements concurrents
	tag, err := s.db.Exec(ctx, `
		UPDATE user_achievements
		SET progress = target, completed = TRUE, completed_at = NOW(), updated_at = NOW()
		WHERE user_id = $1 AND achievement_type = $2 AND completed = FALSE
	`, userID, string(t))
	if err != nil {
		return false, fmt.Errorf("could not complete achievement: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
