package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	model "github.com/MassCalmStudio/Serenity-backend/internal/models"
)

// PostgresSnapshotStore persiste les instantanés dans cache_stat_snapshots.
// Les compteurs par catégorie sont stockés en jsonb.
type PostgresSnapshotStore struct {
	db *pgxpool.Pool
}

func NewPostgresSnapshotStore(db *pgxpool.Pool) *PostgresSnapshotStore {
	return &PostgresSnapshotStore{db: db}
}

func (s *PostgresSnapshotStore) SaveSnapshot(ctx context.Context, snap model.CacheStatSnapshot) error {
	stats, err := json.Marshal(snap.StatsByCategory)
	if err != nil {
		return fmt.Errorf("could not marshal snapshot stats: %w", err)
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO cache_stat_snapshots (id, cache_type, stats, created_at)
		VALUES ($1, $2, $3, NOW())
	`, uuid.NewString(), snap.CacheType, stats)
	if err != nil {
		return fmt.Errorf("could not insert snapshot: %w", err)
	}
	return nil
}

func (s *PostgresSnapshotStore) ListSnapshots(ctx context.Context, cacheType string, start, end time.Time) ([]model.CacheStatSnapshot, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, cache_type, stats, created_at
		FROM cache_stat_snapshots
		WHERE cache_type = $1 AND created_at >= $2 AND created_at <= $3
		ORDER BY created_at ASC
	`, cacheType, start, end)
	if err != nil {
		return nil, fmt.Errorf("could not query snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []model.CacheStatSnapshot
	for rows.Next() {
		var snap model.CacheStatSnapshot
		var stats []byte
		if err := rows.Scan(&snap.ID, &snap.CacheType, &stats, &snap.CreatedAt); err != nil {
			return nil, fmt.Errorf("could not scan snapshot row: %w", err)
		}
		if err := json.Unmarshal(stats, &snap.StatsByCategory); err != nil {
			return nil, fmt.Errorf("could not unmarshal snapshot stats: %w", err)
		}
		snapshots = append(snapshots, snap)
	}
	return snapshots, rows.Err()
}
