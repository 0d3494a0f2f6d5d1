package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "github.com/MassCalmStudio/Serenity-backend/internal/models"
)

// mockSnapshotStore garde les instantanés en mémoire
type mockSnapshotStore struct {
	mu        sync.Mutex
	snapshots []model.CacheStatSnapshot
}

func (m *mockSnapshotStore) SaveSnapshot(ctx context.Context, snap model.CacheStatSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap.CreatedAt = time.Now()
	m.snapshots = append(m.snapshots, snap)
	return nil
}

func (m *mockSnapshotStore) ListSnapshots(ctx context.Context, cacheType string, start, end time.Time) ([]model.CacheStatSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.CacheStatSnapshot
	for _, s := range m.snapshots {
		if s.CacheType == cacheType && !s.CreatedAt.Before(start) && !s.CreatedAt.After(end) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockSnapshotStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.snapshots)
}

func TestStatsTracker_HitRate(t *testing.T) {
	tr := NewStatsTracker(&mockSnapshotStore{})

	// Aucune observation : 0, pas NaN
	assert.Equal(t, 0.0, tr.GetHitRate("leaderboard", ""))

	tr.TrackHit("leaderboard", "total", time.Millisecond)
	tr.TrackHit("leaderboard", "total", time.Millisecond)
	tr.TrackMiss("leaderboard", "total", time.Millisecond)
	tr.TrackMiss("leaderboard", "streak", time.Millisecond)

	assert.InDelta(t, 2.0/3.0, tr.GetHitRate("leaderboard", "total"), 1e-9)
	assert.Equal(t, 0.0, tr.GetHitRate("leaderboard", "streak"))
	// Le bucket overall agrège toutes les catégories
	assert.InDelta(t, 2.0/4.0, tr.GetHitRate("leaderboard", ""), 1e-9)
}

func TestStatsTracker_IncrementalMean(t *testing.T) {
	tr := NewStatsTracker(&mockSnapshotStore{})

	tr.TrackHit("rank", "total", 10*time.Millisecond)
	tr.TrackHit("rank", "total", 20*time.Millisecond)
	tr.TrackMiss("rank", "total", 30*time.Millisecond)

	stats := tr.GetStats("rank")
	assert.InDelta(t, 20.0, stats["total"].AvgLatencyMs, 1e-9)
	assert.InDelta(t, 20.0, stats[OverallCategory].AvgLatencyMs, 1e-9)
}

func TestStatsTracker_SetAndInvalidationCounters(t *testing.T) {
	tr := NewStatsTracker(&mockSnapshotStore{})

	tr.TrackSet("leaderboard", "total", time.Millisecond, 128)
	tr.TrackSet("leaderboard", "total", time.Millisecond, 64)
	tr.TrackInvalidation("leaderboard", "total", time.Millisecond, 1)

	stats := tr.GetStats("leaderboard")["total"]
	assert.Equal(t, int64(2), stats.Sets)
	assert.Equal(t, int64(1), stats.Invalidations)
	assert.Equal(t, int64(192), stats.BytesStored)
	assert.Equal(t, int64(1), stats.KeyCount)
}

func TestStatsTracker_Reset(t *testing.T) {
	tr := NewStatsTracker(&mockSnapshotStore{})

	tr.TrackHit("leaderboard", "total", time.Millisecond)
	tr.TrackError("leaderboard", "total")
	tr.Reset()

	assert.Empty(t, tr.GetStats("leaderboard"))
	assert.Equal(t, 0.0, tr.GetHitRate("leaderboard", "total"))
}

func TestStatsTracker_PersistStats(t *testing.T) {
	store := &mockSnapshotStore{}
	tr := NewStatsTracker(store)

	tr.TrackHit("leaderboard", "total", time.Millisecond)
	tr.TrackMiss("rank", "social", time.Millisecond)

	require.NoError(t, tr.PersistStats(context.Background()))

	// Un instantané par cacheType observé
	assert.Equal(t, 2, store.count())

	snaps, err := tr.GetHistoricalStats(context.Background(), "leaderboard",
		time.Now().Add(-time.Minute), time.Now().Add(time.Minute))
	require.NoError(t, err)
	require.Len(t, snaps, 1)
	assert.Equal(t, int64(1), snaps[0].StatsByCategory["total"].Hits)
	assert.Contains(t, snaps[0].StatsByCategory, OverallCategory)
}

func TestStatsTracker_PersistenceTimerReplaced(t *testing.T) {
	store := &mockSnapshotStore{}
	tr := NewStatsTracker(store)
	tr.TrackHit("leaderboard", "total", time.Millisecond)

	// Redémarrer remplace le timer précédent : un seul actif à la fois
	tr.StartStatsPersistence(10 * time.Millisecond)
	tr.StartStatsPersistence(10 * time.Millisecond)

	time.Sleep(35 * time.Millisecond)
	tr.StopStatsPersistence()
	after := store.count()

	assert.Greater(t, after, 0)
	// Deux timers concurrents produiraient environ le double d'instantanés
	assert.LessOrEqual(t, after, 5)

	time.Sleep(25 * time.Millisecond)
	assert.Equal(t, after, store.count(), "timer still running after stop")

	// Stop sans timer actif est sans effet
	tr.StopStatsPersistence()
}
