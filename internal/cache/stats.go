package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MassCalmStudio/Serenity-backend/internal/logger"
	model "github.com/MassCalmStudio/Serenity-backend/internal/models"
)

// OverallCategory est le bucket agrégé maintenu pour chaque cacheType en plus
// des buckets par catégorie
const OverallCategory = "overall"

// SnapshotStore persiste les instantanés de compteurs
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, snap model.CacheStatSnapshot) error
	ListSnapshots(ctx context.Context, cacheType string, start, end time.Time) ([]model.CacheStatSnapshot, error)
}

// bucket accumule les compteurs d'un couple (cacheType, category).
// La latence moyenne est maintenue par moyenne incrémentale :
// avg' = avg + (sample - avg) / n — aucun historique n'est conservé.
type bucket struct {
	hits          int64
	misses        int64
	sets          int64
	invalidations int64
	errors        int64
	latencyOps    int64
	avgLatencyMs  float64
	bytesStored   int64
	keyCount      int64
}

func (b *bucket) observeLatency(latency time.Duration) {
	b.latencyOps++
	sample := float64(latency.Microseconds()) / 1000.0
	b.avgLatencyMs += (sample - b.avgLatencyMs) / float64(b.latencyOps)
}

func (b *bucket) toModel() model.CategoryStats {
	return model.CategoryStats{
		Hits:          b.hits,
		Misses:        b.misses,
		Sets:          b.sets,
		Invalidations: b.invalidations,
		Errors:        b.errors,
		AvgLatencyMs:  b.avgLatencyMs,
		BytesStored:   b.bytesStored,
		KeyCount:      b.keyCount,
	}
}

// StatsTracker suit les performances du cache par cacheType et catégorie.
// Tous les compteurs sont en mémoire ; PersistStats écrit un instantané
// durable par cacheType.
type StatsTracker struct {
	mu    sync.Mutex
	types map[string]map[string]*bucket
	store SnapshotStore

	timerMu   sync.Mutex
	timerStop chan struct{}
}

func NewStatsTracker(store SnapshotStore) *StatsTracker {
	return &StatsTracker{
		types: make(map[string]map[string]*bucket),
		store: store,
	}
}

// buckets retourne le bucket de la catégorie et le bucket overall, créés à la
// volée. Appelé sous verrou.
func (t *StatsTracker) buckets(cacheType, category string) (*bucket, *bucket) {
	byCategory, ok := t.types[cacheType]
	if !ok {
		byCategory = make(map[string]*bucket)
		t.types[cacheType] = byCategory
	}

	get := func(name string) *bucket {
		b, ok := byCategory[name]
		if !ok {
			b = &bucket{}
			byCategory[name] = b
		}
		return b
	}

	return get(category), get(OverallCategory)
}

// TrackHit enregistre un hit de cache
func (t *StatsTracker) TrackHit(cacheType, category string, latency time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	cat, overall := t.buckets(cacheType, category)
	for _, b := range []*bucket{cat, overall} {
		b.hits++
		b.observeLatency(latency)
	}
}

// TrackMiss enregistre un miss de cache
func (t *StatsTracker) TrackMiss(cacheType, category string, latency time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	cat, overall := t.buckets(cacheType, category)
	for _, b := range []*bucket{cat, overall} {
		b.misses++
		b.observeLatency(latency)
	}
}

// TrackSet enregistre une écriture, avec la taille approximative stockée
func (t *StatsTracker) TrackSet(cacheType, category string, latency time.Duration, bytes int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	cat, overall := t.buckets(cacheType, category)
	for _, b := range []*bucket{cat, overall} {
		b.sets++
		b.keyCount++
		b.bytesStored += bytes
		b.observeLatency(latency)
	}
}

// TrackInvalidation enregistre une invalidation (removed clés retirées)
func (t *StatsTracker) TrackInvalidation(cacheType, category string, latency time.Duration, removed int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	cat, overall := t.buckets(cacheType, category)
	for _, b := range []*bucket{cat, overall} {
		b.invalidations++
		b.keyCount -= removed
		if b.keyCount < 0 {
			b.keyCount = 0
		}
		b.observeLatency(latency)
	}
}

// TrackError enregistre une erreur du chemin cache
func (t *StatsTracker) TrackError(cacheType, category string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	cat, overall := t.buckets(cacheType, category)
	cat.errors++
	overall.errors++
}

// GetHitRate retourne hits / (hits + misses), 0 sans observation.
// category vide : bucket overall.
func (t *StatsTracker) GetHitRate(cacheType, category string) float64 {
	if category == "" {
		category = OverallCategory
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	byCategory, ok := t.types[cacheType]
	if !ok {
		return 0
	}
	b, ok := byCategory[category]
	if !ok {
		return 0
	}
	total := b.hits + b.misses
	if total == 0 {
		return 0
	}
	return float64(b.hits) / float64(total)
}

// GetStats retourne une copie des compteurs courants d'un cacheType
func (t *StatsTracker) GetStats(cacheType string) map[string]model.CategoryStats {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make(map[string]model.CategoryStats)
	for category, b := range t.types[cacheType] {
		out[category] = b.toModel()
	}
	return out
}

// CacheTypes retourne les cacheTypes observés
func (t *StatsTracker) CacheTypes() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	names := make([]string, 0, len(t.types))
	for name := range t.types {
		names = append(names, name)
	}
	return names
}

// Reset remet tous les compteurs en mémoire à zéro.
// L'historique persisté n'est pas touché.
func (t *StatsTracker) Reset() {
	t.mu.Lock()
	t.types = make(map[string]map[string]*bucket)
	t.mu.Unlock()
}

// PersistStats écrit un instantané durable par cacheType
func (t *StatsTracker) PersistStats(ctx context.Context) error {
	t.mu.Lock()
	snapshots := make([]model.CacheStatSnapshot, 0, len(t.types))
	for cacheType, byCategory := range t.types {
		stats := make(map[string]model.CategoryStats, len(byCategory))
		for category, b := range byCategory {
			stats[category] = b.toModel()
		}
		snapshots = append(snapshots, model.CacheStatSnapshot{
			CacheType:       cacheType,
			StatsByCategory: stats,
		})
	}
	t.mu.Unlock()

	for _, snap := range snapshots {
		if err := t.store.SaveSnapshot(ctx, snap); err != nil {
			return fmt.Errorf("could not persist stats for %s: %w", snap.CacheType, err)
		}
	}
	return nil
}

// StartStatsPersistence programme la persistance sur un timer répété.
// Un seul timer est actif à la fois : redémarrer remplace le précédent.
func (t *StatsTracker) StartStatsPersistence(interval time.Duration) {
	t.timerMu.Lock()
	defer t.timerMu.Unlock()

	if t.timerStop != nil {
		close(t.timerStop)
	}
	stop := make(chan struct{})
	t.timerStop = stop

	ticker := time.NewTicker(interval)
	go func() {
		for {
			select {
			case <-ticker.C:
				if err := t.PersistStats(context.Background()); err != nil {
					logger.Error("stats persistence failed: %v", err)
				}
			case <-stop:
				ticker.Stop()
				return
			}
		}
	}()
}

// StopStatsPersistence annule le timer de persistance s'il est actif
func (t *StatsTracker) StopStatsPersistence() {
	t.timerMu.Lock()
	defer t.timerMu.Unlock()

	if t.timerStop != nil {
		close(t.timerStop)
		t.timerStop = nil
	}
}

// GetHistoricalStats lit les instantanés persistés, ordonnés par date croissante
func (t *StatsTracker) GetHistoricalStats(ctx context.Context, cacheType string, start, end time.Time) ([]model.CacheStatSnapshot, error) {
	return t.store.ListSnapshots(ctx, cacheType, start, end)
}
