package points

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "github.com/MassCalmStudio/Serenity-backend/internal/models"
)

// mockPointsStore garde le journal et les totaux en mémoire
type mockPointsStore struct {
	entries []model.PointsLedgerEntry
	totals  map[string]*model.PointsTotals
}

func newMockPointsStore() *mockPointsStore {
	return &mockPointsStore{totals: make(map[string]*model.PointsTotals)}
}

func (m *mockPointsStore) Append(ctx context.Context, entry model.PointsLedgerEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockPointsStore) AddToTotals(ctx context.Context, userID string, pts int, sourceCategory string) error {
	t, ok := m.totals[userID]
	if !ok {
		t = &model.PointsTotals{UserID: userID}
		m.totals[userID] = t
	}
	t.Total += pts
	switch sourceCategory {
	case model.PointsSourceAchievement:
		t.AchievementPoints += pts
	case model.PointsSourceStreak:
		t.StreakPoints += pts
	case model.PointsSourceSocial:
		t.SocialPoints += pts
	}
	return nil
}

func (m *mockPointsStore) GetTotals(ctx context.Context, userID string) (model.PointsTotals, error) {
	if t, ok := m.totals[userID]; ok {
		return *t, nil
	}
	return model.PointsTotals{UserID: userID}, nil
}

func (m *mockPointsStore) SumSince(ctx context.Context, userID string, since time.Time) (int, error) {
	sum := 0
	for _, e := range m.entries {
		if e.UserID == userID && !e.CreatedAt.Before(since) {
			sum += e.Points
		}
	}
	return sum, nil
}

func (m *mockPointsStore) History(ctx context.Context, userID string, limit int) ([]model.PointsLedgerEntry, error) {
	var out []model.PointsLedgerEntry
	for i := len(m.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if m.entries[i].UserID == userID {
			out = append(out, m.entries[i])
		}
	}
	return out, nil
}

// mockInvalidator compte les invalidations par utilisateur
type mockInvalidator struct {
	calls []string
}

func (m *mockInvalidator) InvalidateUserCache(userID string) {
	m.calls = append(m.calls, userID)
}

func TestAddPoints_AccumulatesByCategory(t *testing.T) {
	store := newMockPointsStore()
	ledger := NewLedger(store, &mockInvalidator{})
	ctx := context.Background()

	require.NoError(t, ledger.AddPoints(ctx, "user-1", 50, model.PointsSourceAchievement, "Achievement unlocked: First Steps"))
	require.NoError(t, ledger.AddPoints(ctx, "user-1", 5, model.PointsSourceStreak, "Daily streak maintained (day 3)"))
	require.NoError(t, ledger.AddPoints(ctx, "user-1", 50, model.PointsSourceSocial, "Friend milestone reached"))
	require.NoError(t, ledger.AddPoints(ctx, "user-1", 20, model.PointsSourceMeditation, "Session completed (sess-1)"))

	totals, err := ledger.GetTotals(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 125, totals.Total)
	assert.Equal(t, 50, totals.AchievementPoints)
	assert.Equal(t, 5, totals.StreakPoints)
	assert.Equal(t, 50, totals.SocialPoints)
	// Tout le journal tombe dans la fenêtre glissante
	assert.Equal(t, 125, totals.RecentPoints)
}

func TestAddPoints_InvalidatesCacheOnEveryGrant(t *testing.T) {
	store := newMockPointsStore()
	inv := &mockInvalidator{}
	ledger := NewLedger(store, inv)
	ctx := context.Background()

	require.NoError(t, ledger.AddPoints(ctx, "user-1", 10, model.PointsSourceMeditation, "Session completed (a)"))
	require.NoError(t, ledger.AddPoints(ctx, "user-2", 10, model.PointsSourceMeditation, "Session completed (b)"))
	require.NoError(t, ledger.AddPoints(ctx, "user-1", 10, model.PointsSourceMeditation, "Session completed (c)"))

	assert.Equal(t, []string{"user-1", "user-2", "user-1"}, inv.calls)
}

func TestAddPoints_RejectsNonPositive(t *testing.T) {
	store := newMockPointsStore()
	inv := &mockInvalidator{}
	ledger := NewLedger(store, inv)
	ctx := context.Background()

	assert.Error(t, ledger.AddPoints(ctx, "user-1", 0, model.PointsSourceMeditation, "nothing"))
	assert.Error(t, ledger.AddPoints(ctx, "user-1", -5, model.PointsSourceMeditation, "nothing"))

	// Aucun effet de bord sur un gain refusé
	assert.Empty(t, store.entries)
	assert.Empty(t, inv.calls)
}

func TestAddPoints_RejectsInvalidUserID(t *testing.T) {
	ledger := NewLedger(newMockPointsStore(), &mockInvalidator{})

	assert.Error(t, ledger.AddPoints(context.Background(), "no spaces allowed", 10, model.PointsSourceMeditation, "x"))
}

func TestGetTotals_UnknownUserIsZeroed(t *testing.T) {
	ledger := NewLedger(newMockPointsStore(), &mockInvalidator{})

	totals, err := ledger.GetTotals(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Equal(t, "nobody", totals.UserID)
	assert.Equal(t, 0, totals.Total)
	assert.Equal(t, 0, totals.RecentPoints)
}

func TestGetTotals_RecentWindowExcludesOldEntries(t *testing.T) {
	store := newMockPointsStore()
	ledger := NewLedger(store, &mockInvalidator{})
	ctx := context.Background()

	// Entrée hors fenêtre injectée directement dans le journal
	store.entries = append(store.entries, model.PointsLedgerEntry{
		ID:        "old",
		UserID:    "user-1",
		Points:    100,
		CreatedAt: time.Now().Add(-RecentWindow - time.Hour),
	})
	store.AddToTotals(ctx, "user-1", 100, model.PointsSourceAchievement)

	require.NoError(t, ledger.AddPoints(ctx, "user-1", 25, model.PointsSourceMeditation, "Session completed (d)"))

	totals, err := ledger.GetTotals(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 125, totals.Total)
	assert.Equal(t, 25, totals.RecentPoints)
}

func TestGetHistory_NewestFirstAndClampedLimit(t *testing.T) {
	store := newMockPointsStore()
	ledger := NewLedger(store, &mockInvalidator{})
	ctx := context.Background()

	for i := 0; i < 60; i++ {
		require.NoError(t, ledger.AddPoints(ctx, "user-1", 1+i, model.PointsSourceMeditation, "Session completed"))
	}

	// limit <= 0 retombe sur la valeur par défaut
	entries, err := ledger.GetHistory(ctx, "user-1", 0)
	require.NoError(t, err)
	assert.Len(t, entries, 50)
	assert.Equal(t, 60, entries[0].Points, "most recent entry first")

	entries, err = ledger.GetHistory(ctx, "user-1", 5)
	require.NoError(t, err)
	assert.Len(t, entries, 5)

	// Au-delà du plafond : retour à la valeur par défaut
	entries, err = ledger.GetHistory(ctx, "user-1", 10000)
	require.NoError(t, err)
	assert.Len(t, entries, 50)
}
