// Package leaderboard construit les classements et les rangs individuels
// depuis le journal de points, mémorisés dans le cache TTL et observés par le
// traqueur de statistiques.
package leaderboard

import (
	"context"
	"fmt"
	"time"

	"github.com/MassCalmStudio/Serenity-backend/internal/cache"
	model "github.com/MassCalmStudio/Serenity-backend/internal/models"
	"github.com/MassCalmStudio/Serenity-backend/internal/utils"
)

// Types de cache rapportés au traqueur de statistiques
const (
	cacheTypeLeaderboard = "leaderboard"
	cacheTypeUserRank    = "user_rank"
	cacheTypeProgress    = "weekly_progress"
)

// DefaultTTL est la durée de vie des vues mémorisées
const DefaultTTL = 5 * time.Minute

// DefaultLimit est la taille de classement servie sans paramètre explicite
const DefaultLimit = 10

// MaxLimit borne la taille demandée
const MaxLimit = 100

// Ranker calcule et mémorise les classements. Après chaque mutation du
// journal, InvalidateUserCache purge les vues concernées.
type Ranker struct {
	store Store
	cache *cache.Store
	stats *cache.StatsTracker
	ttl   time.Duration
}

func NewRanker(store Store, c *cache.Store, stats *cache.StatsTracker, ttl time.Duration) *Ranker {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Ranker{store: store, cache: c, stats: stats, ttl: ttl}
}

func leaderboardKey(period, category string, limit int) string {
	return fmt.Sprintf("leaderboard:%s:%s:%d", period, category, limit)
}

func rankKey(userID, period, category string) string {
	return fmt.Sprintf("rank:%s:%s:%s", userID, period, category)
}

func progressKey(userID string) string {
	return fmt.Sprintf("weekly-progress:%s", userID)
}

// periodStart retourne le début de la période, zéro pour all-time
func periodStart(period string, now time.Time) time.Time {
	switch period {
	case model.PeriodDaily:
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	case model.PeriodWeekly:
		return now.AddDate(0, 0, -7)
	case model.PeriodMonthly:
		return now.AddDate(0, 0, -30)
	default:
		return time.Time{}
	}
}

// weekStart retourne le lundi minuit de la semaine courante
func weekStart(now time.Time) time.Time {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekday := int(day.Weekday())
	if weekday == 0 {
		weekday = 7 // dimanche
	}
	return day.AddDate(0, 0, 1-weekday)
}

// GetLeaderboard retourne le classement (period, category, limit), mémoisé.
// Rang dense 1..N, points décroissants, user_id croissant à égalité.
func (r *Ranker) GetLeaderboard(ctx context.Context, period, category string, limit int) ([]model.LeaderboardEntry, error) {
	if !model.ValidPeriod(period) {
		return nil, fmt.Errorf("unknown leaderboard period: %q", period)
	}
	if !model.ValidCategory(category) {
		return nil, fmt.Errorf("unknown leaderboard category: %q", category)
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	key := leaderboardKey(period, category, limit)
	start := time.Now()

	if v, found := r.cache.Get(key); found {
		r.stats.TrackHit(cacheTypeLeaderboard, category, time.Since(start))
		return v.([]model.LeaderboardEntry), nil
	}
	r.stats.TrackMiss(cacheTypeLeaderboard, category, time.Since(start))

	entries, err := r.store.Top(ctx, category, periodStart(period, time.Now()), limit)
	if err != nil {
		r.stats.TrackError(cacheTypeLeaderboard, category)
		return nil, err
	}
	if entries == nil {
		entries = []model.LeaderboardEntry{}
	}

	setStart := time.Now()
	r.cache.Set(key, entries, r.ttl)
	r.stats.TrackSet(cacheTypeLeaderboard, category, time.Since(setStart), estimateBytes(entries))

	return entries, nil
}

// GetUserRank retourne le rang d'un utilisateur dans (period, category),
// mémoisé. rank = utilisateurs strictement au-dessus + 1.
func (r *Ranker) GetUserRank(ctx context.Context, userID, period, category string) (model.UserRank, error) {
	if err := utils.ValidateUserID(userID); err != nil {
		return model.UserRank{}, err
	}
	if !model.ValidPeriod(period) {
		return model.UserRank{}, fmt.Errorf("unknown leaderboard period: %q", period)
	}
	if !model.ValidCategory(category) {
		return model.UserRank{}, fmt.Errorf("unknown leaderboard category: %q", category)
	}

	key := rankKey(userID, period, category)
	start := time.Now()

	if v, found := r.cache.Get(key); found {
		r.stats.TrackHit(cacheTypeUserRank, category, time.Since(start))
		return v.(model.UserRank), nil
	}
	r.stats.TrackMiss(cacheTypeUserRank, category, time.Since(start))

	rank, pts, totalUsers, err := r.store.UserRank(ctx, userID, category, periodStart(period, time.Now()))
	if err != nil {
		r.stats.TrackError(cacheTypeUserRank, category)
		return model.UserRank{}, err
	}

	result := model.UserRank{UserID: userID, Rank: rank, Points: pts, TotalUsers: totalUsers}

	setStart := time.Now()
	r.cache.Set(key, result, r.ttl)
	r.stats.TrackSet(cacheTypeUserRank, category, time.Since(setStart), 48)

	return result, nil
}

// GetTopAchievers est le raccourci all-time / total
func (r *Ranker) GetTopAchievers(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	return r.GetLeaderboard(ctx, model.PeriodAllTime, model.CategoryTotal, limit)
}

// GetWeeklyProgress retourne le résumé de la semaine courante, mémoisé
func (r *Ranker) GetWeeklyProgress(ctx context.Context, userID string) (model.WeeklyProgress, error) {
	if err := utils.ValidateUserID(userID); err != nil {
		return model.WeeklyProgress{}, err
	}

	key := progressKey(userID)
	start := time.Now()

	if v, found := r.cache.Get(key); found {
		r.stats.TrackHit(cacheTypeProgress, model.CategoryTotal, time.Since(start))
		return v.(model.WeeklyProgress), nil
	}
	r.stats.TrackMiss(cacheTypeProgress, model.CategoryTotal, time.Since(start))

	wp, err := r.store.WeeklySummary(ctx, userID, weekStart(time.Now()))
	if err != nil {
		r.stats.TrackError(cacheTypeProgress, model.CategoryTotal)
		return model.WeeklyProgress{}, err
	}

	setStart := time.Now()
	r.cache.Set(key, wp, r.ttl)
	r.stats.TrackSet(cacheTypeProgress, model.CategoryTotal, time.Since(setStart), 32)

	return wp, nil
}

var allPeriods = []string{model.PeriodDaily, model.PeriodWeekly, model.PeriodMonthly, model.PeriodAllTime}
var allCategories = []string{model.CategoryTotal, model.CategoryMeditation, model.CategoryStreak, model.CategorySocial}

// InvalidateUserCache purge les vues mémorisées touchées par un gain de
// points de cet utilisateur : ses clés de rang et de progression, plus les
// classements agrégés par défaut — on ne sait pas à moindre coût dans quels
// classements l'utilisateur apparaît, donc on les purge en bloc et la
// prochaine lecture recalcule. Invalidation grossière assumée.
func (r *Ranker) InvalidateUserCache(userID string) {
	start := time.Now()

	keys := make([]string, 0, len(allPeriods)*len(allCategories)*2+1)
	for _, period := range allPeriods {
		for _, category := range allCategories {
			keys = append(keys, rankKey(userID, period, category))
			keys = append(keys, leaderboardKey(period, category, DefaultLimit))
		}
	}
	keys = append(keys, progressKey(userID))

	removed := r.cache.Del(keys...)
	r.stats.TrackInvalidation(cacheTypeLeaderboard, model.CategoryTotal, time.Since(start), int64(removed))
}

// estimateBytes approxime la taille mémorisée d'un classement
func estimateBytes(entries []model.LeaderboardEntry) int64 {
	var n int64
	for _, e := range entries {
		n += int64(48 + len(e.UserID) + len(e.UserName))
	}
	return n
}
