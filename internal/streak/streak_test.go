package streak_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MassCalmStudio/Serenity-backend/internal/streak"
)

func day(offset int) time.Time {
	base := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	return base.AddDate(0, 0, offset)
}

func days(offsets ...int) []time.Time {
	out := make([]time.Time, 0, len(offsets))
	for _, o := range offsets {
		out = append(out, day(o))
	}
	return out
}

func TestLongestRun_EmptyInput(t *testing.T) {
	assert.Equal(t, 0, streak.LongestRun(nil, 30))
	assert.Equal(t, 0, streak.LongestRun([]time.Time{}, 30))
}

func TestLongestRun_SingleDate(t *testing.T) {
	assert.Equal(t, 1, streak.LongestRun(days(0), 30))
}

func TestLongestRun_GapResetsRun(t *testing.T) {
	// D, D+1, D+2 puis trou à D+3, puis D+4..D+7 : la meilleure série est 4
	got := streak.LongestRun(days(0, 1, 2, 4, 5, 6, 7), 30)
	assert.Equal(t, 4, got)
}

func TestLongestRun_AllWindowDaysPresent(t *testing.T) {
	offsets := make([]int, 30)
	for i := range offsets {
		offsets[i] = i
	}
	assert.Equal(t, 30, streak.LongestRun(days(offsets...), 30))
}

func TestLongestRun_UnorderedInput(t *testing.T) {
	// L'ensemble d'appartenance rend l'ordre d'entrée indifférent
	got := streak.LongestRun(days(5, 0, 4, 1, 6, 2, 7), 30)
	assert.Equal(t, 4, got)
}

func TestLongestRun_TimestampsWithinSameDayCollapse(t *testing.T) {
	dates := []time.Time{
		day(0),
		day(0).Add(8 * time.Hour),
		day(1),
		day(1).Add(20 * time.Hour),
	}
	assert.Equal(t, 2, streak.LongestRun(dates, 30))
}

func TestLongestRun_WindowBoundsTheWalk(t *testing.T) {
	// La fenêtre part de la date la plus ancienne : les jours au-delà de
	// windowDays ne sont pas visités
	got := streak.LongestRun(days(0, 1, 2, 10, 11, 12, 13, 14), 5)
	assert.Equal(t, 3, got)
}

func TestCurrentRun_BrokenStreakIsZero(t *testing.T) {
	now := day(10)
	// Dernière session à D+7 : ni aujourd'hui ni hier
	assert.Equal(t, 0, streak.CurrentRun(days(5, 6, 7), 30, now))
}

func TestCurrentRun_YesterdayStillCounts(t *testing.T) {
	now := day(8)
	// La journée n'est pas encore faite mais la série d'hier tient
	assert.Equal(t, 3, streak.CurrentRun(days(5, 6, 7), 30, now))
}

func TestCurrentRun_EndingToday(t *testing.T) {
	now := day(7)
	assert.Equal(t, 3, streak.CurrentRun(days(5, 6, 7), 30, now))
}
