package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SetAndGet(t *testing.T) {
	s := NewStore(0)
	defer s.Stop()

	require.True(t, s.Set("k", "v", time.Minute))

	v, found := s.Get("k")
	require.True(t, found)
	assert.Equal(t, "v", v)
}

func TestStore_GetMissingKey(t *testing.T) {
	s := NewStore(0)
	defer s.Stop()

	_, found := s.Get("absent")
	assert.False(t, found)
}

func TestStore_TTLExpiry(t *testing.T) {
	s := NewStore(0)
	defer s.Stop()

	s.Set("k", 42, 30*time.Millisecond)

	v, found := s.Get("k")
	require.True(t, found)
	assert.Equal(t, 42, v)

	time.Sleep(50 * time.Millisecond)

	// Clé expirée : se comporte comme si elle n'existait pas, sans balayage
	_, found = s.Get("k")
	assert.False(t, found)
	assert.Equal(t, 0, s.Len())
}

func TestStore_NoTTLNeverExpires(t *testing.T) {
	s := NewStore(0)
	defer s.Stop()

	s.Set("k", "v", 0)
	time.Sleep(20 * time.Millisecond)

	_, found := s.Get("k")
	assert.True(t, found)
}

func TestStore_DelReturnsRemovedCount(t *testing.T) {
	s := NewStore(0)
	defer s.Stop()

	s.Set("a", 1, time.Minute)
	s.Set("b", 2, time.Minute)

	assert.Equal(t, 2, s.Del("a", "b", "absent"))
	assert.Equal(t, 0, s.Del("a"))
}

func TestStore_Flush(t *testing.T) {
	s := NewStore(0)
	defer s.Stop()

	s.Set("a", 1, time.Minute)
	s.Set("b", 2, time.Minute)
	s.Flush()

	assert.Equal(t, 0, s.Len())
	_, found := s.Get("a")
	assert.False(t, found)
}

func TestStore_RejectsEmptyKey(t *testing.T) {
	s := NewStore(0)
	defer s.Stop()

	assert.False(t, s.Set("", "v", time.Minute))
}

func TestStore_SweeperEvictsExpiredEntries(t *testing.T) {
	s := NewStore(20 * time.Millisecond)
	defer s.Stop()

	s.Set("short", 1, 10*time.Millisecond)
	s.Set("long", 2, time.Minute)

	time.Sleep(60 * time.Millisecond)

	// Le balayage a retiré la clé expirée sans passer par Get
	assert.Equal(t, 1, s.Len())
	_, found := s.Get("long")
	assert.True(t, found)
}

func TestStore_StopIsIdempotent(t *testing.T) {
	s := NewStore(10 * time.Millisecond)
	s.Stop()
	s.Stop()
}
