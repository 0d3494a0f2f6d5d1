// Package cache fournit le cache TTL en mémoire et le suivi de ses
// performances. Le cache est local au processus : une seule instance est
// construite au démarrage et partagée par injection.
package cache

import (
	"sync"
	"time"
)

// entry associe une valeur à son échéance. expiration == 0 : pas de TTL.
type entry struct {
	value      interface{}
	expiration int64 // UnixNano
}

func (e *entry) expired() bool {
	if e.expiration == 0 {
		return false
	}
	return time.Now().UnixNano() > e.expiration
}

// Store est un cache clé/valeur avec TTL par clé.
//
// L'expiration est paresseuse : un Get sur une clé expirée se comporte comme
// si la clé n'existait pas. Un balayage périodique évacue en plus les entrées
// expirées pour borner la mémoire, mais la justesse n'en dépend jamais.
type Store struct {
	mu       sync.RWMutex
	data     map[string]*entry
	interval time.Duration
	stopChan chan struct{}
	stopOnce sync.Once
}

// DefaultSweepInterval est la période de balayage par défaut
const DefaultSweepInterval = 60 * time.Second

// NewStore construit le cache et démarre le balayage si interval > 0
func NewStore(interval time.Duration) *Store {
	s := &Store{
		data:     make(map[string]*entry),
		interval: interval,
		stopChan: make(chan struct{}),
	}
	s.startSweeper()
	return s
}

// Get retourne la valeur et true si la clé existe et n'est pas expirée.
// Une clé expirée est supprimée au passage (expiration paresseuse).
func (s *Store) Get(key string) (interface{}, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, found := s.data[key]
	if !found {
		return nil, false
	}
	if e.expired() {
		delete(s.data, key)
		return nil, false
	}
	return e.value, true
}

// Set insère ou remplace une clé. ttl <= 0 : la clé n'expire pas.
// Retourne false uniquement sur argument mal formé (clé vide).
func (s *Store) Set(key string, value interface{}, ttl time.Duration) bool {
	if key == "" {
		return false
	}

	var exp int64
	if ttl > 0 {
		exp = time.Now().Add(ttl).UnixNano()
	}

	s.mu.Lock()
	s.data[key] = &entry{value: value, expiration: exp}
	s.mu.Unlock()
	return true
}

// Del supprime des clés et retourne le nombre de clés effectivement retirées.
// Les clés absentes sont ignorées sans erreur.
func (s *Store) Del(keys ...string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for _, key := range keys {
		if _, found := s.data[key]; found {
			delete(s.data, key)
			removed++
		}
	}
	return removed
}

// Flush vide entièrement le cache
func (s *Store) Flush() {
	s.mu.Lock()
	s.data = make(map[string]*entry)
	s.mu.Unlock()
}

// Len retourne le nombre de clés présentes (expirées comprises tant que le
// balayage n'est pas passé)
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Stop arrête le balayage de fond. Sans effet si déjà arrêté.
func (s *Store) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
	})
}

func (s *Store) startSweeper() {
	if s.interval <= 0 {
		return
	}

	ticker := time.NewTicker(s.interval)

	go func() {
		for {
			select {
			case <-ticker.C:
				s.deleteExpired()
			case <-s.stopChan:
				ticker.Stop()
				return
			}
		}
	}()
}

// deleteExpired retire les entrées expirées (expiration active)
func (s *Store) deleteExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, e := range s.data {
		if e.expired() {
			delete(s.data, key)
		}
	}
}
