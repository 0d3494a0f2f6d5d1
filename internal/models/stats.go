package model

import "time"

// CategoryStats contient les compteurs d'un bucket (cacheType, category)
type CategoryStats struct {
	Hits          int64   `json:"hits"`
	Misses        int64   `json:"misses"`
	Sets          int64   `json:"sets"`
	Invalidations int64   `json:"invalidations"`
	Errors        int64   `json:"errors"`
	AvgLatencyMs  float64 `json:"avgLatency"`
	BytesStored   int64   `json:"bytesStored"`
	KeyCount      int64   `json:"keyCount"`
}

// CacheStatSnapshot est un instantané persisté des compteurs d'un cacheType.
// Jamais modifié après écriture.
type CacheStatSnapshot struct {
	ID              string                   `json:"id"`
	CacheType       string                   `json:"cacheType"`
	StatsByCategory map[string]CategoryStats `json:"statsByCategory"`
	CreatedAt       time.Time                `json:"createdAt"`
}
