package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/MassCalmStudio/Serenity-backend/internal/logger"
)

type Config struct {
	Port       string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	CacheSweepInterval   time.Duration // balayage des clés expirées
	LeaderboardCacheTTL  time.Duration // TTL des vues de classement mémorisées
	StatsPersistInterval time.Duration // persistance périodique des stats cache
	StreakWindowDays     int           // fenêtre glissante du calcul de streak
}

// LoadConfig charge la configuration depuis l'environnement (.env si présent)
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, using environment variables")
	}

	cfg := &Config{
		Port:       getenv("PORT", "8080"),
		DBHost:     getenv("DB_HOST", "localhost"),
		DBPort:     getenv("DB_PORT", "5432"),
		DBUser:     getenv("DB_USER", "serenity"),
		DBPassword: getenv("DB_PASSWORD", "serenity"),
		DBName:     getenv("DB_NAME", "serenity"),

		CacheSweepInterval:   getenvDuration("CACHE_SWEEP_INTERVAL", 60*time.Second),
		LeaderboardCacheTTL:  getenvDuration("LEADERBOARD_CACHE_TTL", 5*time.Minute),
		StatsPersistInterval: getenvDuration("STATS_PERSIST_INTERVAL", 10*time.Minute),
		StreakWindowDays:     getenvInt("STREAK_WINDOW_DAYS", 30),
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
