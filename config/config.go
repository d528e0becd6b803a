package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Redis     RedisConfig
	Dedup     DedupConfig
	Guardrail GuardrailConfig
	Strikes   StrikesConfig
	Query     QueryConfig
	Digest    DigestConfig
}

type ServerConfig struct {
	Port   string
	APIKey string // shared secret for the query endpoint; empty = open
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type DedupConfig struct {
	WindowMinutes int
	GridKm        float64
	TTLDays       int
}

type GuardrailConfig struct {
	CacheTTL     time.Duration
	FetchTimeout time.Duration
}

type StrikesConfig struct {
	Limit         int
	Window        time.Duration
	BlockDuration time.Duration
}

type QueryConfig struct {
	MaxSinceDays   int
	MaxLimit       int
	RequestTimeout time.Duration
}

type DigestConfig struct {
	OpenAIKey      string
	MinReports     int
	LookbackWindow time.Duration
}

func Load() *Config {
	// .env is optional outside local dev
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port:   getEnv("PORT", "8080"),
			APIKey: getEnv("FOOTPRINTS_API_KEY", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Dedup: DedupConfig{
			WindowMinutes: getEnvAsInt("DEDUP_WINDOW_MINUTES", 60),
			GridKm:        getEnvAsFloat("DEDUP_GRID_KM", 1),
			TTLDays:       getEnvAsInt("DEDUP_TTL_DAYS", 90),
		},
		Guardrail: GuardrailConfig{
			CacheTTL:     getEnvAsDuration("GUARDRAIL_CACHE_TTL", 10*time.Minute),
			FetchTimeout: getEnvAsDuration("GUARDRAIL_FETCH_TIMEOUT", 5*time.Second),
		},
		Strikes: StrikesConfig{
			Limit:         getEnvAsInt("STRIKE_LIMIT", 3),
			Window:        getEnvAsDuration("STRIKE_WINDOW", 30*time.Minute),
			BlockDuration: getEnvAsDuration("STRIKE_BLOCK_DURATION", 2*time.Hour),
		},
		Query: QueryConfig{
			MaxSinceDays:   getEnvAsInt("QUERY_MAX_SINCE_DAYS", 90),
			MaxLimit:       getEnvAsInt("QUERY_MAX_LIMIT", 10000),
			RequestTimeout: getEnvAsDuration("QUERY_REQUEST_TIMEOUT", 60*time.Second),
		},
		Digest: DigestConfig{
			OpenAIKey:      getEnv("OPENAI_API_KEY", ""),
			MinReports:     getEnvAsInt("DIGEST_MIN_REPORTS", 5),
			LookbackWindow: getEnvAsDuration("DIGEST_LOOKBACK", 6*time.Hour),
		},
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	if v, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
