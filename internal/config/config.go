package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port                   string
	Env                    string
	FrontendURL            string
	LoginPath              string
	LogLevel               string
	LogPretty              bool
	RateLimitRPS           float64
	SupabaseURL            string
	SupabaseAnonKey        string
	SupabaseServiceRoleKey string
	SupabaseJWTSecret      string
	SupabaseDBURL          string
	RedisURL               string
	VerifyCacheTTL         time.Duration
	AIAPIKey               string
	AIStatusURL            string
}

func Load() Config {
	return Config{
		Port:                   getEnv("PORT", "8080"),
		Env:                    getEnv("APP_ENV", "development"),
		FrontendURL:            getEnv("FRONTEND_URL", "http://localhost:3000"),
		LoginPath:              getEnv("LOGIN_PATH", "/login"),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
		LogPretty:              getBool("LOG_PRETTY", false),
		RateLimitRPS:           getFloat("RATE_LIMIT_RPS", 10),
		SupabaseURL:            strings.TrimSuffix(os.Getenv("SUPABASE_URL"), "/"),
		SupabaseAnonKey:        os.Getenv("SUPABASE_ANON_KEY"),
		SupabaseServiceRoleKey: os.Getenv("SUPABASE_SERVICE_ROLE_KEY"),
		SupabaseJWTSecret:      os.Getenv("SUPABASE_JWT_SECRET"),
		SupabaseDBURL:          os.Getenv("SUPABASE_DB_URL"),
		RedisURL:               os.Getenv("REDIS_URL"),
		VerifyCacheTTL:         getDuration("VERIFY_CACHE_TTL", 30*time.Second),
		AIAPIKey:               os.Getenv("AI_API_KEY"),
		AIStatusURL:            os.Getenv("AI_STATUS_URL"),
	}
}

// Production reports whether cookies must carry the Secure attribute.
func (c Config) Production() bool {
	return strings.EqualFold(c.Env, "production")
}

// AuthConfigured reports whether the hosted auth API can be reached.
func (c Config) AuthConfigured() bool {
	return c.SupabaseURL != "" && c.SupabaseAnonKey != ""
}

// APIKey returns the key sent to the auth API, preferring the anon key.
func (c Config) APIKey() string {
	if c.SupabaseAnonKey != "" {
		return c.SupabaseAnonKey
	}
	return c.SupabaseServiceRoleKey
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}
