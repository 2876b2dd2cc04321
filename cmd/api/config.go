package main

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type config struct {
	Addr           string
	DatabaseDSN    string
	BaseURL        string
	UserAgent      string
	OutboundRPS    int
	FetchTimeout   time.Duration
	Concurrency    int
	LogLevel       string
	LogColor       bool
	RateLimitRPS   float64
	RateLimitBurst int
	AllowedOrigins []string
	EnableHSTS     bool
}

func loadEnvFiles() {
	// Do not override environment provided by the runtime (e.g. Docker).
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

func loadConfig() config {
	return config{
		Addr:           getEnv("APP_ADDR", ":8080"),
		DatabaseDSN:    os.Getenv("DB_DSN"),
		BaseURL:        getEnv("OPENLIBRARY_BASE_URL", "https://openlibrary.org"),
		UserAgent:      getEnv("OPENLIBRARY_USER_AGENT", "booktitles/1.0"),
		OutboundRPS:    getEnvInt("OPENLIBRARY_RPS", 5),
		FetchTimeout:   getEnvDuration("OPENLIBRARY_TIMEOUT", 15*time.Second),
		Concurrency:    getEnvInt("LOOKUP_CONCURRENCY", 4),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogColor:       os.Getenv("LOG_COLOR") == "true",
		RateLimitRPS:   getEnvFloat("RATE_LIMIT_RPS", 10),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 20),
		AllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		EnableHSTS:     os.Getenv("ENABLE_HSTS") == "true",
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return v
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil && v > 0 {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func redactDSN(dsn string) string {
	const marker = "://"
	start := strings.Index(dsn, marker)
	if start < 0 {
		return dsn
	}
	start += len(marker)
	end := strings.Index(dsn[start:], "@")
	if end < 0 {
		return dsn
	}
	return dsn[:start] + "***" + dsn[start+end:]
}
