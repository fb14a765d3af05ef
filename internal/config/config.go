package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env             string        // dev, prod
	APIBaseURL      string        // base URL of the hospital API
	HTTPTimeout     time.Duration // per-request timeout for gateway calls
	LogLevel        string        // debug, info, warn, error
	StubHTTPPort    string        // port the stub API server listens on
	JWTSecret       string        // HS256 signing secret for the stub server
	RateLimitRPS    float64       // stub server per-client request rate
	ShutdownTimeout time.Duration // graceful shutdown timeout
	SeedDoctors     int           // demo doctors seeded into the stub server
	SeedPatients    int           // demo patients seeded into the stub server
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Env:             getEnv("APP_ENV", "dev"),
		APIBaseURL:      getEnv("API_BASE_URL", "http://localhost:8080"),
		HTTPTimeout:     getDuration("HTTP_TIMEOUT", 10*time.Second),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		StubHTTPPort:    getEnv("STUB_HTTP_PORT", "8080"),
		JWTSecret:       getEnv("JWT_SECRET", "hospital-desk-dev-secret"),
		RateLimitRPS:    getFloat("RATE_LIMIT_RPS", 50),
		ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		SeedDoctors:     getInt("SEED_DOCTORS", 12),
		SeedPatients:    getInt("SEED_PATIENTS", 60),
	}

	u, err := url.Parse(cfg.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return Config{}, fmt.Errorf("invalid API_BASE_URL %q", cfg.APIBaseURL)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return time.Duration(n) * time.Second
		}
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		fmt.Fprintf(os.Stderr, "invalid duration for %s=%q, using default %s\n", key, v, def)
	}
	return def
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}
