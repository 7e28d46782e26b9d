package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the Pulseboard service.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Log       LogConfig
	Metrics   MetricsConfig
	Report    ReportConfig
}

type ServerConfig struct {
	Addr            string
	Env             string
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	MaxConns int
	MinConns int
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type AuthConfig struct {
	Enabled   bool
	APIKey    string
	SkipPaths []string
}

type RateLimitConfig struct {
	Enabled     bool
	RPS         float64
	Burst       int
	IngestRPS   float64
	IngestBurst int
}

type LogConfig struct {
	Level  string
	Format string
}

// MetricsConfig configures Prometheus metrics exposure.
type MetricsConfig struct {
	Enabled bool
	Path    string
}

// ReportConfig holds report-layer settings.
type ReportConfig struct {
	// SummaryCacheTTL bounds how stale a cached weekly summary may get.
	SummaryCacheTTL time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Addr:            getEnv("PULSEBOARD_HTTP_ADDR", ":8080"),
			Env:             getEnv("PULSEBOARD_ENV", "development"),
			ShutdownTimeout: getDurationEnv("PULSEBOARD_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			Host:     getEnv("PULSEBOARD_DB_HOST", "localhost"),
			Port:     getIntEnv("PULSEBOARD_DB_PORT", 5432),
			User:     getEnv("PULSEBOARD_DB_USER", "pulseboard"),
			Password: getEnv("PULSEBOARD_DB_PASSWORD", "pulseboard_secret"),
			DBName:   getEnv("PULSEBOARD_DB_NAME", "pulseboard"),
			SSLMode:  getEnv("PULSEBOARD_DB_SSLMODE", "disable"),
			MaxConns: getIntEnv("PULSEBOARD_DB_MAX_CONNS", 10),
			MinConns: getIntEnv("PULSEBOARD_DB_MIN_CONNS", 2),
		},
		Redis: RedisConfig{
			Addr:     getEnv("PULSEBOARD_REDIS_ADDR", "localhost:6379"),
			Password: getEnv("PULSEBOARD_REDIS_PASSWORD", ""),
			DB:       getIntEnv("PULSEBOARD_REDIS_DB", 0),
		},
		Auth: AuthConfig{
			Enabled:   getBoolEnv("PULSEBOARD_AUTH_ENABLED", false),
			APIKey:    getEnv("PULSEBOARD_API_KEY", ""),
			SkipPaths: getSliceEnv("PULSEBOARD_AUTH_SKIP_PATHS", []string{"/health", "/metrics"}),
		},
		RateLimit: RateLimitConfig{
			Enabled:     getBoolEnv("PULSEBOARD_RATE_LIMIT_ENABLED", true),
			RPS:         getFloatEnv("PULSEBOARD_RATE_LIMIT_RPS", 50),
			Burst:       getIntEnv("PULSEBOARD_RATE_LIMIT_BURST", 20),
			IngestRPS:   getFloatEnv("PULSEBOARD_RATE_LIMIT_INGEST_RPS", 5),
			IngestBurst: getIntEnv("PULSEBOARD_RATE_LIMIT_INGEST_BURST", 5),
		},
		Log: LogConfig{
			Level:  getEnv("PULSEBOARD_LOG_LEVEL", "info"),
			Format: getEnv("PULSEBOARD_LOG_FORMAT", "json"),
		},
		Metrics: MetricsConfig{
			Enabled: getBoolEnv("PULSEBOARD_METRICS_ENABLED", true),
			Path:    getEnv("PULSEBOARD_METRICS_PATH", "/metrics"),
		},
		Report: ReportConfig{
			SummaryCacheTTL: getDurationEnv("PULSEBOARD_SUMMARY_CACHE_TTL", 5*time.Minute),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.Auth.Enabled && c.Auth.APIKey == "" {
		return fmt.Errorf("PULSEBOARD_API_KEY is required when auth is enabled")
	}
	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// Helper functions for reading environment variables

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getIntEnv(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getFloatEnv(key string, def float64) float64 {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getBoolEnv(key string, def bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getDurationEnv(key string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getSliceEnv(key string, def []string) []string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				result = append(result, p)
			}
		}
		return result
	}
	return def
}
