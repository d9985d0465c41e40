package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Feature and market source selectors
const (
	SourcePostgres = "postgres"
	SourceCSV      = "csv"
	SourceStatic   = "static"
	SourceHTTP     = "http"
)

// Config holds all configuration for the application
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Database
	Database DatabaseConfig

	// Redis
	Redis RedisConfig

	// Engine inputs
	Engine EngineConfig

	// Market phase provider
	Market MarketConfig

	// API throttling
	API APIConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	URL string

	// Connection Pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// EngineConfig selects where the feature table and strategy file come from
type EngineConfig struct {
	FeatureSource  string // postgres, csv
	FeatureCSVPath string
	StrategyPath   string // empty = built-in defaults
	ExcludeFunds   []string
	MinFundScore   float64
}

// MarketConfig selects the market-phase provider
type MarketConfig struct {
	Source      string // static, postgres, http
	StaticPhase string // OVERHEATED, NEUTRAL, UNDERVALUED
	DataURL     string
	IndexSymbol string
}

// APIConfig holds request throttling settings
type APIConfig struct {
	RateLimit float64 // requests per second
	RateBurst int
}

// Override adjusts a loaded config before validation (CLI flags)
type Override func(*Config)

// Load reads configuration from environment variables
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load(overrides ...Override) (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port: getEnv("PORT", "8089"),
		Env:  getEnv("ENV", "development"),

		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 2),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
		},

		Engine: EngineConfig{
			FeatureSource:  strings.ToLower(getEnv("FEATURE_SOURCE", SourcePostgres)),
			FeatureCSVPath: getEnv("FEATURE_CSV_PATH", ""),
			StrategyPath:   getEnv("STRATEGY_PATH", ""),
			ExcludeFunds:   getEnvAsList("EXCLUDE_FUNDS"),
			MinFundScore:   getEnvAsFloat("MIN_FUND_SCORE", 0),
		},

		Market: MarketConfig{
			Source:      strings.ToLower(getEnv("MARKET_SOURCE", SourceStatic)),
			StaticPhase: strings.ToUpper(getEnv("MARKET_PHASE", "NEUTRAL")),
			DataURL:     getEnv("MARKET_DATA_URL", ""),
			IndexSymbol: getEnv("MARKET_INDEX_SYMBOL", "NIFTY50"),
		},

		API: APIConfig{
			RateLimit: getEnvAsFloat("API_RATE_LIMIT", 20),
			RateBurst: getEnvAsInt("API_RATE_BURST", 40),
		},

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	for _, override := range overrides {
		override(cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// NeedsDatabase reports whether any configured source reads from Postgres
func (c *Config) NeedsDatabase() bool {
	return c.Engine.FeatureSource == SourcePostgres || c.Market.Source == SourcePostgres
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	switch c.Engine.FeatureSource {
	case SourcePostgres:
	case SourceCSV:
		if c.Engine.FeatureCSVPath == "" {
			return fmt.Errorf("FEATURE_CSV_PATH is required when FEATURE_SOURCE=csv")
		}
	default:
		return fmt.Errorf("FEATURE_SOURCE must be one of: postgres, csv")
	}

	switch c.Market.Source {
	case SourceStatic, SourcePostgres:
	case SourceHTTP:
		if c.Market.DataURL == "" {
			return fmt.Errorf("MARKET_DATA_URL is required when MARKET_SOURCE=http")
		}
	default:
		return fmt.Errorf("MARKET_SOURCE must be one of: static, postgres, http")
	}

	// Database URL is required only for Postgres-backed sources
	if c.NeedsDatabase() && c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.Engine.MinFundScore < 0 || c.Engine.MinFundScore > 100 {
		return fmt.Errorf("MIN_FUND_SCORE must be within [0, 100]")
	}

	if c.API.RateLimit <= 0 || c.API.RateBurst <= 0 {
		return fmt.Errorf("API_RATE_LIMIT and API_RATE_BURST must be > 0")
	}

	return nil
}

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{".env"}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

// getEnvAsList splits a comma-separated value, dropping empty items
func getEnvAsList(key string) []string {
	var out []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
