package config

import (
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/iamasit07/hotseat-connect4/internal/domain"
	"github.com/iamasit07/hotseat-connect4/internal/logger"
)

type Config struct {
	Port                 string
	Environment          string
	LogLevel             string
	AllowedOrigins       []string
	FrontendURL          string
	DatabaseURL          string
	DBMaxOpenConns       int
	DBMaxIdleConns       int
	DBConnMaxLifetimeMin int
	RedisURL             string
	RedisPassword        string
	JWTSecret            string
	TableTokenTTL        time.Duration
	BoardWidth           int
	BoardHeight          int
	MaxBoardDimension    int
	FinishedTableTTL     time.Duration
	IdleTableTTL         time.Duration
	SnapshotTTL          time.Duration
	HistoryRetentionDays int
	CleanupInterval      time.Duration
	MetricsNamespace     string
}

var AppConfig *Config

func LoadConfig() *Config {
	port := GetEnv("PORT", "8080")
	environment := GetEnv("ENVIRONMENT", "development")

	// Frontend & CORS
	frontendURL := GetEnv("FRONTEND_URL", "http://localhost:5173")
	allowedOrigins := []string{frontendURL}
	if extras := GetEnv("ALLOWED_ORIGINS", ""); extras != "" {
		for _, origin := range strings.Split(extras, ",") {
			if trimmed := strings.TrimSpace(origin); trimmed != "" {
				allowedOrigins = append(allowedOrigins, trimmed)
			}
		}
	}

	// Database: an empty URL runs the server without a history archive
	dbURL := GetEnv("DATABASE_URL", GetEnv("DATABASE_URI", ""))
	if dbURL != "" {
		if u, err := url.Parse(dbURL); err == nil && strings.HasPrefix(u.Scheme, "postgres") {
			q := u.Query()
			if q.Get("sslmode") == "" && environment != "production" {
				q.Set("sslmode", "disable")
				u.RawQuery = q.Encode()
				dbURL = u.String()
			}
		}
	}

	AppConfig = &Config{
		Port:                 port,
		Environment:          environment,
		LogLevel:             GetEnv("LOG_LEVEL", "info"),
		AllowedOrigins:       allowedOrigins,
		FrontendURL:          frontendURL,
		DatabaseURL:          dbURL,
		DBMaxOpenConns:       GetEnvAsInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:       GetEnvAsInt("DB_MAX_IDLE_CONNS", 25),
		DBConnMaxLifetimeMin: GetEnvAsInt("DB_CONN_MAX_LIFETIME_MINUTES", 5),
		RedisURL:             GetEnv("REDIS_URL", "localhost:6379"),
		RedisPassword:        GetEnv("REDIS_PASSWORD", ""),
		JWTSecret:            GetEnv("JWT_SECRET", "your-secret-key-change-this-in-production"),
		TableTokenTTL:        time.Duration(GetEnvAsInt("TABLE_TOKEN_TTL_HOURS", 24)) * time.Hour,
		BoardWidth:           GetEnvAsInt("BOARD_WIDTH", domain.DefaultColumns),
		BoardHeight:          GetEnvAsInt("BOARD_HEIGHT", domain.DefaultRows),
		MaxBoardDimension:    GetEnvAsInt("MAX_BOARD_DIMENSION", 32),
		FinishedTableTTL:     time.Duration(GetEnvAsInt("FINISHED_TABLE_TTL_MINUTES", 60)) * time.Minute,
		IdleTableTTL:         time.Duration(GetEnvAsInt("IDLE_TABLE_TTL_HOURS", 24)) * time.Hour,
		SnapshotTTL:          time.Duration(GetEnvAsInt("SNAPSHOT_TTL_MINUTES", 120)) * time.Minute,
		HistoryRetentionDays: GetEnvAsInt("HISTORY_RETENTION_DAYS", 90),
		CleanupInterval:      time.Duration(GetEnvAsInt("CLEANUP_INTERVAL_MINUTES", 60)) * time.Minute,
		MetricsNamespace:     GetEnv("METRICS_NAMESPACE", "connect4"),
	}

	return AppConfig
}

// IsProduction is used for cookie flags and the log encoder.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		logger.Log.Warnf("Invalid integer value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
