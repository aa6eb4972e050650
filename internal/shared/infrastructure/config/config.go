package config

import (
	"os"
	"strconv"
	"time"

	"github.com/lendly/lendly-backend/internal/shared/infrastructure/database"
)

// Config holds all configuration for the application
type Config struct {
	Server        ServerConfig
	Database      database.PostgresConfig
	Redis         database.RedisConfig
	JWT           JWTConfig
	Firebase      FirebaseConfig
	Push          PushConfig
	RunMigrations bool
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           string
	AllowedOrigins string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret string
	Expiry time.Duration
}

// FirebaseConfig holds Firebase Cloud Messaging credentials
type FirebaseConfig struct {
	ProjectID       string
	CredentialsJSON string
}

// PushConfig holds push delivery worker configuration
type PushConfig struct {
	Concurrency int
	MaxRetry    int
}

// Load reads configuration from environment variables
func Load() Config {
	return Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),
		},
		Database: database.PostgresConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "lendly"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: database.RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       0,
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "default-dev-secret"),
			Expiry: parseDuration(getEnv("JWT_EXPIRATION", "24h"), 24*time.Hour),
		},
		Firebase: FirebaseConfig{
			ProjectID:       getEnv("FIREBASE_PROJECT_ID", ""),
			CredentialsJSON: getEnv("FIREBASE_CREDENTIALS_JSON", ""),
		},
		Push: PushConfig{
			Concurrency: parseInt(getEnv("PUSH_CONCURRENCY", "10"), 10),
			MaxRetry:    parseInt(getEnv("PUSH_MAX_RETRY", "3"), 3),
		},
		RunMigrations: getEnv("RUN_MIGRATIONS", "false") == "true",
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseDuration parses a duration string or returns a default value
func parseDuration(value string, defaultValue time.Duration) time.Duration {
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}
	return defaultValue
}

// parseInt parses an integer string or returns a default value
func parseInt(value string, defaultValue int) int {
	if n, err := strconv.Atoi(value); err == nil && n > 0 {
		return n
	}
	return defaultValue
}
