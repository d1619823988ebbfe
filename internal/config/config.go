package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Port           string
	AllowedOrigins []string
	LogLevel       string

	// SourcePath is the CSV export every render reads
	SourcePath string

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration

	LowProductivityPct float64
	HighBreakPct       float64

	SkipAuth           bool
	OIDCIssuer         string
	VerifyJWTSignature bool
	Env                string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:5173"), ","),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		SourcePath:     getEnv("SOURCE_PATH", "data/agent_time_on_status.csv"),
		OIDCIssuer:     getEnv("OIDC_ISSUER", ""),
		Env:            getEnv("ENV", ""),
	}

	readTimeout, err := strconv.Atoi(getEnv("HTTP_READ_TIMEOUT", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_READ_TIMEOUT: %w", err)
	}
	config.HTTPReadTimeout = time.Duration(readTimeout) * time.Second

	writeTimeout, err := strconv.Atoi(getEnv("HTTP_WRITE_TIMEOUT", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_WRITE_TIMEOUT: %w", err)
	}
	config.HTTPWriteTimeout = time.Duration(writeTimeout) * time.Second

	config.LowProductivityPct, err = strconv.ParseFloat(getEnv("LOW_PRODUCTIVITY_PCT", "50"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid LOW_PRODUCTIVITY_PCT: %w", err)
	}

	config.HighBreakPct, err = strconv.ParseFloat(getEnv("HIGH_BREAK_PCT", "15"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid HIGH_BREAK_PCT: %w", err)
	}

	config.SkipAuth, err = strconv.ParseBool(getEnv("SKIP_AUTH", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid SKIP_AUTH: %w", err)
	}

	config.VerifyJWTSignature, err = strconv.ParseBool(getEnv("VERIFY_JWT_SIGNATURE", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid VERIFY_JWT_SIGNATURE: %w", err)
	}
	// Outside development, signatures are always verified
	if config.Env != "" && config.Env != "development" {
		config.VerifyJWTSignature = true
	}

	// Trim spaces from allowed origins
	for i, origin := range config.AllowedOrigins {
		config.AllowedOrigins[i] = strings.TrimSpace(origin)
	}

	return config, nil
}

// getEnv gets an environment variable with a fallback default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
