package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"ibTradeDesk/internal/adapters/logger" // Import the logger package for LogLevel
)

// Ledger backend selectors.
const (
	LedgerBackendSQLite = "sqlite"
	LedgerBackendCSV    = "csv"
)

// Config holds all application configuration.
type Config struct {
	// Brokerage gateway
	GatewayBaseURL string
	GatewayTimeout time.Duration

	// Ledger
	LedgerBackend string // "sqlite" or "csv"
	DBPath        string
	CSVPath       string

	// Historical-data defaults (used when the operator omits a flag)
	DefaultDurationMagnitude int
	DefaultDurationUnit      string
	DefaultBarSize           string
	DefaultWhatToShow        string

	// Logging
	LogLevel logger.LogLevel
}

// LoadConfig loads configuration from environment variables (.env file).
func LoadConfig() (*Config, error) {
	// Load .env file, but don't fail if it doesn't exist (allow pure env vars)
	_ = godotenv.Load()

	cfg := &Config{}
	var errs []string // Collect validation errors

	// Brokerage gateway
	cfg.GatewayBaseURL = getEnv("GATEWAY_BASE_URL", "https://localhost:5000/v1/api")
	if cfg.GatewayBaseURL == "" {
		errs = append(errs, "GATEWAY_BASE_URL must be set")
	}

	timeoutSeconds := getEnvAsInt("GATEWAY_TIMEOUT_SECONDS", 0)
	if timeoutSeconds < 0 {
		errs = append(errs, "GATEWAY_TIMEOUT_SECONDS cannot be negative")
	}
	cfg.GatewayTimeout = time.Duration(timeoutSeconds) * time.Second

	// Ledger
	cfg.LedgerBackend = strings.ToLower(getEnv("LEDGER_BACKEND", LedgerBackendSQLite))
	if cfg.LedgerBackend != LedgerBackendSQLite && cfg.LedgerBackend != LedgerBackendCSV {
		errs = append(errs, fmt.Sprintf("LEDGER_BACKEND must be %q or %q", LedgerBackendSQLite, LedgerBackendCSV))
	}
	cfg.DBPath = getEnv("DB_PATH", "./data/trade_desk.db")
	if cfg.DBPath == "" {
		errs = append(errs, "DB_PATH must be set")
	}
	cfg.CSVPath = getEnv("CSV_PATH", "./data/submitted_orders.csv")
	if cfg.CSVPath == "" && cfg.LedgerBackend == LedgerBackendCSV {
		errs = append(errs, "CSV_PATH must be set when LEDGER_BACKEND is csv")
	}

	// Historical-data defaults
	var err error
	cfg.DefaultDurationMagnitude, err = getEnvAsIntRequired("DEFAULT_DURATION_MAGNITUDE", 10)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid DEFAULT_DURATION_MAGNITUDE: %v", err))
	} else if cfg.DefaultDurationMagnitude <= 0 {
		errs = append(errs, "DEFAULT_DURATION_MAGNITUDE must be positive")
	}
	cfg.DefaultDurationUnit = getEnv("DEFAULT_DURATION_UNIT", "D")
	cfg.DefaultBarSize = getEnv("DEFAULT_BAR_SIZE", "1 hour")
	cfg.DefaultWhatToShow = getEnv("DEFAULT_WHAT_TO_SHOW", "MIDPOINT")

	// Logging
	logLevelStr := getEnv("LOG_LEVEL", "INFO")
	cfg.LogLevel = logger.ParseLevel(logLevelStr) // Use the parser from the logger package

	// Combine validation errors
	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}

	return cfg, nil
}

// --- Env Var Helpers ---

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
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

func getEnvAsIntRequired(key string, defaultValue int) (int, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		// Use default if env var is not set at all
		return defaultValue, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		// Return error if env var is set but invalid
		return 0, fmt.Errorf("invalid integer value '%s' for key %s: %w", valueStr, key, err)
	}
	return value, nil
}
