package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage backend selectors.
const (
	BackendJSONBin  = "jsonbin"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Config holds application configuration.
type Config struct {
	Port           string
	IsProduction   bool
	StorageBackend string

	// JSONBin document store
	JSONBinBaseURL     string
	JSONBinBinID       string
	JSONBinBackupBinID string
	JSONBinAPIKey      string
	JSONBinTimeout     time.Duration

	// Postgres document store
	DatabaseURL string

	// Rate limit in ulule/limiter notation, e.g. "100-M"
	RateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "3000")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("STORAGE_BACKEND", BackendJSONBin)
	viper.SetDefault("JSONBIN_BASE_URL", "https://api.jsonbin.io/v3")
	viper.SetDefault("JSONBIN_BIN_ID", "")
	viper.SetDefault("JSONBIN_BACKUP_BIN_ID", "")
	viper.SetDefault("JSONBIN_API_KEY", "")
	viper.SetDefault("JSONBIN_TIMEOUT", "10s")
	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("RATE_LIMIT", "100-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.StorageBackend = viper.GetString("STORAGE_BACKEND")
	switch cfg.StorageBackend {
	case BackendJSONBin, BackendPostgres, BackendMemory:
	default:
		log.Printf("Warning: Unknown STORAGE_BACKEND ('%s'). Defaulting to %s.\n", cfg.StorageBackend, BackendJSONBin)
		cfg.StorageBackend = BackendJSONBin
	}

	cfg.JSONBinBaseURL = viper.GetString("JSONBIN_BASE_URL")
	cfg.JSONBinBinID = viper.GetString("JSONBIN_BIN_ID")
	cfg.JSONBinBackupBinID = viper.GetString("JSONBIN_BACKUP_BIN_ID")
	cfg.JSONBinAPIKey = viper.GetString("JSONBIN_API_KEY")

	timeoutStr := viper.GetString("JSONBIN_TIMEOUT")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		timeout = 10 * time.Second
		if timeoutStr != "" {
			log.Printf("Warning: Invalid value for JSONBIN_TIMEOUT ('%s'). Defaulting to %s.\n", timeoutStr, timeout)
		}
	}
	cfg.JSONBinTimeout = timeout

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.StorageBackend == BackendPostgres && cfg.DatabaseURL == "" {
		log.Println("Warning: STORAGE_BACKEND is postgres but PGSQL_URL is not set.")
	}
	if cfg.StorageBackend == BackendJSONBin && cfg.JSONBinBinID == "" {
		log.Println("Warning: JSONBIN_BIN_ID environment variable not set.")
	}

	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}
