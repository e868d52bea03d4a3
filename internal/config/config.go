package config

import (
	"os"
	"strconv"

	"goinfer/domain/core"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Data     DataConfig
	Sweep    SweepConfig
}

// DatabaseConfig holds database connection settings. URL empty means no
// persistence: runs are kept in memory only.
type DatabaseConfig struct {
	URL string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// DataConfig holds data ingestion settings
type DataConfig struct {
	File            string
	TimestampColumn string
	TimestampLayout string
}

// SweepConfig holds sweep execution settings
type SweepConfig struct {
	MaxConcurrent int64
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg := &Config{
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Data: DataConfig{
			File:            os.Getenv("DATA_FILE"),
			TimestampColumn: getEnv("TIMESTAMP_COLUMN", ""),
			// Layout of the activity exports the engine was built around.
			TimestampLayout: getEnv("TIMESTAMP_LAYOUT", "1/2/2006 3:04:05 PM"),
		},
		Sweep: SweepConfig{
			MaxConcurrent: getEnvInt64("SWEEP_MAX_CONCURRENT", 4),
		},
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Server.Port == "" {
		return core.NewInvalidParameterError("PORT", "must not be empty")
	}
	if cfg.Sweep.MaxConcurrent < 1 {
		return core.NewInvalidParameterError("SWEEP_MAX_CONCURRENT", "must be >= 1")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}
