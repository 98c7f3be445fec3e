package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server   ServerConfig
	Storage  StorageConfig
	AI       AIConfig
	Export   ExportConfig
	Snapshot SnapshotConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port     string
	LogLevel string
}

// StorageConfig points at the device data file.
type StorageConfig struct {
	DataFile string
}

// AIConfig holds settings for the structured-extraction model. An empty key
// is valid: the import flow falls back to demo data.
type AIConfig struct {
	GeminiKey string
}

// ExportConfig controls where rendered PDF documents land.
type ExportConfig struct {
	Dir string
}

// SnapshotConfig holds the backup scheduler settings.
type SnapshotConfig struct {
	CronSchedule string
	Dir          string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Missing .env files are acceptable when configuration comes from the
		// environment directly.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:     getenvWithDefault("APP_PORT", "8080"),
			LogLevel: getenvWithDefault("LOG_LEVEL", "info"),
		},
		Storage: StorageConfig{
			DataFile: getenvWithDefault("DATA_FILE", "stationary.json"),
		},
		AI: AIConfig{
			GeminiKey: os.Getenv("GEMINI_API_KEY"),
		},
		Export: ExportConfig{
			Dir: getenvWithDefault("EXPORT_DIR", "exports"),
		},
		Snapshot: SnapshotConfig{
			CronSchedule: getenvWithDefault("SNAPSHOT_CRON_SCHEDULE", "0 2 * * *"),
			Dir:          getenvWithDefault("SNAPSHOT_DIR", "backups"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}
	if c.Storage.DataFile == "" {
		return errors.New("DATA_FILE must be provided")
	}
	if c.Export.Dir == "" {
		return errors.New("EXPORT_DIR must not be empty")
	}
	if c.Snapshot.CronSchedule == "" {
		return errors.New("SNAPSHOT_CRON_SCHEDULE must not be empty")
	}
	if c.Snapshot.Dir == "" {
		return errors.New("SNAPSHOT_DIR must not be empty")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
