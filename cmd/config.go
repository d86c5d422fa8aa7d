package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	HTTPPort string `envconfig:"HTTP_PORT" default:"8080"`

	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"postgres"`
	DBPassword string `envconfig:"DB_PASSWORD" default:"postgres"`
	DBName     string `envconfig:"DB_NAME" default:"subcontract"`
	DBSslMode  string `envconfig:"DB_SSLMODE" default:"disable"`

	// RedisAddr enables the directory cache when set.
	RedisAddr         string        `envconfig:"REDIS_ADDR"`
	DirectoryCacheTTL time.Duration `envconfig:"DIRECTORY_CACHE_TTL" default:"10m"`

	OverdueScanSchedule string `envconfig:"OVERDUE_SCAN_SCHEDULE" default:"0 */5 * * * *"`
	LogFormat           string `envconfig:"LOG_FORMAT" default:"text"`
	Storage             string `envconfig:"STORAGE" default:"postgres"`

	// MemorySeedFile is a JSON file with the products and warehouses known to
	// STORAGE=memory. Without it both directories start empty.
	MemorySeedFile string `envconfig:"MEMORY_SEED_FILE"`
}

// LoadConfig reads .env when present and then the process environment.
// Variables already set in the environment win over .env.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Storage {
	case StoragePostgres, StorageMemory:
	default:
		return fmt.Errorf("STORAGE must be %q or %q, got %q", StoragePostgres, StorageMemory, c.Storage)
	}
	if c.DirectoryCacheTTL <= 0 {
		return fmt.Errorf("DIRECTORY_CACHE_TTL must be positive, got %s", c.DirectoryCacheTTL)
	}
	return nil
}

// DSN is the PostgreSQL connection string for gorm.io/driver/postgres.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
