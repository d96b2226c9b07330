package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port    string `env:"PORT" envDefault:"5000"`
	GinMode string `env:"GIN_MODE" envDefault:"debug"`
	LogFile string `env:"LOG_FILE"`

	// Database
	DBDriver   string `env:"DB_DRIVER" envDefault:"postgres"`
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD" envDefault:"password"`
	DBName     string `env:"DB_NAME" envDefault:"fyyur"`
	DBSSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
	DBLogLevel string `env:"DB_LOG_LEVEL" envDefault:"warn"`
	SQLitePath string `env:"SQLITE_PATH" envDefault:"fyyur.db"`

	// Redis (flash messages); empty host keeps flashes in a cookie
	RedisHost     string `env:"REDIS_HOST"`
	RedisPort     string `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	FlashTTL time.Duration `env:"FLASH_TTL" envDefault:"10m"`

	// Seeding
	SeedSample bool `env:"SEED_SAMPLE" envDefault:"false"`
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Load reads an optional .env file and then parses the environment.
func Load() (*Config, error) {
	godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	switch cfg.DBDriver {
	case DriverPostgres, DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	return cfg, nil
}

// DSN returns the connection string for the configured driver.
func (c *Config) DSN() string {
	if c.DBDriver == DriverSQLite {
		return c.SQLitePath + "?_foreign_keys=on"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// RedisEnabled reports whether flashes should be stored in Redis.
func (c *Config) RedisEnabled() bool {
	return c.RedisHost != ""
}

func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}
