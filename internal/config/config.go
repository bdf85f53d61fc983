// Package config provides application configuration loaded from environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	EnvDev   = "dev"
	EnvProd  = "prod"
	EnvLocal = "local"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	App      AppConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            string        `env:"PORT" env-default:"8080"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" env-default:"15s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" env-default:"15s"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT" env-default:"60s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig selects and addresses the database.
// PostgreSQL is used when URL or Host is set, SQLite otherwise.
type DatabaseConfig struct {
	URL        string `env:"DATABASE_URL"`
	Host       string `env:"DB_HOST"`
	Port       int    `env:"DB_PORT" env-default:"5432"`
	User       string `env:"DB_USER" env-default:"usuarios"`
	Password   string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" env-default:"usuarios"`
	SSLMode    string `env:"DB_SSLMODE" env-default:"disable"`
	SQLitePath string `env:"SQLITE_PATH" env-default:"usuarios.db"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Env      string `env:"APP_ENV" env-default:"dev"`
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`
}

// Driver returns the database driver implied by the settings.
func (d DatabaseConfig) Driver() string {
	if d.URL != "" || d.Host != "" {
		return DriverPostgres
	}
	return DriverSQLite
}

// DSN returns the connection string for the selected driver.
func (d DatabaseConfig) DSN() string {
	if d.Driver() == DriverSQLite {
		return d.SQLitePath
	}
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// Load reads configuration from environment variables.
// POSTGRESQL_ADDON_URI is honoured when DATABASE_URL is not set.
func Load() (*Config, error) {
	cfg := new(Config)
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	if cfg.Database.URL == "" {
		cfg.Database.URL = os.Getenv("POSTGRESQL_ADDON_URI")
	}
	cfg.App.Env = strings.ToLower(cfg.App.Env)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.App.Env {
	case EnvDev, EnvProd, EnvLocal:
	default:
		return fmt.Errorf("unknown env: %s", c.App.Env)
	}
	if c.Server.Port == "" {
		return fmt.Errorf("empty port")
	}
	return nil
}
