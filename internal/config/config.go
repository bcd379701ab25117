// Package config loads server settings from an optional YAML file and the
// environment. Environment variables win over the file, which wins over defaults.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type DatabaseConfig struct {
	Driver string `yaml:"driver"` // "sqlite3" or "postgres"
	Path   string `yaml:"path"`   // sqlite file
	DSN    string `yaml:"dsn"`    // postgres connection string
}

// OwnerConfig names the account that owns all tasks. No account is created
// when Password is empty.
type OwnerConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type Config struct {
	Port            string         `yaml:"port"`
	LogLevel        string         `yaml:"log_level"`
	SeedDemoData    bool           `yaml:"seed_demo_data"`
	ShutdownTimeout time.Duration  `yaml:"shutdown_timeout"`
	Database        DatabaseConfig `yaml:"database"`
	Owner           OwnerConfig    `yaml:"owner"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Port:            "8080",
		LogLevel:        "info",
		SeedDemoData:    true,
		ShutdownTimeout: 10 * time.Second,
		Database: DatabaseConfig{
			Driver: "sqlite3",
			Path:   "./data/taskmanager.db",
		},
		Owner: OwnerConfig{Username: "demo"},
	}
}

// Load builds the configuration. The YAML file named by CONFIG_FILE is read
// when set; a missing file is an error.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	return cfg, cfg.Validate()
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.Port = getEnv("PORT", c.Port)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.Database.Driver = getEnv("DB_DRIVER", c.Database.Driver)
	c.Database.Path = getEnv("DB_PATH", c.Database.Path)
	c.Database.DSN = getEnv("DATABASE_URL", c.Database.DSN)
	c.Owner.Username = getEnv("OWNER_USERNAME", c.Owner.Username)
	c.Owner.Password = getEnv("OWNER_PASSWORD", c.Owner.Password)

	if v := os.Getenv("SEED_DEMO_DATA"); v != "" {
		seed, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid SEED_DEMO_DATA %q: %w", v, err)
		}
		c.SeedDemoData = seed
	}

	if v := os.Getenv("SHUTDOWN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid SHUTDOWN_TIMEOUT %q: %w", v, err)
		}
		c.ShutdownTimeout = d
	}

	return nil
}

// Validate checks that the settings can be used to start the server.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite3":
		if c.Database.Path == "" {
			return fmt.Errorf("database path is required for sqlite3")
		}
	case "postgres":
		if c.Database.DSN == "" {
			return fmt.Errorf("DATABASE_URL is required for postgres")
		}
	default:
		return fmt.Errorf("unsupported database driver: %q", c.Database.Driver)
	}
	if c.Port == "" {
		return fmt.Errorf("port is required")
	}
	if c.Owner.Password != "" && c.Owner.Username == "" {
		return fmt.Errorf("owner username is required when a password is set")
	}
	return nil
}

// ConnString returns the connection string for the configured driver.
func (db *DatabaseConfig) ConnString() string {
	if db.Driver == "postgres" {
		return db.DSN
	}
	return db.Path
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
