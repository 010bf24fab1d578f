package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverFile     = "file"
	DriverPostgres = "postgres"
)

type Config struct {
	Port         string
	AppEnv       string
	LogLevel     string
	StoreDriver  string
	CatalogDir   string
	OrdersFile   string
	DatabaseURL  string
	SeedCatalog  bool
	RulesDir     string
	RulesVersion string

	// SessionIdleTimeout of 0 disables idle session eviction.
	SessionIdleTimeout time.Duration
}

func Default() Config {
	return Config{
		Port:         "8080",
		AppEnv:       "development",
		LogLevel:     "info",
		StoreDriver:  DriverFile,
		CatalogDir:   "data/catalog",
		OrdersFile:   "data/db/order_lines.json",
		RulesDir:     "data/rules",
		RulesVersion: "v1",

		SessionIdleTimeout: 30 * time.Minute,
	}
}

// Load reads .env (outside production) and then the process environment.
func Load() (Config, error) {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}
	c := Default()
	c.Port = getEnv("PORT", c.Port)
	c.AppEnv = getEnv("APP_ENV", c.AppEnv)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.StoreDriver = getEnv("STORE_DRIVER", c.StoreDriver)
	c.CatalogDir = getEnv("CATALOG_DIR", c.CatalogDir)
	c.OrdersFile = getEnv("ORDERS_FILE", c.OrdersFile)
	c.DatabaseURL = getEnv("DATABASE_URL", c.DatabaseURL)
	c.RulesDir = getEnv("RULES_DIR", c.RulesDir)
	if v, ok := os.LookupEnv("RULES_VERSION"); ok {
		c.RulesVersion = v
	}
	if v := os.Getenv("SEED_CATALOG"); v != "" {
		seed, err := strconv.ParseBool(v)
		if err != nil {
			return c, fmt.Errorf("invalid SEED_CATALOG %q: %w", v, err)
		}
		c.SeedCatalog = seed
	}
	if v := os.Getenv("SESSION_IDLE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return c, fmt.Errorf("invalid SESSION_IDLE_TIMEOUT %q", v)
		}
		c.SessionIdleTimeout = d
	}
	return c, c.Validate()
}

func (c Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid PORT %q: must be between 1 and 65535", c.Port)
	}
	switch c.StoreDriver {
	case DriverFile:
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when STORE_DRIVER=%s", DriverPostgres)
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
