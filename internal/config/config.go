package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	GinMode  string
	Port     string
	TZ       string
	LogLevel string

	DBDriver         string
	DBHost           string
	DBPort           string
	DBUser           string
	DBPass           string
	DBName           string
	DBSSLMode        string
	DBSQLitePath     string
	DBMaxOpenConns   int
	DBMaxIdleConns   int
	DBConnLifetime   time.Duration
	DBConnectTries   int
	DBConnectBackoff time.Duration
}

// findEnvFile walks up from the working directory looking for name.
func findEnvFile(name string) (string, bool) {
	dir, err := os.Getwd()
	if err != nil {
		return "", false
	}

	for {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// Load reads configuration from the environment. In debug mode a .env file
// found in the working directory or one of its parents is loaded first;
// variables already set in the environment win.
func Load() (*Config, error) {
	if getenv("GIN_MODE", "debug") == "debug" {
		if path, ok := findEnvFile(".env"); ok {
			if err := godotenv.Load(path); err != nil {
				log.Warn().Err(err).Str("path", path).Msg("could not load env file")
			} else {
				log.Debug().Str("path", path).Msg("loaded env file")
			}
		}
	}

	cfg := &Config{
		GinMode:  getenv("GIN_MODE", "debug"),
		Port:     getenv("PORT", "8080"),
		TZ:       getenv("TZ", "UTC"),
		LogLevel: getenv("LOG_LEVEL", "info"),

		DBDriver:         getenv("DB_DRIVER", DriverPostgres),
		DBHost:           getenv("DB_HOST", "localhost"),
		DBPort:           getenv("DB_PORT", "5432"),
		DBUser:           getenv("DB_USER", "postgres"),
		DBPass:           getenv("DB_PASS", ""),
		DBName:           getenv("DB_NAME", "postgres"),
		DBSSLMode:        os.Getenv("DB_SSLMODE"),
		DBSQLitePath:     getenv("DB_SQLITE_PATH", "shelfshare.db"),
		DBMaxOpenConns:   getenvInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:   getenvInt("DB_MAX_IDLE_CONNS", 5),
		DBConnLifetime:   getenvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		DBConnectTries:   getenvInt("DB_CONNECT_ATTEMPTS", 10),
		DBConnectBackoff: getenvDuration("DB_CONNECT_BACKOFF", 2*time.Second),
	}

	if cfg.DBSSLMode == "" {
		if cfg.GinMode == "release" {
			cfg.DBSSLMode = "require"
		} else {
			cfg.DBSSLMode = "disable"
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	postgres := c.DBDriver == DriverPostgres

	return validation.ValidateStruct(c,
		validation.Field(&c.GinMode, validation.Required, validation.In("debug", "release", "test")),
		validation.Field(&c.Port, validation.Required, is.Port),
		validation.Field(&c.LogLevel, validation.In("trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled")),
		validation.Field(&c.DBDriver, validation.Required, validation.In(DriverPostgres, DriverSQLite)),
		validation.Field(&c.DBHost, validation.When(postgres, validation.Required)),
		validation.Field(&c.DBPort, validation.When(postgres, validation.Required, is.Port)),
		validation.Field(&c.DBName, validation.When(postgres, validation.Required)),
		validation.Field(&c.DBSSLMode, validation.When(postgres,
			validation.In("disable", "allow", "prefer", "require", "verify-ca", "verify-full"))),
		validation.Field(&c.DBSQLitePath, validation.When(!postgres, validation.Required)),
		validation.Field(&c.DBMaxOpenConns, validation.Min(1)),
		validation.Field(&c.DBMaxIdleConns, validation.Min(0)),
		validation.Field(&c.DBConnectTries, validation.Min(1)),
	)
}

func (c *Config) DSN() string {
	if c.DBDriver == DriverSQLite {
		return c.DBSQLitePath + "?_foreign_keys=1"
	}

	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.DBHost,
		c.DBUser,
		c.DBPass,
		c.DBName,
		c.DBPort,
		c.DBSSLMode,
		c.TZ,
	)
}

func (c *Config) Addr() string {
	return ":" + c.Port
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Warn().Str("key", key).Str("value", v).Msg("ignoring non-integer env value")
	}
	return def
}

func getenvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Warn().Str("key", key).Str("value", v).Msg("ignoring invalid duration env value")
	}
	return def
}
