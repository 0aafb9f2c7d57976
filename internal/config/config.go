package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries everything the service reads from the environment at
// startup. Missing required keys fail Load; the process must not come
// up half-configured.
type Config struct {
	App struct {
		Port string
	}
	Postgres struct {
		Host     string
		Port     string
		User     string
		Password string
		DBName   string
		SSLMode  string
	}
	JWT struct {
		Secret    string
		ExpiresIn time.Duration
	}
}

// Load reads configuration from the environment, optionally seeded
// from a .env file at path.
func Load(path string) (*Config, error) {
	if path != "" {
		if err := godotenv.Load(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	cfg := &Config{}

	cfg.App.Port = os.Getenv("APP_PORT")
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}

	var missing []string
	required := func(key string) string {
		v := os.Getenv(key)
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}

	cfg.Postgres.Host = required("DB_HOST")
	cfg.Postgres.Port = required("DB_PORT")
	cfg.Postgres.User = required("DB_USER")
	cfg.Postgres.Password = required("DB_PASSWORD")
	cfg.Postgres.DBName = required("DB_NAME")
	cfg.Postgres.SSLMode = os.Getenv("DB_SSLMODE")
	if cfg.Postgres.SSLMode == "" {
		cfg.Postgres.SSLMode = "disable"
	}

	cfg.JWT.Secret = required("JWT_SECRET")
	cfg.JWT.ExpiresIn = time.Hour
	if v := os.Getenv("JWT_EXPIRES_IN"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid JWT_EXPIRES_IN %q: %w", v, err)
		}
		cfg.JWT.ExpiresIn = d
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required config: %v", missing)
	}

	return cfg, nil
}

// ErrCostNotConfigured is returned by BcryptCost when SALT_OR_ROUNDS
// is absent or not a number.
var ErrCostNotConfigured = errors.New("SALT_OR_ROUNDS is missing or invalid")

// BcryptCost resolves the hashing work factor from the environment.
// It is read on every call, not cached at startup, so each environment
// (and each test) can tune it independently.
func BcryptCost() (int, error) {
	v := os.Getenv("SALT_OR_ROUNDS")
	if v == "" {
		return 0, ErrCostNotConfigured
	}
	cost, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrCostNotConfigured, v)
	}
	return cost, nil
}
