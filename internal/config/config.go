package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/KoBe1628/ai-fitness-tracker/internal/exercise"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Store     StoreConfig     `yaml:"store"`
	Auth      AuthConfig      `yaml:"auth"`
	Tailscale TailscaleConfig `yaml:"tailscale"`
	User      UserConfig      `yaml:"user"`
	Timers    TimersConfig    `yaml:"timers"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type StoreConfig struct {
	// Backend selects where the ledger lives: "sqlite" (local file, the
	// default) or "postgres" (shared deployment).
	Backend  string         `yaml:"backend"`
	SQLite   SQLiteConfig   `yaml:"sqlite"`
	Postgres PostgresConfig `yaml:"postgres"`
}

type SQLiteConfig struct {
	Dir string `yaml:"dir"`
}

type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

type AuthConfig struct {
	APIKey string `yaml:"api_key"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

type UserConfig struct {
	WeightKg   float64 `yaml:"weight_kg"`
	Difficulty string  `yaml:"difficulty"`
	Exercise   string  `yaml:"exercise"`
}

type TimersConfig struct {
	ChallengeSeconds int `yaml:"challenge_seconds"`
	RestSeconds      int `yaml:"rest_seconds"`
}

// DSN returns a PostgreSQL connection string.
func (p PostgresConfig) DSN() string {
	sslmode := p.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User, p.Password, p.Host, p.Port, p.Name, sslmode)
}

// Load reads config from a YAML file, then applies environment variable
// overrides. Env vars use the prefix FITTRACK_ and underscore-separated
// paths:
//
//	FITTRACK_SERVER_HOST, FITTRACK_SERVER_PORT,
//	FITTRACK_STORE_BACKEND, FITTRACK_SQLITE_DIR,
//	FITTRACK_PG_HOST, FITTRACK_PG_PORT, FITTRACK_PG_NAME,
//	FITTRACK_PG_USER, FITTRACK_PG_PASSWORD, FITTRACK_PG_SSLMODE,
//	FITTRACK_AUTH_API_KEY, FITTRACK_USER_WEIGHT_KG
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("FITTRACK_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("FITTRACK_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("FITTRACK_STORE_BACKEND"); v != "" {
		cfg.Store.Backend = v
	}
	if v := os.Getenv("FITTRACK_SQLITE_DIR"); v != "" {
		cfg.Store.SQLite.Dir = v
	}
	if v := os.Getenv("FITTRACK_PG_HOST"); v != "" {
		cfg.Store.Postgres.Host = v
	}
	if v := os.Getenv("FITTRACK_PG_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Store.Postgres.Port = port
		}
	}
	if v := os.Getenv("FITTRACK_PG_NAME"); v != "" {
		cfg.Store.Postgres.Name = v
	}
	if v := os.Getenv("FITTRACK_PG_USER"); v != "" {
		cfg.Store.Postgres.User = v
	}
	if v := os.Getenv("FITTRACK_PG_PASSWORD"); v != "" {
		cfg.Store.Postgres.Password = v
	}
	if v := os.Getenv("FITTRACK_PG_SSLMODE"); v != "" {
		cfg.Store.Postgres.SSLMode = v
	}
	if v := os.Getenv("FITTRACK_AUTH_API_KEY"); v != "" {
		cfg.Auth.APIKey = v
	}
	if v := os.Getenv("FITTRACK_USER_WEIGHT_KG"); v != "" {
		if w, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.User.WeightKg = w
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Store.Backend == "" {
		cfg.Store.Backend = "sqlite"
	}
	if cfg.Store.SQLite.Dir == "" {
		cfg.Store.SQLite.Dir = "data"
	}
	if cfg.User.WeightKg == 0 {
		cfg.User.WeightKg = exercise.ReferenceWeightKg
	}
	if cfg.User.Difficulty == "" {
		cfg.User.Difficulty = string(exercise.Normal)
	}
}

func (c *Config) validate() error {
	if c.Server.Port == 0 {
		return fmt.Errorf("server.port is required")
	}
	if c.Auth.APIKey == "" {
		return fmt.Errorf("auth.api_key is required")
	}
	switch c.Store.Backend {
	case "sqlite":
	case "postgres":
		if c.Store.Postgres.Host == "" {
			return fmt.Errorf("store.postgres.host is required")
		}
		if c.Store.Postgres.Port == 0 {
			return fmt.Errorf("store.postgres.port is required")
		}
		if c.Store.Postgres.Name == "" {
			return fmt.Errorf("store.postgres.name is required")
		}
		if c.Store.Postgres.User == "" {
			return fmt.Errorf("store.postgres.user is required")
		}
	default:
		return fmt.Errorf("store.backend must be sqlite or postgres, got %q", c.Store.Backend)
	}
	if !exercise.Difficulty(c.User.Difficulty).Valid() {
		return fmt.Errorf("user.difficulty must be easy, normal or hard, got %q", c.User.Difficulty)
	}
	if c.User.Exercise != "" {
		if _, ok := exercise.Lookup(c.User.Exercise); !ok {
			return fmt.Errorf("user.exercise %q is not a known exercise", c.User.Exercise)
		}
	}
	if c.User.WeightKg < 0 {
		return fmt.Errorf("user.weight_kg must not be negative")
	}
	return nil
}
