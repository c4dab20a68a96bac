// Package config loads tripledger settings from a TOML file, an optional
// .env file and the environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds all tripledger configuration.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Auth     AuthConfig     `toml:"auth"`
	Ledger   LedgerConfig   `toml:"ledger"`
	Log      LogConfig      `toml:"log"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	ListenAddr string `toml:"listen_addr"`
}

// DatabaseConfig selects and locates the store.
type DatabaseConfig struct {
	Driver string `toml:"driver"`
	Path   string `toml:"path,omitempty"` // sqlite
	URL    string `toml:"url,omitempty"`  // postgres
}

// AuthConfig holds bearer token settings. An empty secret disables auth.
type AuthConfig struct {
	JWTSecret string   `toml:"jwt_secret,omitempty"`
	Issuer    string   `toml:"issuer,omitempty"` // expected iss claim, unchecked when empty
	Leeway    Duration `toml:"leeway"`           // tolerated clock skew on exp
	TokenTTL  Duration `toml:"token_ttl"`        // lifetime of tokens minted by ledgerctl
}

// LedgerConfig holds domain defaults.
type LedgerConfig struct {
	BaseCurrency string `toml:"base_currency"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
}

// Duration is a time.Duration written as a string ("24h") in TOML.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			ListenAddr: ":8080",
		},
		Database: DatabaseConfig{
			Driver: DriverSQLite,
			Path:   "./data/tripledger.db",
		},
		Auth: AuthConfig{
			Leeway:   Duration{30 * time.Second},
			TokenTTL: Duration{24 * time.Hour},
		},
		Ledger: LedgerConfig{
			BaseCurrency: "EUR",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load builds the effective configuration. path may be empty, in which case
// TRIPLEDGER_CONFIG is consulted; a missing file means defaults.
// Environment variables override file values.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("loading .env: %w", err)
	}

	if path == "" {
		path = os.Getenv("TRIPLEDGER_CONFIG")
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return cfg, fmt.Errorf("parsing config %s: %w", path, err)
			}
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func applyEnv(cfg *Config) {
	cfg.Server.ListenAddr = getEnv("LISTEN_ADDR", cfg.Server.ListenAddr)
	cfg.Database.Driver = getEnv("DB_DRIVER", cfg.Database.Driver)
	cfg.Database.Path = getEnv("DB_PATH", cfg.Database.Path)
	cfg.Database.URL = getEnv("DATABASE_URL", cfg.Database.URL)
	cfg.Auth.JWTSecret = getEnv("JWT_SECRET", cfg.Auth.JWTSecret)
	cfg.Auth.Issuer = getEnv("JWT_ISSUER", cfg.Auth.Issuer)
	cfg.Ledger.BaseCurrency = getEnv("BASE_CURRENCY", cfg.Ledger.BaseCurrency)
	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
}

// Validate reports settings that cannot work together.
func (c Config) Validate() error {
	switch strings.ToLower(c.Database.Driver) {
	case DriverSQLite:
		if c.Database.Path == "" {
			return errors.New("database.path required for sqlite")
		}
	case DriverPostgres:
		if c.Database.URL == "" {
			return errors.New("database.url (or DATABASE_URL) required for postgres")
		}
	default:
		return fmt.Errorf("unknown database driver %q", c.Database.Driver)
	}
	if c.Auth.JWTSecret != "" && c.Auth.TokenTTL.Duration <= 0 {
		return errors.New("auth.token_ttl must be positive")
	}
	if c.Auth.Leeway.Duration < 0 {
		return errors.New("auth.leeway cannot be negative")
	}
	if len(c.Ledger.BaseCurrency) != 3 {
		return fmt.Errorf("ledger.base_currency must be a 3-letter code, got %q", c.Ledger.BaseCurrency)
	}
	return nil
}

// Write encodes cfg as TOML. The JWT secret is redacted.
func Write(w io.Writer, cfg Config) error {
	if cfg.Auth.JWTSecret != "" {
		cfg.Auth.JWTSecret = "<redacted>"
	}
	return toml.NewEncoder(w).Encode(cfg)
}
