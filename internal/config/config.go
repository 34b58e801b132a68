package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	TelegramToken   string        `mapstructure:"TELEGRAM_TOKEN"`
	DBDSN           string        `mapstructure:"DB_DSN"`
	Environment     string        `mapstructure:"ENV"`
	BackendURL      string        `mapstructure:"BACKEND_URL"`
	SupabaseURL     string        `mapstructure:"SUPABASE_URL"`
	SupabaseAnonKey string        `mapstructure:"SUPABASE_ANON_KEY"`
	SupabaseJWTKey  string        `mapstructure:"SUPABASE_JWT_SECRET"`
	HTTPAddr        string        `mapstructure:"HTTP_ADDR"`
	PublicURL       string        `mapstructure:"PUBLIC_URL"`
	StateSecret     string        `mapstructure:"STATE_SECRET"`
	MigrationsPath  string        `mapstructure:"MIGRATIONS_PATH"`
	Timezone        string        `mapstructure:"TIMEZONE"`
	DigestHour      int           `mapstructure:"DIGEST_HOUR"`
	RequestTimeout  time.Duration `mapstructure:"REQUEST_TIMEOUT"`
}

var keys = []string{
	"TELEGRAM_TOKEN",
	"DB_DSN",
	"ENV",
	"BACKEND_URL",
	"SUPABASE_URL",
	"SUPABASE_ANON_KEY",
	"SUPABASE_JWT_SECRET",
	"HTTP_ADDR",
	"PUBLIC_URL",
	"STATE_SECRET",
	"MIGRATIONS_PATH",
	"TIMEZONE",
	"DIGEST_HOUR",
	"REQUEST_TIMEOUT",
}

func Load() (*Config, error) {
	// .env is optional, real environment variables win
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("ENV", "development")
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("MIGRATIONS_PATH", "migrations")
	v.SetDefault("TIMEZONE", "Local")
	v.SetDefault("DIGEST_HOUR", 7)
	v.SetDefault("REQUEST_TIMEOUT", "15s")

	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.BackendURL = strings.TrimRight(cfg.BackendURL, "/")
	cfg.SupabaseURL = strings.TrimRight(cfg.SupabaseURL, "/")
	cfg.PublicURL = strings.TrimRight(cfg.PublicURL, "/")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks required settings and value ranges
func (c *Config) Validate() error {
	var errs []error
	if c.TelegramToken == "" {
		errs = append(errs, errors.New("TELEGRAM_TOKEN is required"))
	}
	if c.DBDSN == "" {
		errs = append(errs, errors.New("DB_DSN is required"))
	}
	if c.BackendURL == "" {
		errs = append(errs, errors.New("BACKEND_URL is required"))
	}
	if c.SupabaseURL == "" {
		errs = append(errs, errors.New("SUPABASE_URL is required"))
	}
	if c.DigestHour < 0 || c.DigestHour > 23 {
		errs = append(errs, fmt.Errorf("DIGEST_HOUR must be within 0..23, got %d", c.DigestHour))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("REQUEST_TIMEOUT must be positive, got %s", c.RequestTimeout))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Location resolves TIMEZONE, every local calendar date is computed in it
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// OAuthReturnURL is where the calendar provider sends the counselor back to
func (c *Config) OAuthReturnURL() string {
	if c.PublicURL == "" {
		return ""
	}
	return c.PublicURL + "/oauth/calendar/return"
}

func (c *Config) GetDBDSN() string {
	return c.DBDSN
}
