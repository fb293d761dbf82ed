// Package config loads process settings from the environment, an optional
// .env file and an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/text/currency"
)

type Config struct {
	HTTPAddr        string        `mapstructure:"http_addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`

	DatabaseURL string `mapstructure:"database_url"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`

	RedisURL       string        `mapstructure:"redis_url"`
	IdempotencyTTL time.Duration `mapstructure:"idempotency_ttl"`

	AMQPURL            string        `mapstructure:"amqp_url"`
	OutboxPollInterval time.Duration `mapstructure:"outbox_poll_interval"`
	OutboxBatchSize    int32         `mapstructure:"outbox_batch_size"`

	StripeSecretKey string `mapstructure:"stripe_secret_key"`
	Currency        string `mapstructure:"currency"`

	JWTSecret string        `mapstructure:"jwt_secret"`
	JWTTTL    time.Duration `mapstructure:"jwt_ttl"`

	LogLevel string `mapstructure:"log_level"`
}

func defaults(v *viper.Viper) {
	v.SetDefault("http_addr", ":8080")
	v.SetDefault("shutdown_timeout", 10*time.Second)
	v.SetDefault("database_url", "")
	v.SetDefault("auto_migrate", false)
	v.SetDefault("redis_url", "")
	v.SetDefault("idempotency_ttl", 24*time.Hour)
	v.SetDefault("amqp_url", "")
	v.SetDefault("outbox_poll_interval", time.Second)
	v.SetDefault("outbox_batch_size", 100)
	v.SetDefault("stripe_secret_key", "")
	v.SetDefault("currency", "USD")
	v.SetDefault("jwt_secret", "")
	v.SetDefault("jwt_ttl", time.Hour)
	v.SetDefault("log_level", "info")
}

// Load reads .env when present, then path when not empty. Environment
// variables win over both.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("godotenv.Load: %w", err)
	}

	v := viper.New()
	defaults(v)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("v.ReadInConfig[%s]: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("v.Unmarshal: %w", err)
	}

	return cfg, nil
}

// CurrencyUnit parses the configured ISO 4217 code.
func (c Config) CurrencyUnit() (currency.Unit, error) {
	unit, err := currency.ParseISO(c.Currency)
	if err != nil {
		return currency.Unit{}, fmt.Errorf("currency[%s]: %w", c.Currency, err)
	}

	return unit, nil
}

// RequireDatabase is the check for commands that only touch Postgres.
func (c Config) RequireDatabase() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is empty")
	}
	return nil
}

// RequireBroker is the check for the outbox relay.
func (c Config) RequireBroker() error {
	var errs []error

	if err := c.RequireDatabase(); err != nil {
		errs = append(errs, err)
	}
	if c.AMQPURL == "" {
		errs = append(errs, fmt.Errorf("AMQP_URL is empty"))
	}
	if c.OutboxPollInterval <= 0 {
		errs = append(errs, fmt.Errorf("OUTBOX_POLL_INTERVAL must be positive"))
	}
	if c.OutboxBatchSize <= 0 {
		errs = append(errs, fmt.Errorf("OUTBOX_BATCH_SIZE must be positive"))
	}

	return errors.Join(errs...)
}

// Validate is the check for serve.
func (c Config) Validate() error {
	errs := []error{c.RequireBroker()}

	if c.HTTPAddr == "" {
		errs = append(errs, fmt.Errorf("HTTP_ADDR is empty"))
	}
	if c.StripeSecretKey == "" {
		errs = append(errs, fmt.Errorf("STRIPE_SECRET_KEY is empty"))
	}
	if c.JWTSecret == "" {
		errs = append(errs, fmt.Errorf("JWT_SECRET is empty"))
	}
	if c.JWTTTL <= 0 {
		errs = append(errs, fmt.Errorf("JWT_TTL must be positive"))
	}
	if c.RedisURL != "" && c.IdempotencyTTL <= 0 {
		errs = append(errs, fmt.Errorf("IDEMPOTENCY_TTL must be positive"))
	}
	if _, err := c.CurrencyUnit(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}
