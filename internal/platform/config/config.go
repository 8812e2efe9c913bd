package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Addr                 string        `env:"APP_ADDR" envDefault:":8080"`
	Environment          string        `env:"APP_ENV" envDefault:"development"`
	LogLevel             string        `env:"LOG_LEVEL" envDefault:"info"`
	JWTSecret            string        `env:"JWT_SECRET" envDefault:"dev-secret"`
	SessionTTL           time.Duration `env:"SESSION_TTL" envDefault:"12h"`
	SessionPurgeInterval time.Duration `env:"SESSION_PURGE_INTERVAL" envDefault:"1h"`
	DatabaseURL          string        `env:"DATABASE_URL"`
	DBMaxConns           int32         `env:"DB_MAX_CONNS" envDefault:"10"`
	RunMigrations        bool          `env:"RUN_MIGRATIONS" envDefault:"true"`
	SeedDemoData         bool          `env:"SEED_DEMO_DATA" envDefault:"true"`
	MaxBodyBytes         int64         `env:"MAX_BODY_BYTES" envDefault:"1048576"`
	LoginRatePerMinute   int           `env:"LOGIN_RATE_PER_MINUTE" envDefault:"10"`
	RateLimitPerMinute   int           `env:"RATE_LIMIT_PER_MINUTE" envDefault:"600"`
	MetricsEnabled       bool          `env:"METRICS_ENABLED" envDefault:"true"`
	Email                Email
	Kafka                Kafka
}

type Email struct {
	Enabled  bool   `env:"EMAIL_ENABLED" envDefault:"false"`
	From     string `env:"EMAIL_FROM" envDefault:"no-reply@example.com"`
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT" envDefault:"587"`
	User     string `env:"SMTP_USER"`
	Password string `env:"SMTP_PASSWORD"`
}

type Kafka struct {
	Brokers     []string `env:"KAFKA_BROKERS"`
	EventsTopic string   `env:"KAFKA_EVENTS_TOPIC" envDefault:"hrportal.lifecycle"`
}

// Load reads an optional dotenv file and then the process environment.
func Load(envPath string) (Config, error) {
	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envPath, err)
		}
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Environment == "production" {
		if strings.TrimSpace(c.JWTSecret) == "" || c.JWTSecret == "dev-secret" {
			return fmt.Errorf("JWT_SECRET must be set to a strong value in production")
		}
		if c.SeedDemoData {
			return fmt.Errorf("SEED_DEMO_DATA must be disabled in production")
		}
	}
	if strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.LoginRatePerMinute <= 0 {
		return fmt.Errorf("LOGIN_RATE_PER_MINUTE must be positive")
	}
	if c.RateLimitPerMinute < 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must not be negative")
	}
	if c.Email.Enabled && c.Email.Host == "" {
		return fmt.Errorf("SMTP_HOST must be set when EMAIL_ENABLED is true")
	}
	return nil
}

func (c Config) PersistenceEnabled() bool {
	return strings.TrimSpace(c.DatabaseURL) != ""
}
