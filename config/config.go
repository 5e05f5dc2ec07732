package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Stripe   StripeConfig   `mapstructure:"stripe"`
	Jobs     JobsConfig     `mapstructure:"jobs"`
	Ops      OpsConfig      `mapstructure:"ops"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// StripeConfig holds the payment gateway credentials per mode.
// Mode selects which API key and webhook secret are active; inbound
// webhook signatures are verified against the active mode's secret.
type StripeConfig struct {
	Mode              string `mapstructure:"mode"` // live, test
	LiveAPIKey        string `mapstructure:"live_api_key"`
	TestAPIKey        string `mapstructure:"test_api_key"`
	LiveWebhookSecret string `mapstructure:"live_webhook_secret"`
	TestWebhookSecret string `mapstructure:"test_webhook_secret"`
	AccountID         string `mapstructure:"account_id"` // connected gateway account this install serves
}

// APIKey returns the API key for the active mode.
func (s StripeConfig) APIKey() string {
	if s.Mode == "live" {
		return s.LiveAPIKey
	}
	return s.TestAPIKey
}

// WebhookSecret returns the webhook signing secret for the active mode.
func (s StripeConfig) WebhookSecret() string {
	if s.Mode == "live" {
		return s.LiveWebhookSecret
	}
	return s.TestWebhookSecret
}

// JobsConfig holds the deferred-transition scheduler policy.
type JobsConfig struct {
	MaxAttempts  int           `mapstructure:"max_attempts"`  // retries after the first try
	RetryBackoff time.Duration `mapstructure:"retry_backoff"` // fixed delay between attempts
	PollInterval time.Duration `mapstructure:"poll_interval"` // worker claim frequency
	ClaimTimeout time.Duration `mapstructure:"claim_timeout"` // lock duration per claimed job
	BatchSize    int           `mapstructure:"batch_size"`    // max jobs claimed per poll
}

// OpsConfig holds the operator inspection API credentials.
type OpsConfig struct {
	KeyHash   string        `mapstructure:"key_hash"` // Argon2id hash of the operator key
	JWTSecret string        `mapstructure:"jwt_secret"`
	JWTExpiry time.Duration `mapstructure:"jwt_expiry"`
	JWTIssuer string        `mapstructure:"jwt_issuer"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: SPAY.
// Nested keys use underscore: SPAY_DATABASE_HOST, SPAY_STRIPE_MODE, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "subscription_events")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("stripe.mode", "test")
	v.SetDefault("stripe.live_api_key", "")
	v.SetDefault("stripe.test_api_key", "")
	v.SetDefault("stripe.live_webhook_secret", "")
	v.SetDefault("stripe.test_webhook_secret", "")
	v.SetDefault("stripe.account_id", "")
	v.SetDefault("jobs.max_attempts", 2)
	v.SetDefault("jobs.retry_backoff", "5m")
	v.SetDefault("jobs.poll_interval", "30s")
	v.SetDefault("jobs.claim_timeout", "2m")
	v.SetDefault("jobs.batch_size", 10)
	v.SetDefault("ops.key_hash", "")
	v.SetDefault("ops.jwt_secret", "")
	v.SetDefault("ops.jwt_expiry", "12h")
	v.SetDefault("ops.jwt_issuer", "spay-sub")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: SPAY_DATABASE_HOST -> database.host
	v.SetEnvPrefix("SPAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required — env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}
