// Package config loads service configuration from an optional .env file and the
// environment using Viper.
package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"

	pstrings "dochub/pkg/platform/strings"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string        `mapstructure:"DOCHUB_ADDR"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
	AdminToken      string        `mapstructure:"ADMIN_TOKEN"`
	Env             string        `mapstructure:"APP_ENV"`
	AllowedOrigins  string        `mapstructure:"CORS_ALLOWED_ORIGINS"`
}

// AuthConfig controls session tokens and password hashing.
type AuthConfig struct {
	JWTSigningKey    string        `mapstructure:"JWT_SIGNING_KEY"`
	JWTIssuer        string        `mapstructure:"JWT_ISSUER"`
	SessionTTL       time.Duration `mapstructure:"SESSION_TTL"`
	RememberMeTTL    time.Duration `mapstructure:"REMEMBER_ME_TTL"`
	BcryptCost       int           `mapstructure:"BCRYPT_COST"`
	MaxUploadBytes   int64         `mapstructure:"MAX_UPLOAD_BYTES"`
	SeedDemoAccounts bool          `mapstructure:"SEED_DEMO_DATA"`
}

// RedisConfig configures the optional Redis backend for sessions and rate limits.
type RedisConfig struct {
	URL          string        `mapstructure:"REDIS_URL"`
	PoolSize     int           `mapstructure:"REDIS_POOL_SIZE"`
	MinIdleConns int           `mapstructure:"REDIS_MIN_IDLE_CONNS"`
	DialTimeout  time.Duration `mapstructure:"REDIS_DIAL_TIMEOUT"`
	ReadTimeout  time.Duration `mapstructure:"REDIS_READ_TIMEOUT"`
	WriteTimeout time.Duration `mapstructure:"REDIS_WRITE_TIMEOUT"`
}

// DatabaseConfig configures the optional PostgreSQL backend.
type DatabaseConfig struct {
	URL             string        `mapstructure:"DATABASE_URL"`
	MaxOpenConns    int           `mapstructure:"DB_MAX_OPEN_CONNS"`
	MaxIdleConns    int           `mapstructure:"DB_MAX_IDLE_CONNS"`
	ConnMaxLifetime time.Duration `mapstructure:"DB_CONN_MAX_LIFETIME"`
	AutoMigrate     bool          `mapstructure:"DB_AUTO_MIGRATE"`
}

// KafkaConfig configures the optional audit event stream.
type KafkaConfig struct {
	Brokers    string `mapstructure:"KAFKA_BROKERS"`
	AuditTopic string `mapstructure:"KAFKA_AUDIT_TOPIC"`
}

// RateLimitConfig bounds public form posts per client IP.
type RateLimitConfig struct {
	LoginAttempts    int           `mapstructure:"RATE_LIMIT_LOGIN"`
	ResetAttempts    int           `mapstructure:"RATE_LIMIT_RESET"`
	RegisterAttempts int           `mapstructure:"RATE_LIMIT_REGISTER"`
	Window           time.Duration `mapstructure:"RATE_LIMIT_WINDOW"`
	Disabled         bool          `mapstructure:"RATE_LIMIT_DISABLED"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `mapstructure:"LOG_LEVEL"`
	Format string `mapstructure:"LOG_FORMAT"`
}

// Config is the full service configuration.
type Config struct {
	Server    Server          `mapstructure:",squash"`
	Auth      AuthConfig      `mapstructure:",squash"`
	Redis     RedisConfig     `mapstructure:",squash"`
	Database  DatabaseConfig  `mapstructure:",squash"`
	Kafka     KafkaConfig     `mapstructure:",squash"`
	RateLimit RateLimitConfig `mapstructure:",squash"`
	Log       LogConfig       `mapstructure:",squash"`
}

const devSigningKey = "dev-secret-key-change-in-production"

var defaults = map[string]any{
	"DOCHUB_ADDR":          ":8080",
	"SHUTDOWN_TIMEOUT":     "10s",
	"ADMIN_TOKEN":          "",
	"APP_ENV":              "development",
	"CORS_ALLOWED_ORIGINS": "",
	"JWT_SIGNING_KEY":      devSigningKey,
	"JWT_ISSUER":           "dochub",
	"SESSION_TTL":          "12h",
	"REMEMBER_ME_TTL":      "720h",
	"BCRYPT_COST":          12,
	"MAX_UPLOAD_BYTES":     32 << 20,
	"SEED_DEMO_DATA":       false,
	"REDIS_URL":            "",
	"REDIS_POOL_SIZE":      10,
	"REDIS_MIN_IDLE_CONNS": 2,
	"REDIS_DIAL_TIMEOUT":   "5s",
	"REDIS_READ_TIMEOUT":   "3s",
	"REDIS_WRITE_TIMEOUT":  "3s",
	"DATABASE_URL":         "",
	"DB_MAX_OPEN_CONNS":    20,
	"DB_MAX_IDLE_CONNS":    5,
	"DB_CONN_MAX_LIFETIME": "30m",
	"DB_AUTO_MIGRATE":      false,
	"KAFKA_BROKERS":        "",
	"KAFKA_AUDIT_TOPIC":    "dochub.audit",
	"RATE_LIMIT_LOGIN":     10,
	"RATE_LIMIT_RESET":     5,
	"RATE_LIMIT_REGISTER":  5,
	"RATE_LIMIT_DISABLED":  false,
	"RATE_LIMIT_WINDOW":    "1m",
	"LOG_LEVEL":            "info",
	"LOG_FORMAT":           "json",
}

// Load reads .env (if present), then the environment. Env vars override .env.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // a missing .env is fine

	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Addr == "" {
		return errors.New("config: DOCHUB_ADDR must be set")
	}
	if c.Server.Env == "production" && c.Auth.JWTSigningKey == devSigningKey {
		return errors.New("config: JWT_SIGNING_KEY must be overridden when APP_ENV=production")
	}
	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		return errors.New("config: BCRYPT_COST must be between 4 and 31")
	}
	if c.Auth.SessionTTL <= 0 || c.Auth.RememberMeTTL < c.Auth.SessionTTL {
		return errors.New("config: REMEMBER_ME_TTL must be at least SESSION_TTL and both positive")
	}
	return nil
}

// AllowedOrigins returns the CORS origin list, or nil when CORS is off.
func (c *Config) AllowedOrigins() []string {
	return pstrings.SplitList(c.Server.AllowedOrigins, ",")
}

// KafkaBrokers returns the configured broker list, or nil when Kafka is disabled.
func (c *Config) KafkaBrokers() []string {
	return pstrings.SplitList(c.Kafka.Brokers, ",")
}
