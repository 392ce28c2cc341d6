// Package config loads the application configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// DefaultShortCodeAlphabet is the character set short codes are drawn from.
const DefaultShortCodeAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Config is the root configuration of the API server and the manage command.
type Config struct {
	Env       string `env:"APP_ENV" env-default:"local"`
	HTTP      HTTP
	Database  Database
	Redis     Redis
	JWT       JWT
	Media     Media
	S3        S3
	ShortCode ShortCode
}

// HTTP holds the listener settings.
type HTTP struct {
	Addr            string        `env:"HTTP_ADDR" env-default:":8080"`
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"30s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"10s"`
	AllowedOrigins  []string      `env:"CORS_ALLOWED_ORIGINS" env-separator:"," env-default:"http://localhost:3000"`
}

// Database holds the relational store settings.
// Driver is either "postgres" or "sqlite".
type Database struct {
	Driver         string        `env:"DB_DRIVER" env-default:"postgres"`
	Host           string        `env:"DB_HOST" env-default:"localhost"`
	Port           string        `env:"DB_PORT" env-default:"5432"`
	User           string        `env:"DB_USER" env-default:"foodgram"`
	Password       string        `env:"DB_PASSWORD"`
	Name           string        `env:"DB_NAME" env-default:"foodgram"`
	SSLMode        string        `env:"DB_SSLMODE" env-default:"disable"`
	SQLitePath     string        `env:"DB_SQLITE_PATH" env-default:"foodgram.db"`
	ConnectTimeout time.Duration `env:"DB_CONNECT_TIMEOUT" env-default:"60s"`
	RunMigrations  bool          `env:"RUN_MIGRATIONS" env-default:"true"`
}

// Redis holds the session store settings. An empty Host disables Redis.
type Redis struct {
	Host     string `env:"REDIS_HOST"`
	Port     string `env:"REDIS_PORT" env-default:"6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" env-default:"0"`
}

// Enabled reports whether a Redis host is configured.
func (r Redis) Enabled() bool {
	return r.Host != ""
}

// Addr returns host:port.
func (r Redis) Addr() string {
	return r.Host + ":" + r.Port
}

// JWT holds the token signing settings.
type JWT struct {
	Secret      string        `env:"JWT_SECRET"`
	TTL         time.Duration `env:"JWT_TTL" env-default:"168h"`
	MaxSessions int           `env:"JWT_MAX_SESSIONS" env-default:"5"`
}

// Media selects where uploaded images are stored. Backend is "local" or "s3".
type Media struct {
	Backend string `env:"MEDIA_BACKEND" env-default:"local"`
	Root    string `env:"MEDIA_ROOT" env-default:"media"`
	URL     string `env:"MEDIA_URL" env-default:"/media/"`
}

// S3 holds the settings of an S3-compatible bucket.
type S3 struct {
	Bucket    string        `env:"S3_BUCKET"`
	Region    string        `env:"S3_REGION" env-default:"us-east-1"`
	Endpoint  string        `env:"S3_ENDPOINT"`
	AccessKey string        `env:"S3_ACCESS_KEY"`
	SecretKey string        `env:"S3_SECRET_KEY"`
	PublicURL string        `env:"S3_PUBLIC_URL"`
	Timeout   time.Duration `env:"S3_TIMEOUT" env-default:"30s"`
}

// ShortCode configures recipe short-link generation.
type ShortCode struct {
	Alphabet    string `env:"SHORT_CODE_ALPHABET"`
	MaxAttempts int    `env:"SHORT_CODE_MAX_ATTEMPTS" env-default:"64"`
}

// Load reads the configuration from environment variables and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.ShortCode.Alphabet == "" {
		c.ShortCode.Alphabet = DefaultShortCodeAlphabet
	}
	if c.ShortCode.MaxAttempts <= 0 {
		return fmt.Errorf("SHORT_CODE_MAX_ATTEMPTS must be positive, got %d", c.ShortCode.MaxAttempts)
	}
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	switch c.Media.Backend {
	case "local":
	case "s3":
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required when MEDIA_BACKEND=s3")
		}
	default:
		return fmt.Errorf("unsupported MEDIA_BACKEND %q", c.Media.Backend)
	}
	return nil
}

// Usage returns a description of every supported environment variable.
func Usage() string {
	var cfg Config
	text, err := cleanenv.GetDescription(&cfg, nil)
	if err != nil {
		return err.Error()
	}
	return text
}
