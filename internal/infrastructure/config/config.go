package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,       default=8080"`
	Env       string        `env:"ENV,        default=development"`
	LogLevel  string        `env:"LOG_LEVEL,  default=info"`
	JWTSecret string        `env:"JWT_SECRET, required"`
	JWTTTL    time.Duration `env:"JWT_TTL,    default=24h"`

	Mongo  MongoConfig
	Redis  RedisConfig
	Login  LoginConfig
	Notify NotifyConfig
	SMTP   SMTPConfig
	NATS   NATSConfig
}

// QuizConfig is the much smaller configuration of the quiz API.
type QuizConfig struct {
	Port     string `env:"QUIZ_PORT, default=5000"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=jobboard"`
}

type RedisConfig struct {
	Addr        string        `env:"REDIS_ADDR,         default=localhost:6379"`
	Password    string        `env:"REDIS_PASSWORD"`
	DB          int           `env:"REDIS_DB,           default=0"`
	FeaturedTTL time.Duration `env:"FEATURED_CACHE_TTL, default=5m"`
}

type LoginConfig struct {
	MaxAttempts int           `env:"LOGIN_MAX_ATTEMPTS, default=5"`
	Window      time.Duration `env:"LOGIN_WINDOW,       default=15m"`
}

// NotifyConfig selects how notifications leave the process: "smtp", "nats"
// or "log".
type NotifyConfig struct {
	Driver  string `env:"NOTIFY_DRIVER,  default=log"`
	Workers int    `env:"NOTIFY_WORKERS, default=4"`
}

type SMTPConfig struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT,     default=587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM,     default=JobBoard <no-reply@jobboard.local>"`
}

type NATSConfig struct {
	URL     string `env:"NATS_URL,     default=nats://localhost:4222"`
	Subject string `env:"NATS_SUBJECT, default=jobboard.notifications"`
}

// IsProduction reports whether ENV selects production behaviour.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads a .env file when present, then the environment.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: read .env: %w", err)
	}
	return process(ctx, nil)
}

// LoadQuiz reads the quiz API configuration.
func LoadQuiz(ctx context.Context) (*QuizConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: read .env: %w", err)
	}
	return processQuiz(ctx, envconfig.OsLookuper())
}

func processQuiz(ctx context.Context, lookuper envconfig.Lookuper) (*QuizConfig, error) {
	var cfg QuizConfig
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// process decodes the configuration. A nil lookuper reads the OS environment.
func process(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	ec := &envconfig.Config{Target: &cfg, Lookuper: lookuper}
	if lookuper == nil {
		ec.Lookuper = envconfig.OsLookuper()
	}
	if err := envconfig.ProcessWith(ctx, ec); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	switch cfg.Notify.Driver {
	case "smtp", "nats", "log":
	default:
		return nil, fmt.Errorf("config: NOTIFY_DRIVER must be smtp, nats or log, got %q", cfg.Notify.Driver)
	}
	if cfg.Notify.Driver == "smtp" && cfg.SMTP.Host == "" {
		return nil, errors.New("config: SMTP_HOST is required when NOTIFY_DRIVER=smtp")
	}
	return &cfg, nil
}
