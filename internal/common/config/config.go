package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"secret-santa-backend/internal/common/validation"
)

type Config struct {
	Debug bool `env:"DEBUG" envDefault:"false"`

	Server struct {
		Port         int           `env:"PORT" envDefault:"8080"`
		AllowOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
		ReadTimeout  time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
		WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"15s"`
		IdleTimeout  time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"60s"`
	}

	Postgres struct {
		// DATABASE_URL, when set, wins over the individual fields below.
		URL      string `env:"DATABASE_URL"`
		Host     string `env:"POSTGRES_HOST" envDefault:"localhost"`
		Port     int    `env:"POSTGRES_PORT" envDefault:"5432"`
		User     string `env:"POSTGRES_USER" envDefault:"postgres"`
		Password string `env:"POSTGRES_PASSWORD" envDefault:""`
		Database string `env:"POSTGRES_DB" envDefault:"santa"`
		SSLMode  string `env:"POSTGRES_SSLMODE" envDefault:"disable"`

		MaxOpenConns    int           `env:"POSTGRES_MAX_OPEN_CONNS" envDefault:"10"`
		MaxIdleConns    int           `env:"POSTGRES_MAX_IDLE_CONNS" envDefault:"5"`
		ConnMaxLifetime time.Duration `env:"POSTGRES_CONN_MAX_LIFETIME" envDefault:"30m"`

		AutoMigrate bool `env:"DB_AUTO_MIGRATE" envDefault:"false"`
	}

	Redis struct {
		Enabled  bool   `env:"REDIS_ENABLED" envDefault:"true"`
		Host     string `env:"REDIS_HOST" envDefault:"localhost"`
		Port     int    `env:"REDIS_PORT" envDefault:"6379"`
		Password string `env:"REDIS_PASSWORD" envDefault:""`
		DB       int    `env:"REDIS_DB" envDefault:"0"`

		PoolSize     int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
		MinIdleConns int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2"`
		DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s"`
		ReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT" envDefault:"3s"`
	}

	Santa struct {
		CodePrefix              string        `env:"CODE_PREFIX" envDefault:"MVT"`
		DefaultParticipantCount int           `env:"DEFAULT_PARTICIPANT_COUNT" envDefault:"5"`
		DefaultRules            string        `env:"DEFAULT_RULES" envDefault:"Rules not specified"`
		LookupCacheTTL          time.Duration `env:"LOOKUP_CACHE_TTL" envDefault:"10m"`
		EventsStream            string        `env:"EVENTS_STREAM" envDefault:"santa:events"`

		// Inbound registration requests from the chat bot.
		BotStream         string `env:"BOT_STREAM" envDefault:"santa:bot"`
		BotStreamWorker   bool   `env:"BOT_STREAM_WORKER" envDefault:"false"`
		BotStreamConsumer string `env:"BOT_STREAM_CONSUMER" envDefault:"santa-backend-1"`
	}

	Telegram struct {
		// Empty token disables init-data authentication for /me routes.
		BotToken    string        `env:"BOT_TOKEN"`
		InitDataTTL time.Duration `env:"INIT_DATA_TTL" envDefault:"24h"`
	}
}

// GetDSN builds the lib/pq connection string.
func (c *Config) GetDSN() string {
	p := c.Postgres
	if p.URL != "" {
		return p.URL
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode)
}

// RedisAddr returns host:port of the redis server.
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

func Load() (*Config, error) {
	// .env is optional, in production the variables come from the environment
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	prefix, err := validation.NormalizeCodePrefix(c.Santa.CodePrefix)
	if err != nil {
		return fmt.Errorf("invalid CODE_PREFIX: %w", err)
	}
	c.Santa.CodePrefix = prefix
	if c.Santa.DefaultParticipantCount < 1 {
		return fmt.Errorf("DEFAULT_PARTICIPANT_COUNT must be at least 1, got %d", c.Santa.DefaultParticipantCount)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid PORT: %d", c.Server.Port)
	}
	return nil
}
