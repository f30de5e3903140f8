package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
)

type Environment string

const (
	EnvLocal      Environment = "local"
	EnvDev        Environment = "dev"
	EnvStage      Environment = "stage"
	EnvProduction Environment = "production"
)

type MatchMode string

const (
	// Слот занят, если метка записи совпадает с меткой слота
	MatchModeLabel MatchMode = "label"
	// Слот занят, если интервал записи пересекается с интервалом слота
	MatchModeOverlap MatchMode = "overlap"
)

type ConfigAdmin struct {
	Username     string
	PasswordHash string
}

type Config struct {
	App struct {
		Version  string      `env:"APP_VERSION" envDefault:"local"`
		Env      Environment `env:"APP_ENV" envDefault:"local"`
		Timezone string      `env:"APP_TIMEZONE" envDefault:"UTC"`
		LogLevel string      `env:"APP_LOG_LEVEL" envDefault:"debug"`
		Location *time.Location
	}

	HTTP struct {
		Port            string        `env:"HTTP_SERVER_PORT" envDefault:"8080"`
		Host            string        `env:"HTTP_SERVER_HOST" envDefault:"localhost"`
		ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	}

	Clinic struct {
		OpenTime  string    `env:"CLINIC_OPEN_TIME" envDefault:"09:30"`
		CloseTime string    `env:"CLINIC_CLOSE_TIME" envDefault:"20:00"`
		MatchMode MatchMode `env:"BOOKING_MATCH_MODE" envDefault:"label"`
	}

	Auth struct {
		AdminsString string        `env:"AUTH_ADMINS"`
		Admins       []ConfigAdmin
		JWTSecret    string        `env:"AUTH_JWT_SECRET"`
		TokenTTL     time.Duration `env:"AUTH_TOKEN_TTL" envDefault:"1h"`
	}

	RateLimit struct {
		RPS        float64 `env:"RATE_LIMIT_RPS" envDefault:"5"`
		Burst      int     `env:"RATE_LIMIT_BURST" envDefault:"10"`
		MaxClients int     `env:"RATE_LIMIT_MAX_CLIENTS" envDefault:"10000"`
	}

	RabbitMQ struct {
		Enabled  bool   `env:"RABBITMQ_ENABLED"`
		URL      string `env:"RABBITMQ_URL"`
		Exchange string `env:"RABBITMQ_EXCHANGE" envDefault:"clinic.booking"`
		Queue    string `env:"RABBITMQ_QUEUE" envDefault:"booking-svc.cache"`
		Bind     string `env:"RABBITMQ_BIND" envDefault:"*.booking-svc.*.invalidate"`
	}

	Cache struct {
		Enabled   bool `env:"CACHE_ENABLED"`
		SlotsSize int  `env:"CACHE_SLOTS_SIZE" envDefault:"1000"`
	}
}

func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) normalize() error {
	// Приведение окружения к нижнему регистру для унификации
	c.App.Env = Environment(strings.ToLower(string(c.App.Env)))
	c.Clinic.MatchMode = MatchMode(strings.ToLower(string(c.Clinic.MatchMode)))

	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return fmt.Errorf("config.app.timezone: %w", err)
	}
	c.App.Location = loc

	if c.Clinic.MatchMode != MatchModeLabel && c.Clinic.MatchMode != MatchModeOverlap {
		return fmt.Errorf("config.clinic.match_mode: unsupported value %q", c.Clinic.MatchMode)
	}

	if c.Cache.Enabled && c.Cache.SlotsSize <= 0 {
		return fmt.Errorf("config.cache.slots_size: must be positive, got %d", c.Cache.SlotsSize)
	}

	// Разбор администраторов: "user:bcrypt-hash,user2:bcrypt-hash"
	c.Auth.Admins = []ConfigAdmin{}
	if c.Auth.AdminsString != "" {
		for _, pair := range strings.Split(c.Auth.AdminsString, ",") {
			parts := strings.SplitN(strings.TrimSpace(pair), ":", 2)
			if len(parts) == 2 && parts[0] != "" && parts[1] != "" {
				c.Auth.Admins = append(c.Auth.Admins, ConfigAdmin{
					Username:     parts[0],
					PasswordHash: parts[1],
				})
			}
		}
	}

	if len(c.Auth.Admins) > 0 && c.Auth.JWTSecret == "" {
		return fmt.Errorf("config.auth.jwt_secret: required when AUTH_ADMINS is set")
	}

	if c.RabbitMQ.Enabled && c.RabbitMQ.URL == "" {
		return fmt.Errorf("config.rabbitmq.url: required when RABBITMQ_ENABLED is set")
	}

	return nil
}

func (c *Config) IsLocal() bool {
	return c.App.Env == EnvLocal
}

func (c *Config) IsNotLocal() bool {
	return c.App.Env == EnvDev || c.App.Env == EnvStage || c.App.Env == EnvProduction
}
