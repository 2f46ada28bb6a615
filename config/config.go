package config

import (
	"fmt"
	"time"

	"github.com/aslanbek-j/accounts-service/pkg/configparser"
)

// Config contains all configuration variables of the application
type (
	Config struct {
		Server   ServerConfig
		Database DatabaseConfig
		RabbitMQ RabbitMQConfig
		Auth     Auth

		LogLevel string `env:"LOG_LEVEL" default:"INFO"`
	}

	ServerConfig struct {
		Host string `env:"SERVER_HOST" default:"0.0.0.0"`
		Port string `env:"SERVER_PORT" default:"3000"`
	}

	DatabaseConfig struct {
		Host     string `env:"DATABASE_HOST" default:"localhost"`
		Port     string `env:"DATABASE_PORT" default:"5432"`
		User     string `env:"DATABASE_USER" default:"accounts_user"`
		Password string `env:"DATABASE_PASSWORD" default:"accounts_pass"`
		Database string `env:"DATABASE_DATABASE" default:"accounts_db"`

		MaxConns        int32         `env:"DATABASE_MAXCONNS" default:"20"`
		MinConns        int32         `env:"DATABASE_MINCONNS" default:"2"`
		MaxConnLifetime time.Duration `env:"DATABASE_MAXCONNLIFETIME" default:"30m"`
		MaxConnIdleTime time.Duration `env:"DATABASE_MAXCONNIDLETIME" default:"5m"`
	}

	RabbitMQConfig struct {
		Enabled  bool   `env:"RABBITMQ_ENABLED" default:"false"`
		Host     string `env:"RABBITMQ_HOST" default:"localhost"`
		Port     string `env:"RABBITMQ_PORT" default:"5672"`
		User     string `env:"RABBITMQ_USER" default:"guest"`
		Password string `env:"RABBITMQ_PASSWORD" default:"guest"`
	}

	Auth struct {
		AccessTokenTTL  time.Duration `env:"AUTH_ACCESS_TOKEN_TTL" default:"15m"`
		RefreshTokenTTL time.Duration `env:"AUTH_REFRESH_TOKEN_TTL" default:"168h"`
		JWTSecret       string        `env:"AUTH_JWT_SECRET" default:"supersecretkey"`
	}
)

func (c DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

func (c RabbitMQConfig) GetDSN() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%s/",
		c.User,
		c.Password,
		c.Host,
		c.Port,
	)
}

func NewConfig(filepath string) (*Config, error) {
	cfg := &Config{}

	// Loading enviromental variables and parsing to config struct.
	if err := configparser.LoadAndParseYaml(filepath, cfg); err != nil {
		return nil, fmt.Errorf("failed to load and parse config: %w", err)
	}

	return cfg, nil
}
