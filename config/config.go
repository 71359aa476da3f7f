package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	ListenAddr string `env:"API_LISTEN_ADDR" env-default:":8080"`
	Database   DatabaseConfig
	Redis      RedisConfig
	Auth       AuthConfig
	S3         S3Config
}

type DatabaseConfig struct {
	User     string `env:"DATABASE_USER" env-required:"true"`
	Password string `env:"DATABASE_PASSWORD" env-required:"true"`
	Host     string `env:"DATABASE_HOST" env-default:"db"`
	Port     string `env:"DATABASE_PORT" env-default:"5432"`
	Name     string `env:"DATABASE_NAME" env-required:"true"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR" env-default:"redis:6379"`
	Password string `env:"REDIS_PASSWORD" env-default:""`
}

type AuthConfig struct {
	TokenExpiry time.Duration `env:"AUTH_TOKEN_EXPIRY" env-default:"24h"`
}

type S3Config struct {
	Endpoint  string        `env:"S3_ENDPOINT" env-required:"true"`
	Region    string        `env:"S3_REGION" env-default:"us-east-1"`
	AccessKey string        `env:"S3_ACCESS_KEY" env-required:"true"`
	SecretKey string        `env:"S3_SECRET_KEY" env-required:"true"`
	Bucket    string        `env:"S3_BUCKET" env-default:"media"`
	URLExpiry time.Duration `env:"S3_URL_EXPIRY" env-default:"15m"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s", d.User, d.Password, d.Host, d.Port, d.Name)
}

func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}
	return cfg, nil
}
