package db

import (
	"github.com/kelseyhightower/envconfig"
)

type PostgresConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     int    `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"postgres"`
	Password string `envconfig:"DB_PASSWORD"`
	DBName   string `envconfig:"DB_NAME" default:"catalog"`
	SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
}

func LoadPostgresConfig() (PostgresConfig, error) {
	var cfg PostgresConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return PostgresConfig{}, err
	}
	return cfg, nil
}
