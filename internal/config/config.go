package config

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds the service-level settings. The postgres backend reads its own
// DB_* settings via pkg/db.
type Config struct {
	Addr         string `envconfig:"HTTP_ADDR" default:":8080"`
	Environment  string `envconfig:"APP_ENV" default:"development"`
	StoreBackend string `envconfig:"STORE_BACKEND" default:"file"` // file | postgres
	DataDir      string `envconfig:"DATA_DIR" default:"data"`
}

func Load() (Config, error) {
	_ = godotenv.Load() // load .env if it exists

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
