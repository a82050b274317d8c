package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/andreworkgit/MELI-list-products/pkg/logger"
)

func (cfg PostgresConfig) dsn() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName, cfg.SSLMode,
	)
}

// NewPostgresConnection opens a pooled connection and verifies it with a
// short ping so a misconfigured backend fails at startup, not on the first
// request.
func NewPostgresConnection(cfg PostgresConfig) (*sql.DB, error) {
	conn, err := sql.Open("postgres", cfg.dsn())
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := conn.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("db ping failed: %w", err)
	}

	logger.Debug().Str("host", cfg.Host).Str("db", cfg.DBName).Msg("postgres connected")
	return conn, nil
}
