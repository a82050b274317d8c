package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/andreworkgit/MELI-list-products/internal/api"
	"github.com/andreworkgit/MELI-list-products/internal/api/middleware"
	"github.com/andreworkgit/MELI-list-products/internal/config"
	"github.com/andreworkgit/MELI-list-products/internal/repository"
	"github.com/andreworkgit/MELI-list-products/pkg/db"
	"github.com/andreworkgit/MELI-list-products/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("loading config")
	}
	logger.Init(cfg.Environment)

	var products repository.ProductStore
	var discounts repository.DiscountStore

	switch cfg.StoreBackend {
	case "postgres":
		pgCfg, err := db.LoadPostgresConfig()
		if err != nil {
			logger.Fatal().Err(err).Msg("loading db config")
		}
		conn, err := db.NewPostgresConnection(pgCfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("db connect")
		}
		defer conn.Close()
		if err := repository.EnsureSchema(context.Background(), conn); err != nil {
			logger.Fatal().Err(err).Msg("db schema")
		}
		products = repository.NewProductPG(conn)
		discounts = repository.NewDiscountPG(conn)
	default:
		products = repository.NewProductFile(cfg.DataDir)
		discounts = repository.NewDiscountFile(cfg.DataDir)
	}

	handler := api.NewRouter(products, discounts)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Mount("/", handler)

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// graceful shutdown
	idleConnsClosed := make(chan struct{})
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt)
		<-c
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error().Err(err).Msg("HTTP server shutdown")
		}
		close(idleConnsClosed)
	}()

	logger.Info().Str("addr", cfg.Addr).Str("store", cfg.StoreBackend).Msg("starting catalog-service")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal().Err(err).Msg("listen")
	}

	<-idleConnsClosed
	logger.Info().Msg("server stopped")
}
