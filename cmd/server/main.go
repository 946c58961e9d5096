package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/warungkita/storefront-api/internal/api"
	mongodb "github.com/warungkita/storefront-api/internal/infrastructure/db/mongo"
	redisdb "github.com/warungkita/storefront-api/internal/infrastructure/db/redis"
	"github.com/warungkita/storefront-api/internal/pkg/config"
	"github.com/warungkita/storefront-api/pkg/logger"
)

// @title        Storefront API
// @version      1.0
// @description  Product catalog, per-user cart, checkout and order lifecycle.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	seed := flag.Bool("seed", false, "seed the catalog with sample products when empty")
	flag.Parse()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	if err := ensureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	if *seed {
		if err := mongodb.SeedProducts(ctx, db, log); err != nil {
			log.Fatal().Err(err).Msg("catalog seeding failed")
		}
	}

	e := api.NewRouter(cfg, db, rdb, log)

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// ensureIndexes creates every index the repositories rely on, including the
// unique constraints that make the cart merge and admin bootstrap race-safe.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	for _, idx := range []interface{ EnsureIndexes(context.Context) error }{
		mongodb.NewProductRepository(db),
		mongodb.NewCartRepository(db),
		mongodb.NewOrderRepository(db),
		mongodb.NewAdminRepository(db),
		mongodb.NewAuthRepository(db),
	} {
		if err := idx.EnsureIndexes(ctx); err != nil {
			return err
		}
	}
	return nil
}
