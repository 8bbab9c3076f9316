// Package main runs the ad board HTTP server with graceful shutdown.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/edaterlove/adboard/config"
	"github.com/edaterlove/adboard/internal/ads"
	"github.com/edaterlove/adboard/internal/checkout"
	"github.com/edaterlove/adboard/internal/webhooks"
	"github.com/edaterlove/adboard/pkg/airtable"
	"github.com/edaterlove/adboard/pkg/database"
	"github.com/edaterlove/adboard/pkg/lemonsqueezy"
	"github.com/edaterlove/adboard/pkg/metrics"
	"github.com/edaterlove/adboard/pkg/redis"
	"github.com/edaterlove/adboard/pkg/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("load config", zap.Error(err))
	}

	logger := newLogger(cfg.LogLevel)
	defer logger.Sync()

	ctx := context.Background()

	var store ads.Gateway
	switch cfg.Store.Kind {
	case config.StorePostgres:
		pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), logger)
		if err != nil {
			logger.Fatal("database", zap.Error(err))
		}
		defer pool.Close()
		if err := database.Migrate(ctx, pool, logger); err != nil {
			logger.Fatal("migrate", zap.Error(err))
		}
		store = ads.NewRepository(pool)
	default:
		client, err := airtable.NewClient(airtable.Config{
			Endpoint: cfg.Airtable.Endpoint,
			APIKey:   cfg.Airtable.APIKey,
			BaseID:   cfg.Airtable.BaseID,
		}, logger)
		if err != nil {
			logger.Fatal("airtable", zap.Error(err))
		}
		store = ads.NewAirtableGateway(client, cfg.Airtable.Table)
	}
	logger.Info("ad store selected", zap.String("store", cfg.Store.Kind))

	recorder := metrics.Recorder{}
	cache := ads.NewCache(store, ads.CacheTTL,
		ads.WithObserver(recorder),
		ads.WithLogger(logger),
	)

	webhookOpts := []webhooks.Option{webhooks.WithObserver(recorder)}
	if cfg.Redis.Addr != "" {
		rdb, err := redis.NewClient(ctx, redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, logger)
		if err != nil {
			logger.Fatal("redis", zap.Error(err))
		}
		defer rdb.Close()
		webhookOpts = append(webhookOpts, webhooks.WithLedger(webhooks.NewRedisLedger(rdb.Client, cfg.Redis.OrderTTL)))
	} else {
		logger.Warn("order ledger disabled (REDIS_ADDR not set); redelivered orders create duplicate ads")
	}

	if cfg.AWS.ArchiveBucket != "" {
		archive, err := storage.NewS3(ctx, storage.S3Config{
			Region:          cfg.AWS.Region,
			AccessKeyID:     cfg.AWS.AccessKeyID,
			SecretAccessKey: cfg.AWS.SecretAccessKey,
			Bucket:          cfg.AWS.ArchiveBucket,
			Prefix:          cfg.AWS.ArchivePrefix,
		}, logger)
		if err != nil {
			logger.Warn("webhook archive disabled", zap.Error(err))
		} else {
			webhookOpts = append(webhookOpts, webhooks.WithArchive(archive))
		}
	}

	lemon, err := lemonsqueezy.NewClient(lemonsqueezy.Config{
		Endpoint:  cfg.LemonSqueezy.Endpoint,
		APIKey:    cfg.LemonSqueezy.APIKey,
		StoreID:   cfg.LemonSqueezy.StoreID,
		VariantID: cfg.LemonSqueezy.VariantID,
	}, logger)
	if err != nil {
		logger.Fatal("lemonsqueezy", zap.Error(err))
	}

	router := newRouter(routerDeps{
		ads:          ads.NewHandler(cache, store, logger),
		checkout:     checkout.NewHandler(lemon, cfg.FrontendURL, logger),
		webhook:      webhooks.NewHandler([]byte(cfg.LemonSqueezy.SigningSecret), store, cache, logger, webhookOpts...),
		corsOrigins:  cfg.Server.CORSAllowedOrigins,
		directCreate: cfg.Server.DirectCreateEnabled,
		logger:       logger,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger(level string) *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if lvl, err := zapcore.ParseLevel(level); err == nil {
		config.Level = zap.NewAtomicLevelAt(lvl)
	}
	logger, _ := config.Build()
	return logger
}
