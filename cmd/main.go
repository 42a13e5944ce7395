package main

import (
	"Coin-Loyalty-Backend/cmd/config"
	migration "Coin-Loyalty-Backend/cmd/database/migrate"
	"Coin-Loyalty-Backend/internal/metrics"
	"Coin-Loyalty-Backend/internal/utils"
	"Coin-Loyalty-Backend/internal/utils/cache"
	applog "Coin-Loyalty-Backend/internal/utils/logger"
	"Coin-Loyalty-Backend/pkg/catalog"
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

func main() {
	utils.LoadConfig()

	logger, err := applog.New(utils.GetConfig("APP_ENV"), utils.GetConfig("LOG_LEVEL"))
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(logger *zap.Logger) error {
	db, err := config.ConnectDB()
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("database handle: %w", err)
	}
	defer sqlDB.Close()

	if err := migration.Migrate(db); err != nil {
		return err
	}
	logger.Info("database migrated")

	m := metrics.Registry(utils.GetConfig("METRICS_NAMESPACE"))

	var catalogCache catalog.Cache
	if addr := utils.GetConfig("REDIS_ADDR"); addr != "" {
		rdb := cache.New(cache.Config{
			Addr:     addr,
			Password: utils.GetConfig("REDIS_PASSWORD"),
			DB:       utils.GetConfigInt("REDIS_DB", 0),
			UseTLS:   utils.GetConfigBool("REDIS_TLS"),
		}, logger)
		defer rdb.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := rdb.Ping(ctx)
		cancel()
		if err != nil {
			logger.Warn("redis unavailable, catalog cache disabled", zap.Error(err))
		} else {
			catalogCache = rdb
		}
	}

	app, accessLog, err := config.NewApp(db, logger, m, catalogCache)
	if err != nil {
		return err
	}
	defer accessLog.Close()

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + utils.GetConfig("APP_PORT")
		logger.Info("http server listening", zap.String("addr", addr))
		errCh <- app.Listen(addr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	}

	return app.ShutdownWithTimeout(10 * time.Second)
}
