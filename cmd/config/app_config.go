package config

import (
	"Coin-Loyalty-Backend/internal/api/handlers"
	"Coin-Loyalty-Backend/internal/api/routes"
	"Coin-Loyalty-Backend/internal/metrics"
	"Coin-Loyalty-Backend/internal/middleware"
	"Coin-Loyalty-Backend/internal/utils"
	"Coin-Loyalty-Backend/pkg/catalog"
	"Coin-Loyalty-Backend/pkg/customer"
	"Coin-Loyalty-Backend/pkg/jwt"
	"Coin-Loyalty-Backend/pkg/purchase"
	"Coin-Loyalty-Backend/pkg/redemption"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NewApp wires repositories, services and handlers onto a Fiber app.
// cache may be nil, in which case the catalog reads straight from the database.
func NewApp(db *gorm.DB, log *zap.Logger, m *metrics.Metrics, cache catalog.Cache) (*fiber.App, io.Closer, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: utils.GetConfig("APP_ENV") == "development",
	})
	middlewares := middleware.NewMiddleware(utils.GetConfig("CORS_ALLOW_ORIGINS"), m)
	validator := utils.Validate

	// access log and limiter
	accessLog, err := openAccessLog(utils.GetConfig("LOG_FILE"))
	if err != nil {
		return nil, nil, err
	}
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Output:     accessLog,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        utils.GetConfigInt("RATE_LIMIT_MAX", 20),
		Expiration: 1 * time.Second,
	}))

	policy, err := rewardPolicy()
	if err != nil {
		return nil, nil, err
	}

	// Repository
	customerRepository := customer.NewCustomerRepository(db)
	purchaseRepository := purchase.NewPurchaseRepository(db)
	redemptionRepository := redemption.NewRedemptionRepository(db)
	catalogRepository := catalog.NewCatalogRepository(db)

	// Service
	jwtService := jwt.NewJWTService(utils.GetConfig("JWT_SECRET"), utils.GetConfig("JWT_ISSUER"))
	customerService := customer.NewCustomerService(customerRepository)
	purchaseService := purchase.NewPurchaseService(purchaseRepository, policy, log, m)
	redemptionService := redemption.NewRedemptionService(redemptionRepository, catalogRepository, log, m)
	catalogService := catalog.NewCatalogService(catalogRepository, cache, log)

	// Handler
	customerHandler := handlers.NewCustomerHandler(customerService, validator)
	purchaseHandler := handlers.NewPurchaseHandler(purchaseService, validator)
	redemptionHandler := handlers.NewRedemptionHandler(redemptionService, validator)
	catalogHandler := handlers.NewCatalogHandler(catalogService, validator)

	// routes
	routesConfig := routes.Config{
		App:               app,
		CustomerHandler:   customerHandler,
		PurchaseHandler:   purchaseHandler,
		RedemptionHandler: redemptionHandler,
		CatalogHandler:    catalogHandler,
		Middleware:        middlewares,
		JWTService:        jwtService,
	}
	routesConfig.Setup()
	return app, accessLog, nil
}

func rewardPolicy() (purchase.RewardPolicy, error) {
	minAmount, err := decimal.NewFromString(utils.GetConfig("MIN_PURCHASE_AMOUNT"))
	if err != nil {
		return purchase.RewardPolicy{}, fmt.Errorf("invalid MIN_PURCHASE_AMOUNT: %w", err)
	}
	return purchase.NewRewardPolicy(int64(utils.GetConfigInt("COINS_DIVISOR", 10)), minAmount), nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func openAccessLog(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o666)
	if err != nil {
		return nil, fmt.Errorf("open access log: %w", err)
	}
	return file, nil
}
