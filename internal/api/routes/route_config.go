package routes

import (
	"Coin-Loyalty-Backend/domain"
	"Coin-Loyalty-Backend/internal/api/handlers"
	"Coin-Loyalty-Backend/internal/middleware"
	"Coin-Loyalty-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Config struct {
	App               *fiber.App
	CustomerHandler   handlers.CustomerHandler
	PurchaseHandler   handlers.PurchaseHandler
	RedemptionHandler handlers.RedemptionHandler
	CatalogHandler    handlers.CatalogHandler
	Middleware        middleware.Middleware
	JWTService        jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.App.Use(c.Middleware.MetricsMiddleware())
	c.GuestRoute()
	c.Purchases()
	c.Redemptions()
	c.Customers()
	c.Rewards()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
	c.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}

func (c *Config) Purchases() {
	purchases := c.App.Group("/api/v1/purchases",
		c.Middleware.AuthMiddleware(c.JWTService),
		c.Middleware.RequireRole(domain.RoleStaff),
	)
	purchases.Post("", c.PurchaseHandler.RecordPurchase)
}

func (c *Config) Redemptions() {
	redemptions := c.App.Group("/api/v1/redemptions", c.Middleware.AuthMiddleware(c.JWTService))
	staff := c.Middleware.RequireRole(domain.RoleStaff)

	redemptions.Post("", c.Middleware.RequireRole(domain.RoleStaff, domain.RoleCustomer), c.RedemptionHandler.RequestRedemption)
	redemptions.Post("/resolve", staff, c.RedemptionHandler.ResolveRedemption)
	redemptions.Get("", staff, c.RedemptionHandler.GetRedemptions)
	redemptions.Get("/code/:code", staff, c.RedemptionHandler.GetPendingByCode)
}

func (c *Config) Customers() {
	customers := c.App.Group("/api/v1/customers",
		c.Middleware.AuthMiddleware(c.JWTService),
		c.Middleware.RequireRole(domain.RoleStaff),
	)
	customers.Post("", c.CustomerHandler.RegisterCustomer)
	customers.Get("", c.CustomerHandler.GetCustomers)
	customers.Get("/phone/:phone", c.CustomerHandler.GetCustomerByPhone)
	customers.Get("/:id", c.CustomerHandler.GetCustomer)
	customers.Patch("/:id", c.CustomerHandler.UpdateCustomer)
	customers.Get("/:id/purchases", c.PurchaseHandler.GetPurchaseHistory)
	customers.Get("/:id/redemptions", c.RedemptionHandler.GetCustomerRedemptions)
}

func (c *Config) Rewards() {
	rewards := c.App.Group("/api/v1/rewards", c.Middleware.AuthMiddleware(c.JWTService))
	staff := c.Middleware.RequireRole(domain.RoleStaff)

	rewards.Get("", c.CatalogHandler.GetRewardItems)
	rewards.Get("/:id", c.CatalogHandler.GetRewardItem)
	rewards.Post("", staff, c.CatalogHandler.CreateRewardItem)
	rewards.Delete("/:id", staff, c.CatalogHandler.DeactivateRewardItem)
}
