// Package app assembles the HTTP API from its repositories, services and handlers.
package app

import (
	"time"

	"littlelemon/internal/config"
	"littlelemon/internal/handlers"
	"littlelemon/internal/middleware"
	"littlelemon/internal/repositories"
	"littlelemon/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

// New builds the Fiber application. publisher may be nil when events are disabled.
func New(cfg config.Config, db *gorm.DB, publisher services.EventPublisher) *fiber.App {
	// --- Repositories ---
	store := repositories.NewGORMStore(db)
	userRepo := repositories.NewGORMUserRepository(db)
	roleDir := repositories.NewGORMRoleDirectory(db)
	menuRepo := repositories.NewGORMMenuItemRepository(db)

	// --- Services ---
	// Cart and order services share the per-user locks that serialize checkout.
	locks := services.NewUserLocks()
	authService := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	menuService := services.NewMenuService(menuRepo, roleDir)
	cartService := services.NewCartService(store, menuRepo, roleDir, locks)
	orderService := services.NewOrderService(store, roleDir, userRepo, publisher, locks)
	roleService := services.NewRoleService(roleDir, userRepo)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	menuHandler := handlers.NewMenuHandler(menuService)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService)
	roleHandler := handlers.NewRoleHandler(roleService)

	app := fiber.New(fiber.Config{
		AppName:      "littlelemon",
		ErrorHandler: handlers.ErrorHandler,
	})

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(logger.New())

	app.Get("/health", healthCheck(db, publisher != nil))

	// Authenticate runs before the limiter so known users are throttled by id.
	apiV1 := app.Group("/api/v1",
		middleware.Authenticate(authService),
		middleware.RateLimit(cfg.RateLimitMax, cfg.RateLimitWindow),
	)
	requireUser := middleware.AuthRequired()

	authHandler.RegisterRoutes(apiV1)
	menuHandler.RegisterRoutes(apiV1, requireUser)

	protected := apiV1.Group("", requireUser)
	cartHandler.RegisterRoutes(protected)
	orderHandler.RegisterRoutes(protected)
	roleHandler.RegisterRoutes(protected)

	return app
}

func healthCheck(db *gorm.DB, eventsEnabled bool) fiber.Handler {
	events := "disabled"
	if eventsEnabled {
		events = "enabled"
	}
	return func(c *fiber.Ctx) error {
		database := "up"
		status := fiber.StatusOK
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(c.UserContext()) != nil {
			database = "down"
			status = fiber.StatusServiceUnavailable
		}
		health := "healthy"
		if status != fiber.StatusOK {
			health = "unhealthy"
		}
		return c.Status(status).JSON(fiber.Map{
			"status":   health,
			"time":     time.Now().Format(time.RFC3339),
			"database": database,
			"events":   events,
		})
	}
}
