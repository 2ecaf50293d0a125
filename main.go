package main

import (
	"os"
	"time"

	"khata-backend/database"
	"khata-backend/middlewares"
	"khata-backend/routes"
	"khata-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"go.uber.org/zap"
)

func main() {
	// ---- Logger
	logger, err := zap.NewProduction()
	if os.Getenv("APP_ENV") == "development" {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	// ---- Database
	database.Connect()
	database.AutoMigrate()
	if err := database.Migrate(); err != nil {
		logger.Fatal("schema migration failed", zap.Error(err))
	}

	// ---- Limits (configurable via env)
	// Fiber default BodyLimit is 4 * 1024 * 1024 bytes if unset (per docs).
	// We allow overriding with BODY_LIMIT_BYTES or BODY_LIMIT_MB.
	bodyLimitBytes := utils.ParseIntDefault(os.Getenv("BODY_LIMIT_BYTES"), 0)
	if bodyLimitBytes <= 0 {
		bodyLimitBytes = utils.ParseIntDefault(os.Getenv("BODY_LIMIT_MB"), 4) * 1024 * 1024
	}

	// ---- Fiber app with global error handler + body limit
	app := fiber.New(fiber.Config{
		ErrorHandler: middlewares.ErrorHandler,
		BodyLimit:    bodyLimitBytes,
	})

	// ---- CORS
	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Idempotency-Key",
	}))

	// ---- Global rate limiter (applies to all routes; tune via env)
	rlMax := utils.ParseIntDefault(os.Getenv("RATE_LIMIT_MAX"), 60)                                            // default 60 reqs
	rlWindow := time.Duration(utils.ParseIntDefault(os.Getenv("RATE_LIMIT_WINDOW_SECONDS"), 60)) * time.Second // default 60s window
	app.Use(limiter.New(limiter.Config{
		Max:        rlMax,
		Expiration: rlWindow,
		// Default KeyGenerator = client IP; default 429 handler is fine.
	}))

	// ---- Routes
	routes.Register(app)

	// ---- Start
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logger.Info("starting API server", zap.String("port", port))
	if err := app.Listen(":" + port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
