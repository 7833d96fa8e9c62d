package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"elegantstore/internal/config"
	"elegantstore/internal/handlers"
	"elegantstore/internal/middleware"
	"elegantstore/internal/models"
	"elegantstore/internal/repositories"
	"elegantstore/internal/services"
	"elegantstore/pkg/cache"
	"elegantstore/pkg/rabbitmq"
)

func main() {
	cfg := config.Load()
	log := config.NewLogger(cfg)

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	// --- Database ---
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := db.AutoMigrate(&models.Product{}, &models.ContactMessage{}, &models.User{}); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	// --- RabbitMQ (optional) ---
	var mqClient *rabbitmq.Client
	var publisher services.NotificationPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL}, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize RabbitMQ client")
		}
		defer mqClient.Close()
		publisher = mqClient
	} else {
		log.Info().Msg("RABBITMQ_URL not set, contact notifications disabled")
	}

	// --- Redis listing cache (optional) ---
	var listingCache services.ListingCache
	if cfg.RedisAddr != "" {
		redisClient, err := cache.NewRedisClient(cfg.RedisAddr, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize Redis client")
		}
		defer redisClient.Close()
		listingCache = redisClient
	} else {
		log.Info().Msg("REDIS_ADDR not set, listing cache disabled")
	}

	// --- Repositories ---
	productRepo := repositories.NewGORMProductRepository(db)
	contactRepo := repositories.NewGORMContactRepository(db)
	userRepo := repositories.NewGORMUserRepository(db)

	// --- Services ---
	catalogService := services.NewCatalogService(productRepo, listingCache, log)
	contactService := services.NewContactService(contactRepo, publisher, log)
	authService := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL, log)

	// --- Handlers ---
	productHandler := handlers.NewProductHandler(catalogService, log)
	contactHandler := handlers.NewContactHandler(contactService, log)
	authHandler := handlers.NewAuthHandler(authService, log)

	// --- Fiber app ---
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendURL,
		AllowMethods:     "GET,POST,PUT,DELETE",
		AllowCredentials: true,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- API routes ---
	api := app.Group("/api")
	authRequired := middleware.AuthRequired(authService)

	authHandler.RegisterRoutes(api)
	productHandler.RegisterRoutes(api, authRequired)
	contactHandler.RegisterRoutes(api, authRequired)

	// Catch-all for unmatched routes.
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Route not found",
		})
	})

	// --- Contact event consumer ---
	// Placeholder for the notification worker: downstream processing (e.g.
	// sending the team an email per submission) hangs off this queue.
	if mqClient != nil {
		if err := mqClient.ConsumeContactEvents(func(msg amqp.Delivery) error {
			log.Info().RawJSON("event", msg.Body).Msg("contact message received")
			return nil
		}); err != nil {
			log.Error().Err(err).Msg("failed to start contact event consumer")
		}
	}

	// --- Start HTTP server ---
	log.Info().Str("port", cfg.AppPort).Msg("starting server")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	<-quit
	log.Info().Msg("shutting down server")

	if err := app.Shutdown(); err != nil {
		log.Error().Err(err).Msg("error during shutdown")
	}
	log.Info().Msg("server gracefully stopped")
}
