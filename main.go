package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"kiosk/internal/handlers"
	"kiosk/internal/middleware"
	"kiosk/internal/models"
	"kiosk/internal/repositories"
	"kiosk/internal/services"
	"kiosk/pkg/cache"
	"kiosk/pkg/rabbitmq"
)

// Config holds everything the process needs from the environment.
type Config struct {
	AppPort        string
	DatabaseDriver string
	DatabaseDSN    string
	JWTSecret      string
	RabbitMQURL    string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
}

// loadConfig reads configuration from environment variables with
// sensible defaults for local development.
func loadConfig() Config {
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_DRIVER", "sqlite")
	viper.SetDefault("DATABASE_DSN", "kiosk.db")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.AutomaticEnv()

	return Config{
		AppPort:        viper.GetString("APP_PORT"),
		DatabaseDriver: viper.GetString("DATABASE_DRIVER"),
		DatabaseDSN:    viper.GetString("DATABASE_DSN"),
		JWTSecret:      viper.GetString("JWT_SECRET"),
		RabbitMQURL:    viper.GetString("RABBITMQ_URL"),
		RedisAddr:      viper.GetString("REDIS_ADDR"),
		RedisPassword:  viper.GetString("REDIS_PASSWORD"),
		RedisDB:        viper.GetInt("REDIS_DB"),
	}
}

// openDatabase constructs the single process-wide GORM handle and runs
// migrations. The handle is injected everywhere; nothing reconnects per
// request.
func openDatabase(driver, dsn string) (*gorm.DB, error) {
	var dial gorm.Dialector
	switch driver {
	case "postgres":
		dial = postgres.Open(dsn)
	default:
		dial = sqlite.Open(dsn)
	}
	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		return nil, err
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Feedback{},
		&models.ContactMessage{},
	)
	if err != nil {
		return nil, err
	}
	return db, nil
}

// NewApp wires repositories, services and handlers into a Fiber app.
// publisher and productCache may be nil; order events and catalog
// caching are then skipped. Tests call this with an in-memory SQLite
// handle.
func NewApp(db *gorm.DB, jwtSecret string, publisher rabbitmq.Publisher, productCache *cache.Cache) *fiber.App {
	userRepo := repositories.NewGORMUserRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	cartRepo := repositories.NewGORMCartRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	feedbackRepo := repositories.NewGORMFeedbackRepository(db)
	contactRepo := repositories.NewGORMContactRepository(db)

	authService := services.NewAuthService(userRepo, jwtSecret)
	productService := services.NewProductService(productRepo, productCache)
	cartService := services.NewCartService(cartRepo, productService)
	orderService := services.NewOrderService(orderRepo, publisher)
	feedbackService := services.NewFeedbackService(feedbackRepo, contactRepo)

	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(productService)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackService)

	authRequired := middleware.AuthRequired(authService)
	adminRequired := middleware.AdminRequired()

	app := fiber.New()
	app.Use(logger.New())

	apiV1 := app.Group("/api/v1")
	authHandler.RegisterRoutes(apiV1, authRequired)
	productHandler.RegisterRoutes(apiV1, authRequired, adminRequired)
	cartHandler.RegisterRoutes(apiV1, authRequired)
	orderHandler.RegisterRoutes(apiV1, authRequired)
	feedbackHandler.RegisterRoutes(apiV1)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	return app
}

func main() {
	cfg := loadConfig()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	db, err := openDatabase(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	var publisher rabbitmq.Publisher
	var mqClient *rabbitmq.Client
	if cfg.RabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
		publisher = mqClient
	}

	var productCache *cache.Cache
	if cfg.RedisAddr != "" {
		productCache = cache.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer productCache.Close()
	}

	app := NewApp(db, cfg.JWTSecret, publisher, productCache)

	if mqClient != nil {
		go func() {
			log.Println("Starting RabbitMQ consumer for order events...")
			err := mqClient.ConsumeOrderEvents(func(msg amqp.Delivery) error {
				log.Printf("Received order event (tag %d): %s", msg.DeliveryTag, string(msg.Body))
				return nil
			})
			if err != nil {
				log.Printf("RabbitMQ consumer stopped: %v", err)
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Starting server on %s", cfg.AppPort)
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}
