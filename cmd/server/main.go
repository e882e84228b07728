package main

import (
	"context" // context package is needed for Redis operations
	"time"    // Cache lifetime

	"eventwave/internal/api"               // Custom package for API handlers
	"eventwave/internal/broker"            // RabbitMQ publisher
	"eventwave/internal/config"            // Custom package for configuration
	"eventwave/internal/db"                // Database connection and migrations
	"eventwave/internal/middleware"        // Custom package for middleware
	"eventwave/internal/repository"        // SQL repositories
	"eventwave/internal/repository/memory" // Single-process store
	"eventwave/internal/service"           // Business services
	"eventwave/internal/utils"             // Tokens, passwords and cache

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// stores bundles one backend's repositories
type stores struct {
	users         repository.UserRepository
	events        repository.EventRepository
	registrations repository.RegistrationRepository
	reviews       repository.ReviewRepository
	wishlist      repository.WishlistRepository
}

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if cfg.IsProd {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	}

	// Refuse to start with a weak key; the key itself is never logged
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("invalid configuration: %v", err)
	}

	repos := openStores(cfg) // Select the storage backend

	// Setup Redis client when configured
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		// Test Redis connection
		if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
			logrus.Fatalf("failed to connect to Redis: %v", err)
		}
	}

	// Setup RabbitMQ publisher when configured
	var publisher service.Publisher
	if cfg.RabbitURL != "" {
		p, err := broker.NewPublisher(cfg.RabbitURL)
		if err != nil {
			logrus.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		defer p.Close()
		publisher = p
	}

	tokens := utils.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)
	hasher := utils.NewPasswordHasher(cfg.BcryptCost)

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	r := api.SetupRouter(api.Deps{
		Tokens:         tokens,
		Credentials:    service.NewCredentialService(repos.users, hasher),
		Users:          service.NewUserService(repos.users),
		Events:         service.NewEventService(repos.events, publisher),
		Registrations:  service.NewRegistrationService(repos.users, repos.events, repos.registrations, publisher),
		Reviews:        service.NewReviewService(repos.events, repos.registrations, repos.reviews),
		Wishlist:       service.NewWishlistService(repos.events, repos.wishlist),
		Cache:          utils.NewCache(redisClient, 60*time.Second),
		Policy:         middleware.MustPolicy(middleware.DefaultRules()),
		AllowedOrigins: cfg.AllowedOrigins,
	})

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	logrus.WithFields(logrus.Fields{"port": cfg.AppPort, "driver": cfg.DBDriver}).Info("Server running")
	if err := r.Run(":" + cfg.AppPort); err != nil { // Start the server on port cfg.AppPort
		logrus.Fatalf("server stopped: %v", err)
	}
}

// openStores connects the configured backend
func openStores(cfg *config.Config) stores {
	if cfg.DBDriver == config.DriverMemory {
		logrus.Warn("using in-memory storage; data is lost on restart")
		m := memory.NewStore()
		return stores{m.Users(), m.Events(), m.Registrations(), m.Reviews(), m.Wishlist()}
	}

	gormDB, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}
	return stores{
		users:         repository.NewUserRepository(gormDB),
		events:        repository.NewEventRepository(gormDB),
		registrations: repository.NewRegistrationRepository(gormDB),
		reviews:       repository.NewReviewRepository(gormDB),
		wishlist:      repository.NewWishlistRepository(gormDB),
	}
}
