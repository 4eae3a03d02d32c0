package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	_ "github.com/redmonkez12/bookstore-api/docs" // Swagger docs
	"github.com/redmonkez12/bookstore-api/internal/auth"
	"github.com/redmonkez12/bookstore-api/internal/book"
	"github.com/redmonkez12/bookstore-api/internal/config"
	"github.com/redmonkez12/bookstore-api/internal/database"
	httpServer "github.com/redmonkez12/bookstore-api/internal/http"
	"github.com/redmonkez12/bookstore-api/internal/logging"
	"github.com/redmonkez12/bookstore-api/internal/user"
)

// @title           Bookstore API
// @version         1.0
// @description     Book catalog REST API with account registration, token authentication, and admin-managed inventory.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.

func main() {
	if err := run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	logger := logging.NewLogger(cfg.Server.IsDevelopment())
	logger.Info("starting application",
		"env", cfg.Server.Env,
		"port", cfg.Server.Port,
		"token_strategy", cfg.Auth.TokenStrategy,
	)

	// Initialize database connection
	db, err := database.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	// Initialize the top-rated cache; without Redis every request reads the database
	var catalogCache book.Cache
	if cfg.Redis.Enabled {
		redisClient, err := initRedis(cfg.Redis)
		if err != nil {
			return fmt.Errorf("failed to initialize Redis: %w", err)
		}
		defer redisClient.Close()

		catalogCache = book.NewRedisCache(redisClient, cfg.Catalog.CacheTTL)
		logger.Info("catalog cache enabled", "addr", cfg.Redis.Address(), "ttl", cfg.Catalog.CacheTTL)
	}

	// Initialize token service
	tokenService, err := newTokenService(cfg.Auth)
	if err != nil {
		return fmt.Errorf("failed to initialize token service: %w", err)
	}

	// Initialize repositories
	userRepo := user.NewRepository(db)
	bookRepo := book.NewRepository(db)

	// Initialize services
	authService := auth.NewService(userRepo, tokenService, logger, cfg.Auth.AccessTokenDuration)
	bookService := book.NewService(bookRepo, catalogCache, logger, cfg.Catalog.TopRatedLimit)

	// Initialize HTTP handlers
	isProduction := !cfg.Server.IsDevelopment()
	authHandler := auth.NewHandler(authService, isProduction)
	bookHandler := book.NewHandler(bookService, isProduction)
	authMiddleware := auth.NewMiddleware(tokenService)

	// Initialize router
	router := httpServer.NewRouter(cfg, authHandler, bookHandler, authMiddleware, logger)

	// Initialize HTTP server
	server := httpServer.NewServer(
		":"+cfg.Server.Port,
		router,
		cfg.Server.ReadTimeout,
		cfg.Server.WriteTimeout,
		logger,
	)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	// Wait for interrupt signal or server error
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		logger.Info("received signal", "signal", sig.String())

		// Graceful shutdown with timeout
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// newTokenService picks the access token format configured by AUTH_TOKEN_STRATEGY
func newTokenService(cfg config.AuthConfig) (auth.TokenService, error) {
	switch cfg.TokenStrategy {
	case config.TokenStrategyJWT:
		return auth.NewJWTService(cfg.JWTSecret)
	default:
		return auth.NewPasetoService(cfg.PasetoKey)
	}
}

// initRedis initializes the Redis connection and returns a Redis client
func initRedis(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Verify connection
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return client, nil
}
