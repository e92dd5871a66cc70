package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "weather-dashboard/internal/api/http"
	"weather-dashboard/internal/config"
	"weather-dashboard/internal/dashboard"
	"weather-dashboard/internal/gateway"
	"weather-dashboard/internal/scheduler"
	"weather-dashboard/internal/store"
	"weather-dashboard/internal/weather"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Durable session state: Redis when configured, in-memory otherwise.
	var st store.Store
	if cfg.RedisURL != "" {
		redisStore, err := store.OpenRedis(context.Background(), cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisStore.Close()
		st = redisStore
	} else {
		log.Println("INFO: REDIS_URL not set; session state will not survive restarts")
		st = store.NewMemoryStore()
	}

	// Provider client talking straight upstream with the server-held key.
	client := weather.NewClient(httpClient, cfg.UpstreamBaseURL, cfg.OpenWeatherAPIKey)

	// Session coordinator with persisted state restored.
	session, err := dashboard.NewSession(context.Background(), client, st, cfg.HistoryLimit)
	if err != nil {
		log.Fatalf("failed to restore session state: %v", err)
	}

	// Scheduler keeping the history window and comparison readings fresh.
	refresher := scheduler.New(session, cfg.RefreshInterval)
	if err := refresher.Start(); err != nil {
		log.Fatalf("failed to start refresher: %v", err)
	}
	defer refresher.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "weather-dashboard",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-dashboard",
		})
	})

	// Key-hiding relay for browser clients.
	gw := gateway.New(httpClient, cfg.UpstreamBaseURL, cfg.OpenWeatherAPIKey)
	gw.Register(app)

	// Dashboard API routes.
	httpapi.RegisterRoutes(app, session)

	// Start server with graceful shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
