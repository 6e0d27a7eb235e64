package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"velodrive/internal/caching"
	"velodrive/internal/config"
	"velodrive/internal/handlers"
	"velodrive/internal/jobs/background"
	"velodrive/internal/middleware"
	"velodrive/internal/repositories"
	"velodrive/internal/services"
	"velodrive/pkg/database"
)

const version = "1.0.0"

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Database connection
	pool, err := database.NewPool(ctx, database.PoolConfig{
		DSN:            cfg.Database.DSN(),
		MaxConns:       cfg.Database.MaxConns,
		IdleTimeout:    cfg.Database.IdleTimeout(),
		ConnectTimeout: cfg.Database.ConnectTimeout(),
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(pool)
	db := database.NewDB(pool, cfg.Database.ConnectTimeout())

	// Lookup cache; an empty address runs without Redis
	var cacheSvc caching.CacheService
	if cfg.Redis.Addr != "" {
		cacheSvc = caching.NewRedisCacheService(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		defer cacheSvc.Close()
	} else {
		log.Printf("WARNING: Redis address not configured, lookup cache disabled")
	}

	// Create repositories
	productRepo := repositories.NewProductRepo(db)
	orderRepo := repositories.NewOrderRepo(db)
	lookupRepo := repositories.NewLookupRepo(db)
	userRepo := repositories.NewUserRepo(db)

	// Create services
	lookupSvc := services.NewLookupService(lookupRepo, cacheSvc, cfg.Redis.LookupTTL())
	productSvc := services.NewProductService(productRepo, lookupSvc)
	orderSvc := services.NewOrderService(orderRepo, lookupSvc)
	authSvc := services.NewAuthService(userRepo, cacheSvc, cfg.Auth.JWTSecret, cfg.Auth.TokenTTLSeconds)

	// Background jobs
	scheduler, err := background.NewJobScheduler(lookupSvc, cfg.Jobs.LookupRefreshInterval())
	if err != nil {
		log.Fatalf("Failed to create job scheduler: %v", err)
	}
	scheduler.Start()
	defer func() {
		if err := scheduler.Stop(); err != nil {
			log.Printf("Failed to stop job scheduler: %v", err)
		}
	}()

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = handlers.HTTPErrorHandler

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Pre(echoMiddleware.RemoveTrailingSlash())
	e.Use(middleware.RequestID())

	router := &handlers.Router{
		Health:   handlers.NewHealthHandlers(db, cacheSvc, version),
		Auth:     handlers.NewAuthHandlers(authSvc),
		Products: handlers.NewProductHandlers(productSvc),
		Orders:   handlers.NewOrderHandlers(orderSvc),
		AuthSvc:  authSvc,
	}
	router.Register(e)

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		log.Printf("Velodrive server v%s starting on %s", version, addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Server stopped with error: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Printf("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown failed: %v", err)
	}
}
