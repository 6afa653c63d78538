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

	"github.com/SherClockHolmes/webpush-go"
	"github.com/joho/godotenv"

	"hotel-occupancy-backend/config"
	"hotel-occupancy-backend/internal/api"
	"hotel-occupancy-backend/internal/auth"
	"hotel-occupancy-backend/internal/cache"
	"hotel-occupancy-backend/internal/db"
	"hotel-occupancy-backend/internal/notification"
	"hotel-occupancy-backend/internal/occupancy"
	"hotel-occupancy-backend/internal/store"
)

func main() {
	// Setup logger
	logger := log.New(os.Stdout, "hotel-backend ", log.LstdFlags)

	// A .env file is optional; it only feeds locals like JWT_SECRET.
	_ = godotenv.Load()

	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded successfully from %s", configPath)

	if cfg.Auth.JWTSecret == "" {
		logger.Fatalf("auth.jwt_secret (or the JWT_SECRET environment variable) must be set")
	}

	// Initialize database
	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	logger.Println("database initialized successfully")

	// Create a context that can be cancelled
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appStore := store.NewGormStore(gormDB)
	logger.Println("data store initialized")

	// Room-listing cache; the app degrades to direct reads when redis is
	// unreachable.
	var roomCache cache.Cache
	if client := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB); client != nil {
		roomCache = cache.NewRedis(client)
		logger.Printf("room cache connected to redis at %s", cfg.Redis.Addr)
	} else {
		logger.Println("room cache disabled; serving listings from the database")
	}
	roomDirectory := cache.NewRoomDirectory(roomCache, cfg.RoomCacheTTL())

	// Housekeeping notifications run only when VAPID keys are configured.
	var webpushOptions *webpush.Options
	var notifier occupancy.CleaningNotifier
	if cfg.Push.PublicKey != "" && cfg.Push.PrivateKey != "" {
		webpushOptions = &webpush.Options{
			VAPIDPublicKey:  cfg.Push.PublicKey,
			VAPIDPrivateKey: cfg.Push.PrivateKey,
			Subscriber:      cfg.Push.Subject,
			TTL:             cfg.Push.TTL,
		}
		pool := notification.NewWorkerPool(cfg.WorkerPool.Size, gormDB, webpushOptions)
		pool.Start(ctx)
		notifier = pool
		logger.Printf("notification worker pool started with %d workers", cfg.WorkerPool.Size)
	} else {
		logger.Println("VAPID keys not configured; housekeeping notifications disabled")
	}

	manager := occupancy.NewManager(appStore, roomDirectory, notifier)
	authSvc := auth.NewService(appStore, cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.TokenTTLHours)*time.Hour, cfg.Auth.BcryptCost)

	// Initialize router
	router := api.NewRouter(&cfg.Server, appStore, manager, authSvc, webpushOptions)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start the server in a goroutine
	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	// Setup signal handling for graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	// Block until a signal is received.
	<-stop
	logger.Println("Shutdown signal received, stopping services...")

	// Create a deadline to wait for.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}
