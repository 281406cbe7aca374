package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"maps-proxy/internal/api"
	"maps-proxy/internal/config"
	"maps-proxy/internal/modules/maps"
	"maps-proxy/internal/ratelimit"

	"github.com/redis/go-redis/v9"
)

func main() {
	// 1. --- Configuration ---
	// Load application configuration from app.env and environment variables.
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. --- Rate limit store ---
	var store ratelimit.Store
	switch strings.ToLower(cfg.RateLimitStore) {
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer func() { _ = rdb.Close() }()

		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Fatalf("Unable to ping redis: %v", err)
		}

		store, err = ratelimit.NewRedisStore(rdb)
		if err != nil {
			log.Fatalf("Unable to create redis rate limit store: %v", err)
		}
	default:
		memStore := ratelimit.NewMemoryStore(ratelimit.WithCleanupEvery(cfg.RateLimitCleanupInterval))
		memStore.StartJanitor(ctx)
		store = memStore
	}

	limiter, err := ratelimit.NewLimiter(store, ratelimit.Options{
		Limit:    cfg.RateLimitMaxRequests,
		Window:   cfg.RateLimitWindow(),
		FailOpen: cfg.RateLimitFailOpen,
	})
	if err != nil {
		log.Fatalf("Unable to create rate limiter: %v", err)
	}

	// 3. --- Dependency Injection (Wiring everything up) ---
	// The maps client and service are built once and shared by every request.
	mapsClient := maps.NewClient(cfg.GoogleMapsAPIKey, maps.ClientOptions{
		BaseURL: cfg.MapsBaseURL,
		Timeout: cfg.MapsTimeout,
		QPS:     cfg.MapsQPS,
	})

	opts := api.Options{
		ServiceName:    cfg.ServiceName,
		APIKey:         cfg.APIKey,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		TrustProxy:     cfg.TrustProxy,
		Limiter:        limiter,
	}
	e := api.NewServer(opts)

	mapsService := maps.NewService(mapsClient, cfg.GoogleMapsAPIKey, e.Logger)
	mapsHandler := maps.NewHandler(mapsService)

	// 4. --- Initialize Router ---
	api.SetupRoutes(e, mapsHandler, opts)

	e.Logger.Infof("rate limit: store=%s max=%d window=%s", cfg.RateLimitStore, cfg.RateLimitMaxRequests, cfg.RateLimitWindow())
	e.Logger.Infof("auth: enabled=%v, cors origins=%v", cfg.APIKey != "", cfg.CORSAllowedOrigins)

	// 5. --- Start Server with graceful shutdown logic ---
	go func() {
		if err := e.Start(":" + cfg.ServerPort); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal("shutting down the server an error occurred:", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		e.Logger.Fatal("Server forced to shutdown:", err)
	}
	log.Println("Server exiting")
}
