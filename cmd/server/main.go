package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mart/ranking-admin/internal/api"
	"github.com/mart/ranking-admin/internal/cache"
	"github.com/mart/ranking-admin/internal/config"
	"github.com/mart/ranking-admin/internal/repository"
	"github.com/mart/ranking-admin/internal/repository/fixture"
	"github.com/mart/ranking-admin/internal/repository/postgres"
	"github.com/mart/ranking-admin/internal/service"
	"github.com/mart/ranking-admin/internal/websocket"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Initialize repositories
	var repos *repository.Repositories
	switch cfg.DataSource {
	case config.DataSourceFixture:
		store, err := fixture.Load(cfg.FixturePath)
		if err != nil {
			log.Fatalf("failed to load fixture: %v", err)
		}
		repos = fixture.NewRepositories(store)
		log.Printf("Using fixture data source (%s); mutations are not persisted", cfg.FixturePath)
	default:
		db, err := postgres.NewConnection(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		repos = postgres.NewRepositories(db)
	}

	// Initialize query cache
	queryCache := cache.NewStore(cache.WithStaleAfter(cfg.CacheStaleAfter))

	// Initialize WebSocket hub
	hub := websocket.NewHub()
	go hub.Run()

	// Initialize services
	services := service.NewServices(repos, queryCache, hub, cfg)

	// Initialize router
	router := api.NewRouter(services, hub, cfg)

	// Create server
	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	hub.Stop()
	log.Println("Server stopped")
}
