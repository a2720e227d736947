package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/mart/ranking-admin/internal/api/handlers"
	"github.com/mart/ranking-admin/internal/api/middleware"
	"github.com/mart/ranking-admin/internal/config"
	"github.com/mart/ranking-admin/internal/service"
	"github.com/mart/ranking-admin/internal/websocket"
)

func NewRouter(services *service.Services, hub *websocket.Hub, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth)
	rankingHandler := handlers.NewRankingHandler(services.Ranking)
	itemHandler := handlers.NewItemHandler(services.Item)
	wsHandler := handlers.NewWebSocketHandler(hub, services.Auth)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public auth routes
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)

			// Protected auth routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.Get("/me", authHandler.Me)
				r.Post("/logout", authHandler.Logout)
			})
		})

		// Ranking reads are public; the published site consumes them too
		r.Route("/rankings", func(r chi.Router) {
			r.Get("/", rankingHandler.GetAll)
			r.Get("/{rankingId}", rankingHandler.Get)

			// Item management requires a logged-in admin user
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.Get("/{rankingId}/items", itemHandler.List)
				r.Post("/{rankingId}/items", itemHandler.Create)
				r.Post("/{rankingId}/items/reorder", itemHandler.Reorder)
			})
		})

		// Item routes addressed by item id
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(services.Auth))
			r.Route("/items", func(r chi.Router) {
				r.Put("/{id}", itemHandler.Update)
				r.Delete("/{id}", itemHandler.Delete)
				r.Post("/{id}/move-up", itemHandler.MoveUp)
				r.Post("/{id}/move-down", itemHandler.MoveDown)
			})
		})

		// WebSocket endpoint
		r.Get("/ws", wsHandler.Handle)
	})

	return r
}
