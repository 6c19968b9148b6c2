package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/nexodus/nexodus-api/internal/api/handler"
	custommiddleware "github.com/nexodus/nexodus-api/internal/api/middleware"
	"github.com/nexodus/nexodus-api/internal/config"
	"github.com/nexodus/nexodus-api/internal/repository/mongodb"
	"github.com/nexodus/nexodus-api/internal/repository/redis"
	"github.com/nexodus/nexodus-api/internal/security"
	"github.com/nexodus/nexodus-api/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, db *mongodb.DB, redisClient *redis.Client) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(cfg.Server.MiddlewareTimeout))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", custommiddleware.ProxyHeader},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Repositories
	userRepo := mongodb.NewUserRepository(db)
	chatRepo := mongodb.NewChatRepository(db)

	// Services
	authService := service.NewAuthService(userRepo, security.NewPasswordHasher(), security.NewTokenService())
	chatService := service.NewChatService(chatRepo)

	// Handlers
	userHandler := handler.NewUserHandler(authService)
	chatHandler := handler.NewChatHandler(chatService)

	// Middleware
	gatekeeper := custommiddleware.NewProxyGatekeeper(cfg.Auth.ProxySecret)
	authMiddleware := custommiddleware.NewAuthMiddleware(authService)
	rateLimiter := redis.NewRateLimiter(
		redisClient,
		cfg.Security.RateLimit.RequestsPerMinute,
		cfg.Security.RateLimit.Burst,
	)
	rateLimitMiddleware := custommiddleware.NewRateLimitMiddleware(rateLimiter)

	// Liveness probe, deliberately mounted outside the gated group.
	r.Get("/", handler.Heartbeat)

	// Everything else sits behind the proxy shared-secret gate.
	r.Group(func(r chi.Router) {
		r.Use(gatekeeper.Validate)

		r.Get("/ready", handler.ReadyCheck(db))

		r.Route("/crud", func(r chi.Router) {
			r.Post("/User", userHandler.Register)
			r.Post("/auth", userHandler.Login)
			r.Get("/User", userHandler.Get)
		})

		r.Route("/chats", func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Use(rateLimitMiddleware.Limit)

			r.Post("/Chat", chatHandler.Create)
			r.Get("/Chat", chatHandler.Get)
			r.Get("/list", chatHandler.List)
			r.Put("/Chat", chatHandler.Rename)
			r.Put("/append", chatHandler.Append)
			r.Delete("/Chat", chatHandler.Delete)
		})
	})

	return r
}
