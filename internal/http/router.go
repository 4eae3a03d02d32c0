package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/redmonkez12/bookstore-api/internal/auth"
	"github.com/redmonkez12/bookstore-api/internal/book"
	"github.com/redmonkez12/bookstore-api/internal/config"
	"github.com/redmonkez12/bookstore-api/internal/httputil"
	"github.com/redmonkez12/bookstore-api/internal/logging"
	"github.com/redmonkez12/bookstore-api/internal/user"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	cfg *config.Config,
	authHandler *auth.Handler,
	bookHandler *book.Handler,
	authMiddleware *auth.Middleware,
	logger *logging.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// CORS - must be first
	if len(cfg.Server.TrustedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.Server.TrustedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			ExposedHeaders:   []string{"Content-Length"},
			AllowCredentials: false,
			MaxAge:           300, // 5 minutes
		}))
	}

	// Global middleware
	r.Use(SecurityHeaders(!cfg.Server.IsDevelopment())) // Security headers on all responses
	r.Use(middleware.RequestID)                         // Add request ID
	r.Use(middleware.RealIP)                            // Set RemoteAddr to real IP
	r.Use(logging.RequestLogger(logger))                // Structured logging with request context
	r.Use(middleware.Recoverer)                         // Recover from panics
	r.Use(middleware.Compress(5))                       // Compress responses

	r.NotFound(handleNotFound)
	r.MethodNotAllowed(handleMethodNotAllowed)

	// Public routes
	r.Get("/health", handleHealth)

	// Swagger UI - only in development
	if cfg.Server.IsDevelopment() {
		logger.Info("swagger UI enabled", "path", "/swagger/")
		r.Get("/swagger/*", httpSwagger.WrapHandler)
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.With(authMiddleware.RequireAuth).Get("/me", authHandler.Me)
		})

		r.Route("/books", func(r chi.Router) {
			r.Get("/", bookHandler.List)
			r.Get("/top", bookHandler.TopRated)
			r.Get("/search", bookHandler.Search)
			r.Get("/{id}", bookHandler.Get)
		})

		// Admin routes (require an authenticated admin)
		r.Route("/admin", func(r chi.Router) {
			r.Use(authMiddleware.RequireAuth)
			r.Use(authMiddleware.RequireRole(user.RoleAdmin))
			r.Post("/books", bookHandler.Create)
			r.Delete("/books/{id}", bookHandler.Delete)
		})
	})

	return r
}

// handleHealth is a simple health check endpoint
// @Summary      Health check
// @Description  Check if the API is running
// @Tags         health
// @Produce      json
// @Success      200 {object} map[string]string
// @Router       /health [get]
func handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, map[string]string{"status": "api is running"}, http.StatusOK)
}

func handleNotFound(w http.ResponseWriter, r *http.Request) {
	httputil.RespondErrorWithCode(w, "route not found", httputil.CodeRouteNotFound, http.StatusNotFound)
}

func handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	httputil.RespondErrorWithCode(w, "method not allowed", httputil.CodeMethodNotAllowed, http.StatusMethodNotAllowed)
}
