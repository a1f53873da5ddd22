package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/leadgenie/leadgenie/internal/api/handlers"
	"github.com/leadgenie/leadgenie/internal/api/middleware"
	"github.com/leadgenie/leadgenie/internal/chatbot"
	"github.com/leadgenie/leadgenie/internal/config"
	"github.com/leadgenie/leadgenie/internal/observability"
	"github.com/leadgenie/leadgenie/internal/repository/memory"
	"github.com/leadgenie/leadgenie/internal/scraper"
	"github.com/leadgenie/leadgenie/internal/session"
	"github.com/leadgenie/leadgenie/pkg/httputil"
)

// Router holds the HTTP router and its dependencies
type Router struct {
	chi.Router
	logger *zap.Logger
}

// RouterConfig contains configuration for the router
type RouterConfig struct {
	Store      *memory.Store
	Registry   *chatbot.Registry
	Sessions   *session.Manager
	Scraper    *scraper.Scraper
	LLM        chatbot.Completer
	ChatConfig config.ChatConfig
	Metrics    *observability.Metrics
	Logger     *zap.Logger
	EnableCORS bool
}

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(cfg RouterConfig) *Router {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.NewRecoveryMiddleware(cfg.Logger).Handler)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger, cfg.Metrics).Handler)
	r.Use(chimw.Timeout(60 * time.Second))

	if cfg.EnableCORS {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	r.Get("/health", healthHandler)
	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		chatbotHandler := handlers.NewChatbotHandler(
			cfg.Store,
			cfg.Registry,
			cfg.Scraper,
			cfg.LLM,
			cfg.ChatConfig,
			cfg.Metrics,
			cfg.Logger,
		)
		sessionHandler := handlers.NewSessionHandler(cfg.Sessions, cfg.Registry, cfg.Metrics, cfg.Logger)
		leadHandler := handlers.NewLeadHandler(cfg.Store, cfg.Logger)

		r.Route("/chatbots", func(r chi.Router) {
			r.Get("/", chatbotHandler.List)
			r.Post("/", chatbotHandler.Create)
			r.Get("/{id}", chatbotHandler.Get)
			r.Get("/{id}/embed", chatbotHandler.GetEmbed)
		})

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", sessionHandler.Create)
			r.Put("/{id}/chatbot", sessionHandler.SwitchChatbot)
			r.Post("/{id}/messages", sessionHandler.PostMessage)
			r.Post("/{id}/capture", sessionHandler.PostCapture)
		})

		r.Get("/leads", leadHandler.List)
	})

	return &Router{
		Router: r,
		logger: cfg.Logger,
	}
}

// healthHandler returns basic health status
func healthHandler(w http.ResponseWriter, r *http.Request) {
	httputil.JSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "leadgenie-api",
	})
}
