// Package api provides the HTTP API server and handlers for binderd.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/palmsoff/binderd/internal/http/response"
	"github.com/palmsoff/binderd/internal/service"
	"github.com/palmsoff/binderd/internal/store"
	"github.com/palmsoff/binderd/internal/validation"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store             *store.Store
	authService       *service.AuthService
	collectionService *service.CollectionService
	wishlistService   *service.WishlistService
	binderService     *service.BinderService
	importService     *service.ImportService
	searchService     *service.SearchService
	statsService      *service.StatsService
	validator         *validation.Validator
	router            *chi.Mux
	api               huma.API
	logger            *slog.Logger
}

// Services bundles the service layer for server construction.
type Services struct {
	Auth       *service.AuthService
	Collection *service.CollectionService
	Wishlist   *service.WishlistService
	Binder     *service.BinderService
	Import     *service.ImportService
	Search     *service.SearchService
	Stats      *service.StatsService
}

// NewServer creates a new HTTP server with all routes configured.
// corsOrigins is the allowed origin list; empty means no CORS headers.
func NewServer(store *store.Store, services Services, corsOrigins []string, logger *slog.Logger) *Server {
	router := chi.NewRouter()

	// chi requires the middleware stack before any route, and humachi
	// registers the docs routes at construction time.
	setupMiddleware(router, corsOrigins)

	humaConfig := huma.DefaultConfig("binderd", "1.0.0")
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "PASETO",
		},
	}

	s := &Server{
		store:             store,
		authService:       services.Auth,
		collectionService: services.Collection,
		wishlistService:   services.Wishlist,
		binderService:     services.Binder,
		importService:     services.Import,
		searchService:     services.Search,
		statsService:      services.Stats,
		validator:         validation.New(),
		router:            router,
		api:               humachi.New(router, humaConfig),
		logger:            logger,
	}

	RegisterErrorHandler()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures the middleware stack.
func setupMiddleware(router *chi.Mux, corsOrigins []string) {
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))

	if len(corsOrigins) > 0 {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   corsOrigins,
			AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Health check.
	s.router.Get("/health", s.handleHealthCheck)

	// API v1.
	s.router.Route("/api/v1", func(r chi.Router) {
		// Auth endpoints (public).
		r.Post("/auth/login", s.handleLogin)

		// Everything else needs a session token.
		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)

			r.Route("/collections", func(r chi.Router) {
				r.Get("/", s.handleListCollections)
				r.Post("/", s.handleCreateCollection)
				r.Get("/{name}", s.handleGetCollection)
				r.Delete("/{name}", s.handleDeleteCollection)
				r.Get("/{name}/stats", s.handleCollectionStats)
				r.Post("/{name}/cards", s.handleAddCard)
				r.Patch("/{name}/cards/{cardID}", s.handleUpdateCard)
				r.Delete("/{name}/cards/{cardID}", s.handleRemoveCard)
			})

			r.Route("/wishlist", func(r chi.Router) {
				r.Get("/", s.handleListWishlist)
				r.Post("/", s.handleAddWishlistItem)
				r.Delete("/{id}", s.handleRemoveWishlistItem)
				r.Post("/{id}/move", s.handleMoveWishlistItem)
			})

			r.Route("/binder", func(r chi.Router) {
				r.Get("/", s.handleGetBinder)
				r.Post("/place", s.handlePlaceCard)
				r.Post("/remove", s.handleRemoveSlot)
				r.Get("/available", s.handleAvailableCards)
				r.Get("/spreads/{index}", s.handleGetSpread)
			})

			r.Route("/imports", func(r chi.Router) {
				r.Post("/csv", s.handleImportCSV)
				r.Post("/showcase", s.handleImportShowcase)
				r.Post("/manual", s.handleImportManual)
				r.Get("/stream", s.handleImportStream)
			})

			r.Get("/stats", s.handleGlobalStats)

			r.Route("/admin", func(r chi.Router) {
				r.Post("/backup", s.handleBackup)
				r.Post("/restore", s.handleRestore)
			})
		})
	})

	// Typed catalog endpoints go through huma so they carry OpenAPI docs.
	s.registerCatalogRoutes()
}

// handleHealthCheck returns server health status.
func (s *Server) handleHealthCheck(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, map[string]string{
		"status": "healthy",
	}, s.logger)
}
