// Package api provides the HTTP API server and handlers for the
// WriteFlow application.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/writeflowapp/writeflow-server/internal/service"
	"github.com/writeflowapp/writeflow-server/internal/validation"
)

// Version reported by the health endpoint.
const Version = "1.0.0"

// Server holds dependencies for HTTP handlers.
type Server struct {
	services  *service.Services
	validator *validation.Validator
	router    *chi.Mux
	api       huma.API
	logger    *slog.Logger
}

// NewServer creates an HTTP server with all routes configured.
func NewServer(services *service.Services, logger *slog.Logger) *Server {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	humaConfig := huma.DefaultConfig("WriteFlow API", Version)
	api := humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s := &Server{
		services:  services,
		validator: validation.New(),
		router:    router,
		api:       api,
		logger:    logger,
	}

	s.registerRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) registerRoutes() {
	s.registerHealthRoutes()
	s.registerBookRoutes()
	s.registerNoteRoutes()
	s.registerDistillRoutes()
	s.registerChatRoutes()
	s.registerTweetRoutes()
	s.registerLinkedInRoutes()
	s.registerNarrativeRoutes()
	s.registerDigestRoutes()
	s.registerSearchRoutes()
	s.registerProfileRoutes()
}

// SuccessResponse acknowledges a delete.
type SuccessResponse struct {
	Success bool `json:"success" doc:"Whether the operation succeeded"`
}

// SuccessOutput wraps the success response for Huma.
type SuccessOutput struct {
	Body SuccessResponse
}
