package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/rafa/digimon-searcher/internal/api/handlers"
	"github.com/rafa/digimon-searcher/internal/api/middleware"
	"github.com/rafa/digimon-searcher/internal/config"
	"github.com/rafa/digimon-searcher/internal/service"
)

func NewRouter(digimons *service.DigimonService, cfg *config.Config, log *zap.SugaredLogger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Root index: a small self-description of the API
	r.Get("/", indexHandler)

	digimonHandler := handlers.NewDigimonHandler(digimons, cfg, log)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/digimons", func(r chi.Router) {
			r.Get("/", digimonHandler.List)
			r.Get("/search", digimonHandler.Search)
			r.Get("/level/{level}", digimonHandler.ByLevel)
			r.Get("/type/{type}", digimonHandler.ByType)
			r.Get("/{name}", digimonHandler.GetByName)
		})
	})

	// Mirrored images from the sync tooling
	if cfg.PublicDir != "" {
		fileServer := http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.PublicDir)))
		r.Get("/static/*", fileServer.ServeHTTP)
	}

	return r
}

func indexHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{
  "message": "Digimon catalog API",
  "routes": {
    "list": "GET /api/v1/digimons?page=1&limit=20",
    "byName": "GET /api/v1/digimons/{name}",
    "byLevel": "GET /api/v1/digimons/level/{level}",
    "byType": "GET /api/v1/digimons/type/{type}",
    "search": "GET /api/v1/digimons/search?name=&level=&type=&attribute=&field="
  },
  "note": "Name lookups are case-insensitive, diacritic-tolerant and fall back to fuzzy matching."
}`))
}
