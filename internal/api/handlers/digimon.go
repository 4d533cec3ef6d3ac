package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/rafa/digimon-searcher/internal/config"
	"github.com/rafa/digimon-searcher/internal/domain"
	"github.com/rafa/digimon-searcher/internal/search"
	"github.com/rafa/digimon-searcher/internal/service"
)

type DigimonHandler struct {
	digimons *service.DigimonService
	cfg      *config.Config
	log      *zap.SugaredLogger
}

func NewDigimonHandler(digimons *service.DigimonService, cfg *config.Config, log *zap.SugaredLogger) *DigimonHandler {
	return &DigimonHandler{digimons: digimons, cfg: cfg, log: log}
}

// ErrorResponse is the structured body for negative results.
type ErrorResponse struct {
	Error string `json:"error"`
	Name  string `json:"name,omitempty"`
	Level string `json:"level,omitempty"`
	Type  string `json:"type,omitempty"`
}

// List handles GET /digimons with page/limit parameters.
func (h *DigimonHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r, h.cfg.DefaultListLimit)
	writeJSON(w, http.StatusOK, h.digimons.List(page, limit))
}

// ByLevel handles GET /digimons/level/{level}. Zero matches is a 404
// with a structured body, matching the routed facet surface.
func (h *DigimonHandler) ByLevel(w http.ResponseWriter, r *http.Request) {
	level := chi.URLParam(r, "level")
	page, limit := pageParams(r, h.cfg.DefaultListLimit)

	result := h.digimons.FilterByFacet(domain.FacetLevel, level, page, limit)
	if result.Total == 0 {
		writeJSON(w, http.StatusNotFound, ErrorResponse{
			Error: "no digimon found for the given level",
			Level: level,
		})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// ByType handles GET /digimons/type/{type}.
func (h *DigimonHandler) ByType(w http.ResponseWriter, r *http.Request) {
	typ := chi.URLParam(r, "type")
	page, limit := pageParams(r, h.cfg.DefaultListLimit)

	result := h.digimons.FilterByFacet(domain.FacetType, typ, page, limit)
	if result.Total == 0 {
		writeJSON(w, http.StatusNotFound, ErrorResponse{
			Error: "no digimon found for the given type",
			Type:  typ,
		})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Search handles GET /digimons/search. All supplied criteria are
// ANDed; an empty result is a 200 with an empty items slice.
func (h *DigimonHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	criteria := search.Criteria{
		Name:      q.Get("name"),
		Level:     q.Get("level"),
		Type:      q.Get("type"),
		Attribute: q.Get("attribute"),
		Field:     q.Get("field"),
	}
	page, limit := pageParams(r, h.cfg.DefaultSearchLimit)
	writeJSON(w, http.StatusOK, h.digimons.Search(criteria, page, limit))
}

// GetByName handles GET /digimons/{name} via the staged resolver.
func (h *DigimonHandler) GetByName(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	d, err := h.digimons.GetByName(name)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, ErrorResponse{
				Error: "digimon not found",
				Name:  name,
			})
			return
		}
		h.log.Errorw("name lookup failed", "name", name, "error", err)
		http.Error(w, "Failed to look up digimon", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// pageParams coerces page/limit query parameters: missing or
// non-numeric values fall back (page to 1, limit to the surface
// default), anything below 1 is floored at 1.
func pageParams(r *http.Request, defaultLimit int) (page, limit int) {
	page = intParam(r, "page", 1)
	limit = intParam(r, "limit", defaultLimit)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	return page, limit
}

func intParam(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
