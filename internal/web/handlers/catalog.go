package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kozaktomas/physiognomy/internal/catalog"
	"github.com/kozaktomas/physiognomy/internal/log"
)

// CatalogHandler exposes the loaded rule catalog.
type CatalogHandler struct {
	catalog *catalog.Catalog
}

func NewCatalogHandler(cat *catalog.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: cat}
}

// RuleResponse is one rule as shown to clients.
type RuleResponse struct {
	Metric    string   `json:"metric"`
	Condition string   `json:"condition"`
	Trait     string   `json:"trait"`
	Tags      []string `json:"tags"`
	Inert     bool     `json:"inert,omitempty"`
}

// CategoryResponse is one category with its rules in catalog order.
type CategoryResponse struct {
	Name  string         `json:"name"`
	Rules []RuleResponse `json:"rules"`
}

func categoryResponse(c catalog.Category) CategoryResponse {
	rules := make([]RuleResponse, 0, len(c.Rules))
	for _, r := range c.Rules {
		tags := r.Tags
		if tags == nil {
			tags = []string{}
		}
		rules = append(rules, RuleResponse{
			Metric:    string(r.Metric),
			Condition: r.Condition(),
			Trait:     r.Trait,
			Tags:      tags,
			Inert:     !r.Known(),
		})
	}
	return CategoryResponse{Name: c.Name, Rules: rules}
}

// List handles GET /api/v1/catalog.
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	categories := h.catalog.Categories()
	resp := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		resp = append(resp, categoryResponse(c))
	}
	respondJSON(w, http.StatusOK, resp)
}

// Get handles GET /api/v1/catalog/{category}. Lookup ignores case and
// Vietnamese diacritics, so "Miệng Cằm" finds mieng_cam.
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "category")
	c, ok := h.catalog.Category(name)
	if !ok {
		log.WithRequestID(r.Context()).WithField("category", sanitizeForLog(name)).Debug("unknown category requested")
		respondError(w, http.StatusNotFound, "category not found")
		return
	}
	respondJSON(w, http.StatusOK, categoryResponse(c))
}
