package handlers

import (
	"net/http"

	"github.com/kozaktomas/physiognomy/internal/catalog"
	"github.com/kozaktomas/physiognomy/internal/config"
	"github.com/kozaktomas/physiognomy/internal/metric"
)

// ConfigHandler handles configuration endpoints
type ConfigHandler struct {
	config  *config.Config
	catalog *catalog.Catalog
}

// NewConfigHandler creates a new config handler
func NewConfigHandler(cfg *config.Config, cat *catalog.Catalog) *ConfigHandler {
	return &ConfigHandler{
		config:  cfg,
		catalog: cat,
	}
}

// ConfigResponse represents the configuration response
type ConfigResponse struct {
	Providers      []ProviderInfo `json:"providers"`
	Catalog        CatalogInfo    `json:"catalog"`
	Metrics        []string       `json:"metrics"`
	OverlayMaxSize int            `json:"overlay_max_size"`
}

// ProviderInfo represents information about an interpretation provider
type ProviderInfo struct {
	Name      string `json:"name"`
	Model     string `json:"model"`
	Available bool   `json:"available"`
}

// CatalogInfo describes the loaded rule catalog.
type CatalogInfo struct {
	Source     string   `json:"source"`
	Strict     bool     `json:"strict"`
	Categories []string `json:"categories"`
	Inert      int      `json:"inert_rules"`
}

// Get returns the available configuration
func (h *ConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	providers := []ProviderInfo{
		{
			Name:      "gemini",
			Model:     h.config.Gemini.Model,
			Available: h.config.Gemini.APIKey != "",
		},
		{
			Name:      "openai",
			Model:     h.config.OpenAI.Model,
			Available: h.config.OpenAI.Token != "",
		},
	}

	source := h.config.Catalog.Path
	if source == "" {
		source = "embedded"
	}

	keys := metric.Keys()
	metrics := make([]string, len(keys))
	for i, k := range keys {
		metrics[i] = string(k)
	}

	response := ConfigResponse{
		Providers: providers,
		Catalog: CatalogInfo{
			Source:     source,
			Strict:     h.config.Catalog.Strict,
			Categories: h.catalog.Names(),
			Inert:      len(h.catalog.Unknown()),
		},
		Metrics:        metrics,
		OverlayMaxSize: h.config.Overlay.MaxSize,
	}

	respondJSON(w, http.StatusOK, response)
}
