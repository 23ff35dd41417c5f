package interpret

import (
	"context"

	"github.com/kozaktomas/physiognomy/internal/config"
)

// NewProviders creates the configured providers in preference order,
// Gemini first. An empty result is valid and yields fallback readings.
func NewProviders(ctx context.Context, cfg *config.Config) ([]Provider, error) {
	var providers []Provider
	for _, name := range cfg.InterpretProviders() {
		switch name {
		case "gemini":
			p, err := NewGeminiProvider(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
			if err != nil {
				return nil, err
			}
			providers = append(providers, p)
		case "openai":
			providers = append(providers, NewOpenAIProvider(cfg.OpenAI.Token, cfg.OpenAI.Model))
		}
	}
	return providers, nil
}
