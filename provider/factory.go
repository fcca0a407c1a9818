package provider

import (
	"fmt"

	"maestro/model"
)

// NewProvider creates a provider based on configuration.
//
// This is the centralized factory for every adapter; it is the only place
// that maps a Kind to a concrete implementation. The agent holds whatever
// comes back as a model.Provider and never branches on kind again.
//
// Returns an error if the kind is unknown or the adapter's constructor
// fails (e.g. missing API key, invalid URL).
func NewProvider(cfg Config) (model.Provider, error) {
	switch cfg.Kind {
	case KindOpenRouter:
		return NewOpenRouterProvider(cfg.BaseURL, cfg.APIKey, cfg.Model)
	case KindOllama:
		return NewOllamaProvider(cfg.BaseURL, cfg.Model)
	case KindAnthropic:
		return NewAnthropicProvider(cfg.Model), nil
	default:
		return nil, fmt.Errorf("unknown provider kind: %s", cfg.Kind)
	}
}
