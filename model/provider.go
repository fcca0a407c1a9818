package model

import (
	"context"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
)

// Provider abstracts the AI backends maestro can drive (OpenRouter, local
// Ollama, and the Anthropic placeholder) behind provider-agnostic types.
//
// The interface lives in the model package rather than the provider package
// to avoid import cycles: provider implementations import model, and the
// agent can hold a Provider without importing any concrete adapter.
//
// Adapters are stateless across calls apart from their credentials and the
// active model id. Conversation history always flows in as a parameter and
// is never cached inside an adapter.
type Provider interface {
	// Send submits the conversation plus the tool vocabulary and returns the
	// backend's reply in provider-agnostic form. Tool invocations in the
	// returned RawResponse are unvalidated; the agent's normalizer is
	// responsible for checking them against the registry.
	Send(ctx context.Context, messages []Message, tools []mcptypes.Tool) (*RawResponse, error)

	// GetModel returns the currently selected model id as sent to the API.
	GetModel() string

	// GetDisplayName returns the model name formatted for display.
	// For OpenRouter this strips the vendor prefix ("qwen/qwen3-coder:free"
	// becomes "qwen3-coder:free"); for Ollama it equals GetModel().
	GetDisplayName() string

	// SetModel changes the active model.
	SetModel(model string)

	// Ping checks if the provider is reachable.
	Ping(ctx context.Context) error
}
