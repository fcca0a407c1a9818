// Package provider implements the AI backend adapters behind the
// model.Provider interface.
//
// maestro drives three structurally different backends through one
// contract:
//
//   - OpenRouter (OpenAI-compatible) with native structured function
//     calling, via the official OpenAI Go SDK
//   - local Ollama models, which may have no native function calling at
//     all; tool use is prompted for and scraped out of free text
//   - Anthropic, currently a placeholder that answers every request with
//     a fixed "not yet supported" message
//
// Each adapter is the only place its backend's wire format is spoken.
// Everything an adapter returns is a provider-agnostic model.RawResponse;
// nothing downstream of the factory branches on provider identity.
//
// Adapters hold credentials and the active model id, nothing else.
// Conversation history flows in as a parameter on every call.
package provider

// Kind identifies the adapter implementation.
type Kind string

const (
	KindOpenRouter Kind = "openrouter"
	KindOllama     Kind = "ollama"
	KindAnthropic  Kind = "anthropic"
)

// Config holds provider-specific configuration.
type Config struct {
	Kind    Kind
	BaseURL string
	Model   string
	APIKey  string // unused for Ollama
}

// KindFromID converts a user-facing provider id (from config) to a Kind.
// Unknown ids pass through unchanged; the factory rejects them.
func KindFromID(id string) Kind {
	switch id {
	case "openrouter":
		return KindOpenRouter
	case "ollama", "local":
		return KindOllama
	case "anthropic", "claude":
		return KindAnthropic
	default:
		return Kind(id)
	}
}
