package provider

import (
	"context"

	"maestro/model"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
)

// AnthropicProvider is a placeholder: the Claude backend is not wired up
// yet. Every Send returns the same fixed notice, with no network I/O, so
// selecting "anthropic" in the config yields a functioning (if limited)
// session instead of a crash. The type exists so the factory, config and
// switching paths are already in place for when the real adapter lands.
type AnthropicProvider struct {
	model string
}

const anthropicNotSupported = "The Anthropic (Claude) backend is not supported yet. " +
	"Switch to the 'openrouter' or 'ollama' provider to control the player."

// NewAnthropicProvider creates the placeholder. It never fails; there are
// no credentials to check because nothing is ever sent.
func NewAnthropicProvider(model string) *AnthropicProvider {
	if model == "" {
		model = "claude-sonnet-4-5"
	}
	return &AnthropicProvider{model: model}
}

// Send implements model.Provider.Send with a fixed response.
func (p *AnthropicProvider) Send(ctx context.Context, messages []model.Message, tools []mcptypes.Tool) (*model.RawResponse, error) {
	return &model.RawResponse{Text: anthropicNotSupported}, nil
}

// GetModel implements model.Provider.GetModel.
func (p *AnthropicProvider) GetModel() string {
	return p.model
}

// GetDisplayName implements model.Provider.GetDisplayName.
func (p *AnthropicProvider) GetDisplayName() string {
	return p.model
}

// SetModel implements model.Provider.SetModel.
func (p *AnthropicProvider) SetModel(model string) {
	p.model = model
}

// Ping implements model.Provider.Ping. The placeholder performs no I/O,
// so there is nothing to fail.
func (p *AnthropicProvider) Ping(ctx context.Context) error {
	return nil
}
