package provider

import (
	"context"
	"fmt"

	"maestro/config"
	"maestro/model"
	"maestro/ollama"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
)

// OllamaProvider implements model.Provider for local models.
//
// Two paths exist, picked per model. Models on the curated support list
// get Ollama's native tool calling API. Everything else gets the tool
// vocabulary embedded in a system prompt and its reply scanned for a JSON
// tool call. When no parseable JSON comes back, the reply degrades to a
// chat-only response rather than an error.
type OllamaProvider struct {
	client *ollama.Client
}

// NewOllamaProvider creates a new Ollama provider instance.
//
// Parameters:
//   - baseURL: the Ollama server URL. Defaults to "http://localhost:11434".
//   - model: the model name. Defaults to "llama3.1:latest".
func NewOllamaProvider(baseURL, model string) (*OllamaProvider, error) {
	client, err := ollama.NewClient(baseURL, model)
	if err != nil {
		return nil, fmt.Errorf("failed to create Ollama client: %w", err)
	}

	return &OllamaProvider{client: client}, nil
}

// Send implements model.Provider.Send.
func (p *OllamaProvider) Send(ctx context.Context, messages []model.Message, tools []mcptypes.Tool) (*model.RawResponse, error) {
	native := p.client.SupportsToolCalling()

	outbound := messages
	if len(tools) > 0 && !native {
		toolInstruction := model.Message{
			Role:    model.RoleSystem,
			Content: buildTextToolInstructions(tools),
		}
		outbound = append([]model.Message{toolInstruction}, messages...)
	}

	ollamaMessages := ConvertToOllamaMessages(outbound)

	var result *ollama.ChatResult
	var err error
	if native && len(tools) > 0 {
		result, err = p.client.Chat(ctx, ollamaMessages, ConvertToolsToOllama(tools))
	} else {
		result, err = p.client.Chat(ctx, ollamaMessages, nil)
	}
	if err != nil {
		return nil, classify(KindOllama, "chat", err)
	}

	raw := &model.RawResponse{Text: result.Content}

	for _, call := range result.ToolCalls {
		raw.Invocations = append(raw.Invocations, model.Invocation{
			Name:      call.Function.Name,
			Arguments: map[string]any(call.Function.Arguments),
		})
	}

	// Text path (and native models that answered in prose anyway): scrape
	// the reply for a JSON tool call. No JSON means a plain chat reply.
	if len(raw.Invocations) == 0 && len(tools) > 0 {
		if scraped, remainder := ExtractInvocations(result.Content); len(scraped) > 0 {
			if config.Debug && config.DebugLog != nil {
				config.DebugLog.Printf("[Ollama] Model '%s': extracted %d tool call(s) from text", p.client.GetModel(), len(scraped))
			}
			raw.Invocations = scraped
			raw.Text = remainder
		}
	}

	return raw, nil
}

// GetModel implements model.Provider.GetModel (direct passthrough).
func (p *OllamaProvider) GetModel() string {
	return p.client.GetModel()
}

// GetDisplayName implements model.Provider.GetDisplayName.
// Ollama model names carry no vendor prefix; same as GetModel.
func (p *OllamaProvider) GetDisplayName() string {
	return p.client.GetModel()
}

// SetModel implements model.Provider.SetModel (direct passthrough).
func (p *OllamaProvider) SetModel(model string) {
	p.client.SetModel(model)
}

// Ping implements model.Provider.Ping (direct passthrough).
func (p *OllamaProvider) Ping(ctx context.Context) error {
	if err := p.client.Ping(ctx); err != nil {
		return classify(KindOllama, "ping", err)
	}
	return nil
}
