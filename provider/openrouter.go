package provider

import (
	"context"
	"fmt"
	"strings"

	"maestro/config"
	"maestro/model"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// OpenRouterProvider implements model.Provider using OpenAI's official Go
// SDK. It connects to OpenRouter's API, which is 100% OpenAI-compatible,
// and relies on native structured function calling.
type OpenRouterProvider struct {
	client  openai.Client
	model   string
	baseURL string
	apiKey  string
}

// NewOpenRouterProvider creates a new OpenRouter provider instance.
//
// Parameters:
//   - baseURL: OpenRouter API base URL ("https://openrouter.ai/api/v1")
//   - apiKey: OpenRouter API key (required)
//   - model: initial model to use (can be changed with SetModel)
func NewOpenRouterProvider(baseURL, apiKey, model string) (*OpenRouterProvider, error) {
	if baseURL == "" {
		baseURL = "https://openrouter.ai/api/v1"
	}
	if apiKey == "" {
		return nil, fmt.Errorf("OpenRouter API key is required")
	}
	if model == "" {
		model = "meta-llama/llama-3.2-90b-instruct"
	}

	client := openai.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
	)

	return &OpenRouterProvider{
		client:  client,
		model:   model,
		baseURL: baseURL,
		apiKey:  apiKey,
	}, nil
}

// Send implements model.Provider.Send.
//
// Native function invocations come back as explicit records on the reply
// message and map 1:1 onto invocations. As a safety net, when the API
// reports none, the reply text is scanned for leaked JSON tool calls;
// some models emit them as prose no matter what the request asked for.
func (p *OpenRouterProvider) Send(ctx context.Context, messages []model.Message, tools []mcptypes.Tool) (*model.RawResponse, error) {
	messagesWithInstructions := messages
	if len(tools) > 0 && !shouldSkipToolInstructions(p.model) {
		toolInstruction := model.Message{
			Role:    model.RoleSystem,
			Content: buildStructuredToolInstructions(tools),
		}
		messagesWithInstructions = append([]model.Message{toolInstruction}, messages...)
	}

	params := openai.ChatCompletionNewParams{
		Messages: ConvertToOpenAIMessages(messagesWithInstructions),
		Model:    openai.ChatModel(p.model),
	}

	if len(tools) > 0 {
		params.Tools = ConvertToolsToOpenAI(tools)
	}

	completion, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, classify(KindOpenRouter, "chat completion", err)
	}

	if len(completion.Choices) == 0 {
		return nil, &ProviderError{
			Kind:      KindOpenRouter,
			Op:        "chat completion",
			Retryable: true,
			Err:       fmt.Errorf("response contained no choices"),
		}
	}

	msg := completion.Choices[0].Message
	raw := &model.RawResponse{Text: msg.Content}

	for _, tc := range msg.ToolCalls {
		raw.Invocations = append(raw.Invocations, model.Invocation{
			Name:      tc.Function.Name,
			Arguments: ParseToolArguments(tc.Function.Arguments),
		})
	}

	// Safety net: scan for leaked tool calls when none came via the API.
	if len(raw.Invocations) == 0 {
		if leaked, remainder := ExtractInvocations(msg.Content); len(leaked) > 0 {
			if config.Debug && config.DebugLog != nil {
				config.DebugLog.Printf("[OpenRouter] Model '%s': recovered %d leaked tool call(s) from text", p.model, len(leaked))
			}
			raw.Invocations = leaked
			raw.Text = remainder
		}
	}

	return raw, nil
}

// GetModel implements model.Provider.GetModel.
// Returns the full model name with vendor prefix for API calls.
func (p *OpenRouterProvider) GetModel() string {
	return p.model
}

// GetDisplayName implements model.Provider.GetDisplayName.
// Returns the model name with the vendor prefix stripped.
// Example: "qwen/qwen3-coder:free" → "qwen3-coder:free"
func (p *OpenRouterProvider) GetDisplayName() string {
	return stripVendorPrefix(p.model)
}

// SetModel implements model.Provider.SetModel.
func (p *OpenRouterProvider) SetModel(model string) {
	p.model = model
}

// Ping implements model.Provider.Ping by attempting to list models.
func (p *OpenRouterProvider) Ping(ctx context.Context) error {
	_, err := p.client.Models.List(ctx)
	if err != nil {
		return classify(KindOpenRouter, "ping", err)
	}
	return nil
}

// stripVendorPrefix removes vendor prefixes from OpenRouter model names.
// "meta-llama/llama-3.2-90b-instruct" → "llama-3.2-90b-instruct"
func stripVendorPrefix(modelName string) string {
	if idx := strings.Index(modelName, "/"); idx != -1 {
		return modelName[idx+1:]
	}
	return modelName
}
