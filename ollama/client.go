package ollama

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"
)

type Client struct {
	client  *api.Client
	model   string
	baseURL string
}

func NewClient(baseURL, model string) (*Client, error) {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if model == "" {
		model = "llama3.1:latest"
	}

	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid Ollama URL: %w", err)
	}

	client := api.NewClient(parsedURL, http.DefaultClient)

	return &Client{
		client:  client,
		model:   model,
		baseURL: baseURL,
	}, nil
}

// ChatResult is the fully accumulated reply to a single chat request.
type ChatResult struct {
	Content   string
	ToolCalls []api.ToolCall
}

// Chat sends a non-streaming chat request, with optional tool definitions,
// and returns the complete reply.
func (c *Client) Chat(ctx context.Context, messages []api.Message, tools []api.Tool) (*ChatResult, error) {
	req := &api.ChatRequest{
		Model:    c.model,
		Messages: messages,
		Tools:    tools,
		Stream:   func(b bool) *bool { return &b }(false),
	}

	result := &ChatResult{}
	respFunc := func(resp api.ChatResponse) error {
		result.Content += resp.Message.Content
		if len(resp.Message.ToolCalls) > 0 {
			result.ToolCalls = append(result.ToolCalls, resp.Message.ToolCalls...)
		}
		return nil
	}

	if err := c.client.Chat(ctx, req, respFunc); err != nil {
		return nil, err
	}

	return result, nil
}

func (c *Client) SetModel(model string) {
	c.model = model
}

func (c *Client) GetModel() string {
	return c.model
}

// ListModels returns the names of all models installed on the server.
func (c *Client) ListModels(ctx context.Context) ([]string, error) {
	resp, err := c.client.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}

	names := make([]string, 0, len(resp.Models))
	for _, m := range resp.Models {
		names = append(names, m.Name)
	}
	return names, nil
}

func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := c.client.List(ctx)
	return err
}

// toolCallingModels tracks which model families support Ollama's native
// tool calling API. Curated from Ollama documentation and community testing.
var toolCallingModels = map[string]bool{
	"qwen":      true,
	"llama3.1":  true,
	"llama3.2":  true,
	"llama3.3":  true,
	"mistral":   true,
	"command-r": true,
	"nemotron":  true,
	"granite3":  true,

	// Models with issues or no tool support
	"llama3-gradient": false,
	"llama3":          false, // original llama3 (not 3.1/3.2/3.3)
	"phi":             false,
	"gemma":           false,
	"codellama":       false,
	"deepseek":        false,
}

// orderedPrefixes defines the order to check model prefixes.
// Most specific first, so "llama3.2" is not matched as generic "llama3".
var orderedPrefixes = []string{
	"llama3.3", "llama3.2", "llama3.1",
	"llama3-gradient",
	"command-r", "qwen", "mistral", "nemotron", "granite3",
	"codellama",
	"llama3",
	"deepseek", "phi", "gemma",
}

// ModelSupportsToolCalling reports whether a model is known to support
// Ollama's native tool calling API. Unknown models default to false, which
// routes them through system-prompt tool instructions instead.
func ModelSupportsToolCalling(modelName string) bool {
	modelName = strings.ToLower(modelName)

	for _, prefix := range orderedPrefixes {
		if strings.HasPrefix(modelName, prefix) {
			if supported, exists := toolCallingModels[prefix]; exists {
				return supported
			}
		}
	}

	return false
}

// SupportsToolCalling reports native tool support for the client's current model.
func (c *Client) SupportsToolCalling() bool {
	return ModelSupportsToolCalling(c.model)
}
