// Package testutil provides mock providers and message fixtures for
// exercising the pipeline without any network.
package testutil

import (
	"context"

	"maestro/model"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
)

// MockProvider implements model.Provider for testing.
// Each method delegates to a configurable func field with a sensible
// default, so tests override only what they care about.
type MockProvider struct {
	SendFunc func(ctx context.Context, messages []model.Message, tools []mcptypes.Tool) (*model.RawResponse, error)
	PingFunc func(ctx context.Context) error

	// SentMessages records the history passed to the most recent Send call.
	SentMessages []model.Message

	currentModel string
}

// NewMockProvider creates a mock provider with default implementations.
func NewMockProvider(modelName string) *MockProvider {
	mock := &MockProvider{currentModel: modelName}
	mock.SendFunc = mock.defaultSend
	mock.PingFunc = func(ctx context.Context) error { return nil }
	return mock
}

func (m *MockProvider) defaultSend(ctx context.Context, messages []model.Message, tools []mcptypes.Tool) (*model.RawResponse, error) {
	return &model.RawResponse{Text: "Mock response"}, nil
}

func (m *MockProvider) Send(ctx context.Context, messages []model.Message, tools []mcptypes.Tool) (*model.RawResponse, error) {
	m.SentMessages = append([]model.Message(nil), messages...)
	return m.SendFunc(ctx, messages, tools)
}

func (m *MockProvider) GetModel() string {
	return m.currentModel
}

func (m *MockProvider) GetDisplayName() string {
	return m.currentModel
}

func (m *MockProvider) SetModel(model string) {
	m.currentModel = model
}

func (m *MockProvider) Ping(ctx context.Context) error {
	return m.PingFunc(ctx)
}
