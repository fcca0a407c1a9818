package testutil

import (
	"context"

	"maestro/model"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
)

// SingleUserMessage builds a one-turn conversation.
func SingleUserMessage(content string) []model.Message {
	return []model.Message{
		{Role: model.RoleUser, Content: content},
	}
}

// RespondWith configures a mock to always return the given text and
// invocations.
func RespondWith(text string, invocations ...model.Invocation) func(context.Context, []model.Message, []mcptypes.Tool) (*model.RawResponse, error) {
	return func(context.Context, []model.Message, []mcptypes.Tool) (*model.RawResponse, error) {
		return &model.RawResponse{Text: text, Invocations: invocations}, nil
	}
}

// FailWith configures a mock to always return err.
func FailWith(err error) func(context.Context, []model.Message, []mcptypes.Tool) (*model.RawResponse, error) {
	return func(context.Context, []model.Message, []mcptypes.Tool) (*model.RawResponse, error) {
		return nil, err
	}
}

// Invocation is shorthand for building an unvalidated invocation.
func Invocation(name string, args map[string]any) model.Invocation {
	if args == nil {
		args = map[string]any{}
	}
	return model.Invocation{Name: name, Arguments: args}
}
