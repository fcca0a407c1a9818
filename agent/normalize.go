package agent

import (
	"maestro/config"
	"maestro/model"
	"maestro/tools"
)

// Normalize converts a raw provider response into the provider-agnostic
// AgentResponse that everything downstream consumes.
//
// Every invocation, whether it arrived as a native function call or was
// scraped out of free text, runs through registry validation here.
// Invocations that fail validation are dropped, never thrown: one
// malformed suggestion should not derail an otherwise useful reply.
// Drops are counted to the debug log for observability.
//
// A ToolCall emitted by Normalize always re-validates cleanly; the
// dispatcher relies on that.
func Normalize(raw *model.RawResponse, registry *tools.Registry) model.AgentResponse {
	resp := model.AgentResponse{ToolCalls: []model.ToolCall{}}
	if raw == nil {
		return resp
	}
	resp.Message = raw.Text

	dropped := 0
	for _, inv := range raw.Invocations {
		args, err := registry.Validate(inv.Name, inv.Arguments)
		if err != nil {
			dropped++
			if config.Debug && config.DebugLog != nil {
				config.DebugLog.Printf("[normalize] dropped invocation: %v", err)
			}
			continue
		}
		resp.ToolCalls = append(resp.ToolCalls, model.ToolCall{
			Name:      inv.Name,
			Arguments: args,
		})
	}

	if dropped > 0 && config.Debug && config.DebugLog != nil {
		config.DebugLog.Printf("[normalize] %d of %d invocation(s) failed validation", dropped, len(raw.Invocations))
	}

	return resp
}
