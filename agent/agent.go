// Package agent is the command pipeline's facade: one Agent instance owns
// the conversation history and the active provider, and turns a free-form
// utterance into an AgentResponse of validated tool calls.
package agent

import (
	"context"
	"fmt"
	"sync"

	"maestro/config"
	"maestro/model"
	"maestro/provider"
	"maestro/tools"
)

// Agent orchestrates a single command turn: append the user turn, call the
// active provider, normalize, append the assistant turn, return.
//
// All session state (active provider, active model, history) lives in
// Agent fields. Construct one
// per interactive session and pass it by reference; do not share one
// history across logical sessions.
//
// ProcessCommand is serialized by an internal mutex (single-flight): if an
// embedding application issues a command while another is still awaiting
// the network, the second waits, so turn order in the history always
// matches issue order.
type Agent struct {
	flight sync.Mutex

	prov     model.Provider
	kind     provider.Kind
	history  *History
	registry *tools.Registry
}

// New creates an Agent with the given provider configuration.
func New(cfg provider.Config, registry *tools.Registry, maxTurns int) (*Agent, error) {
	p, err := provider.NewProvider(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create provider: %w", err)
	}

	return &Agent{
		prov:     p,
		kind:     cfg.Kind,
		history:  NewHistory(maxTurns),
		registry: registry,
	}, nil
}

// NewWithProvider creates an Agent around an already-constructed provider.
// Embedding applications that manage their own adapters (and tests using
// mocks) use this instead of New.
func NewWithProvider(p model.Provider, kind provider.Kind, registry *tools.Registry, maxTurns int) *Agent {
	return &Agent{
		prov:     p,
		kind:     kind,
		history:  NewHistory(maxTurns),
		registry: registry,
	}
}

// ProcessCommand runs one natural-language command through the pipeline.
//
// On provider failure the error propagates without corrupting history: the
// user turn that triggered the call stays (so a retry has full context)
// and no assistant turn is appended. The same holds for cancellation:
// the user turn commits, the assistant turn is simply absent.
func (a *Agent) ProcessCommand(ctx context.Context, utterance string) (model.AgentResponse, error) {
	a.flight.Lock()
	defer a.flight.Unlock()

	a.history.Append(model.Message{Role: model.RoleUser, Content: utterance})

	raw, err := a.prov.Send(ctx, a.history.Turns(), a.registry.Definitions())
	if err != nil {
		return model.AgentResponse{}, err
	}

	resp := Normalize(raw, a.registry)

	// The assistant turn records the normalized message, not raw provider
	// text: scraped tool-call JSON has already been stripped from it.
	a.history.Append(model.Message{Role: model.RoleAssistant, Content: resp.Message})

	return resp, nil
}

// SetProvider swaps the active adapter. History is provider-agnostic and
// survives the switch unchanged; only provider-side session assumptions
// (the adapter instance itself, its capability probing) are reset.
func (a *Agent) SetProvider(cfg provider.Config) error {
	p, err := provider.NewProvider(cfg)
	if err != nil {
		return fmt.Errorf("failed to switch provider: %w", err)
	}

	a.flight.Lock()
	defer a.flight.Unlock()

	a.prov = p
	a.kind = cfg.Kind

	if config.Debug && config.DebugLog != nil {
		config.DebugLog.Printf("[agent] switched provider to %s (model %s), %d turn(s) retained",
			cfg.Kind, p.GetModel(), a.history.Len())
	}
	return nil
}

// SetModel changes the active adapter's model. No history effect.
func (a *Agent) SetModel(modelID string) {
	a.flight.Lock()
	defer a.flight.Unlock()
	a.prov.SetModel(modelID)
}

// Provider returns the kind of the active adapter.
func (a *Agent) Provider() provider.Kind {
	return a.kind
}

// Model returns the active adapter's model id.
func (a *Agent) Model() string {
	return a.prov.GetModel()
}

// ModelDisplayName returns the active model formatted for display.
func (a *Agent) ModelDisplayName() string {
	return a.prov.GetDisplayName()
}

// History exposes the agent's conversation history, e.g. for persistence.
func (a *Agent) History() *History {
	return a.history
}

// Reset forgets all conversation context. Provider switching never does
// this implicitly; forgetting is always an explicit caller decision.
func (a *Agent) Reset() {
	a.history.Clear()
}

// Ping checks the active provider's reachability.
func (a *Agent) Ping(ctx context.Context) error {
	return a.prov.Ping(ctx)
}
