package agent_test

import (
	"context"
	"errors"
	"testing"

	"maestro/agent"
	"maestro/model"
	"maestro/provider"
	"maestro/provider/testutil"
	"maestro/tools"
)

func newTestAgent(t *testing.T, mock *testutil.MockProvider) *agent.Agent {
	t.Helper()
	return agent.NewWithProvider(mock, provider.KindOllama, mustRegistry(t), agent.DefaultMaxTurns)
}

func TestProcessCommandAppendsBothTurns(t *testing.T) {
	mock := testutil.NewMockProvider("test-model")
	mock.SendFunc = testutil.RespondWith("Playing some jazz.",
		testutil.Invocation(tools.ToolSearchLibrary, map[string]any{"field": "genre", "query": "jazz"}),
	)
	a := newTestAgent(t, mock)

	resp, err := a.ProcessCommand(context.Background(), "play some jazz")
	if err != nil {
		t.Fatalf("ProcessCommand() error = %v", err)
	}

	if resp.Message != "Playing some jazz." {
		t.Errorf("Message = %q", resp.Message)
	}
	if len(resp.ToolCalls) != 1 {
		t.Fatalf("len(ToolCalls) = %d, want 1", len(resp.ToolCalls))
	}

	turns := a.History().Turns()
	if len(turns) != 2 {
		t.Fatalf("history has %d turn(s), want 2", len(turns))
	}
	if turns[0].Role != model.RoleUser || turns[0].Content != "play some jazz" {
		t.Errorf("user turn = %+v", turns[0])
	}
	if turns[1].Role != model.RoleAssistant || turns[1].Content != "Playing some jazz." {
		t.Errorf("assistant turn = %+v", turns[1])
	}
}

func TestProcessCommandSendsHistoryToProvider(t *testing.T) {
	mock := testutil.NewMockProvider("test-model")
	a := newTestAgent(t, mock)

	if _, err := a.ProcessCommand(context.Background(), "first"); err != nil {
		t.Fatalf("ProcessCommand() error = %v", err)
	}
	if _, err := a.ProcessCommand(context.Background(), "second"); err != nil {
		t.Fatalf("ProcessCommand() error = %v", err)
	}

	// Second Send sees the first exchange plus the new user turn.
	if len(mock.SentMessages) != 3 {
		t.Fatalf("provider saw %d message(s), want 3", len(mock.SentMessages))
	}
	if mock.SentMessages[2].Content != "second" {
		t.Errorf("last message sent = %q, want %q", mock.SentMessages[2].Content, "second")
	}
}

func TestProcessCommandFailureKeepsUserTurnOnly(t *testing.T) {
	sendErr := errors.New("backend unreachable")
	mock := testutil.NewMockProvider("test-model")
	mock.SendFunc = testutil.FailWith(sendErr)
	a := newTestAgent(t, mock)

	_, err := a.ProcessCommand(context.Background(), "play something")
	if !errors.Is(err, sendErr) {
		t.Fatalf("ProcessCommand() error = %v, want %v", err, sendErr)
	}

	turns := a.History().Turns()
	if len(turns) != 1 {
		t.Fatalf("history has %d turn(s) after failure, want 1", len(turns))
	}
	if turns[0].Role != model.RoleUser {
		t.Errorf("retained turn role = %s, want %s", turns[0].Role, model.RoleUser)
	}
}

func TestProcessCommandDropsInvalidInvocations(t *testing.T) {
	mock := testutil.NewMockProvider("test-model")
	mock.SendFunc = testutil.RespondWith("Done.",
		testutil.Invocation(tools.ToolSetVolume, map[string]any{"volume": float64(300)}),
		testutil.Invocation(tools.ToolSetVolume, map[string]any{"volume": float64(30)}),
	)
	a := newTestAgent(t, mock)

	resp, err := a.ProcessCommand(context.Background(), "crank it to 300")
	if err != nil {
		t.Fatalf("ProcessCommand() error = %v", err)
	}
	if len(resp.ToolCalls) != 1 {
		t.Fatalf("len(ToolCalls) = %d, want 1 (out-of-range call dropped)", len(resp.ToolCalls))
	}
	if resp.ToolCalls[0].Arguments["volume"] != float64(30) {
		t.Errorf("surviving volume = %v, want 30", resp.ToolCalls[0].Arguments["volume"])
	}
}

func TestSetProviderPreservesHistory(t *testing.T) {
	mock := testutil.NewMockProvider("test-model")
	a := newTestAgent(t, mock)

	if _, err := a.ProcessCommand(context.Background(), "hello"); err != nil {
		t.Fatalf("ProcessCommand() error = %v", err)
	}
	before := a.History().Len()

	// The Anthropic adapter constructs without touching the network.
	if err := a.SetProvider(provider.Config{Kind: provider.KindAnthropic}); err != nil {
		t.Fatalf("SetProvider() error = %v", err)
	}

	if a.Provider() != provider.KindAnthropic {
		t.Errorf("Provider() = %s, want %s", a.Provider(), provider.KindAnthropic)
	}
	if a.History().Len() != before {
		t.Errorf("history length changed across provider switch: %d -> %d", before, a.History().Len())
	}
}

func TestResetForgetsContext(t *testing.T) {
	mock := testutil.NewMockProvider("test-model")
	a := newTestAgent(t, mock)

	if _, err := a.ProcessCommand(context.Background(), "hello"); err != nil {
		t.Fatalf("ProcessCommand() error = %v", err)
	}

	a.Reset()

	if a.History().Len() != 0 {
		t.Errorf("history has %d turn(s) after Reset, want 0", a.History().Len())
	}
}

func TestModelManagement(t *testing.T) {
	mock := testutil.NewMockProvider("model-a")
	a := newTestAgent(t, mock)

	if a.Model() != "model-a" {
		t.Errorf("Model() = %q, want %q", a.Model(), "model-a")
	}

	a.SetModel("model-b")
	if a.Model() != "model-b" {
		t.Errorf("Model() after SetModel = %q, want %q", a.Model(), "model-b")
	}
}
