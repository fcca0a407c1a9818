package agent_test

import (
	"fmt"
	"testing"

	"maestro/agent"
	"maestro/model"
)

func TestHistoryPrunesOldestFirst(t *testing.T) {
	h := agent.NewHistory(4)

	for i := 0; i < 7; i++ {
		h.Append(model.Message{Role: model.RoleUser, Content: fmt.Sprintf("turn %d", i)})
	}

	turns := h.Turns()
	if len(turns) != 4 {
		t.Fatalf("len(Turns()) = %d, want 4", len(turns))
	}
	if turns[0].Content != "turn 3" {
		t.Errorf("oldest retained turn = %q, want %q", turns[0].Content, "turn 3")
	}
	if turns[3].Content != "turn 6" {
		t.Errorf("newest turn = %q, want %q", turns[3].Content, "turn 6")
	}
}

func TestHistoryStampsUnstampedTurns(t *testing.T) {
	h := agent.NewHistory(agent.DefaultMaxTurns)
	h.Append(model.Message{Role: model.RoleUser, Content: "hello"})

	if h.Turns()[0].Timestamp.IsZero() {
		t.Error("Append() left the timestamp zero")
	}
}

func TestHistoryTurnsReturnsSnapshot(t *testing.T) {
	h := agent.NewHistory(agent.DefaultMaxTurns)
	h.Append(model.Message{Role: model.RoleUser, Content: "original"})

	snapshot := h.Turns()
	snapshot[0].Content = "tampered"

	if h.Turns()[0].Content != "original" {
		t.Error("mutating the snapshot changed the history")
	}
}

func TestHistoryReplaceKeepsNewestWindow(t *testing.T) {
	h := agent.NewHistory(3)

	restored := make([]model.Message, 5)
	for i := range restored {
		restored[i] = model.Message{Role: model.RoleUser, Content: fmt.Sprintf("turn %d", i)}
	}
	h.Replace(restored)

	turns := h.Turns()
	if len(turns) != 3 {
		t.Fatalf("len after Replace = %d, want 3", len(turns))
	}
	if turns[0].Content != "turn 2" {
		t.Errorf("oldest turn after Replace = %q, want %q", turns[0].Content, "turn 2")
	}
}

func TestHistoryClear(t *testing.T) {
	h := agent.NewHistory(agent.DefaultMaxTurns)
	h.Append(model.Message{Role: model.RoleUser, Content: "hello"})
	h.Clear()

	if h.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", h.Len())
	}
}

func TestHistoryInvalidMaxFallsBack(t *testing.T) {
	h := agent.NewHistory(0)

	for i := 0; i < agent.DefaultMaxTurns+5; i++ {
		h.Append(model.Message{Role: model.RoleUser, Content: "x"})
	}
	if h.Len() != agent.DefaultMaxTurns {
		t.Errorf("Len() = %d, want %d", h.Len(), agent.DefaultMaxTurns)
	}
}
