package provider_test

import (
	"testing"

	"maestro/model"
	"maestro/provider"
	"maestro/tools"
)

func TestConvertToOllamaMessages(t *testing.T) {
	messages := []model.Message{
		{Role: model.RoleSystem, Content: "You control a music player."},
		{Role: model.RoleUser, Content: "play some jazz"},
		{Role: model.RoleAssistant, Content: "Queued."},
	}

	converted := provider.ConvertToOllamaMessages(messages)

	if len(converted) != 3 {
		t.Fatalf("len = %d, want 3", len(converted))
	}
	for i, msg := range messages {
		if converted[i].Role != msg.Role || converted[i].Content != msg.Content {
			t.Errorf("message %d = %s/%q, want %s/%q",
				i, converted[i].Role, converted[i].Content, msg.Role, msg.Content)
		}
	}
}

func TestParseToolArguments(t *testing.T) {
	tests := []struct {
		name string
		json string
		want map[string]any
	}{
		{"well formed", `{"volume": 30}`, map[string]any{"volume": float64(30)}},
		{"empty object", `{}`, map[string]any{}},
		{"garbage", `{"volume": `, map[string]any{}},
		{"empty string", ``, map[string]any{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := provider.ParseToolArguments(tt.json)
			if got == nil {
				t.Fatal("ParseToolArguments() returned nil, want a map")
			}
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("args[%q] = %v, want %v", k, got[k], v)
				}
			}
		})
	}
}

func TestConvertToolsToOllamaCarriesSchema(t *testing.T) {
	registry, err := tools.NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}

	converted := provider.ConvertToolsToOllama(registry.Definitions())

	if len(converted) != len(registry.Definitions()) {
		t.Fatalf("converted %d tool(s), want %d", len(converted), len(registry.Definitions()))
	}

	byName := map[string]int{}
	for i, tool := range converted {
		if tool.Type != "function" {
			t.Errorf("tool %s type = %q, want function", tool.Function.Name, tool.Type)
		}
		byName[tool.Function.Name] = i
	}

	volume := converted[byName["set_volume"]].Function
	if volume.Description == "" {
		t.Error("set_volume lost its description")
	}
	if len(volume.Parameters.Required) != 1 || volume.Parameters.Required[0] != "volume" {
		t.Errorf("set_volume required = %v, want [volume]", volume.Parameters.Required)
	}

	control := converted[byName["playback_control"]].Function
	action, ok := control.Parameters.Properties["action"]
	if !ok {
		t.Fatal("playback_control lost its action property")
	}
	if len(action.Enum) != 4 {
		t.Errorf("action enum has %d value(s), want 4", len(action.Enum))
	}
}

func TestConvertEmptyToolLists(t *testing.T) {
	if got := provider.ConvertToolsToOllama(nil); got != nil {
		t.Errorf("ConvertToolsToOllama(nil) = %v, want nil", got)
	}
	if got := provider.ConvertToolsToOpenAI(nil); got != nil {
		t.Errorf("ConvertToolsToOpenAI(nil) = %v, want nil", got)
	}
}
