package provider

import (
	"encoding/json"
	"strings"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
)

// shouldSkipToolInstructions checks if a model BREAKS with explicit tool
// instructions. Most models benefit from them, but some understand tools
// natively and leak markup when prompted explicitly.
func shouldSkipToolInstructions(modelName string) bool {
	modelLower := strings.ToLower(modelName)

	skipInstructions := []string{
		"qwen", // leaks XML with instructions, works natively without them
	}

	for _, prefix := range skipInstructions {
		if strings.Contains(modelLower, prefix) {
			return true
		}
	}

	return false
}

// buildStructuredToolInstructions creates execution guidance for backends
// with native function calling. The schemas travel separately in the
// request; this only pushes the model to act instead of narrate.
func buildStructuredToolInstructions(tools []mcptypes.Tool) string {
	toolNames := []string{}
	for _, tool := range tools {
		toolNames = append(toolNames, tool.Name)
	}

	return strings.Join([]string{
		"You control a music player. TOOLS: " + strings.Join(toolNames, ", "),
		"",
		"When the user asks for something that requires a tool:",
		"1. Determine which tool is needed",
		"2. Check if you have all required parameters",
		"3. If yes: Call the tool IMMEDIATELY without explanation",
		"4. If no: Ask for the missing parameter ONLY",
		"",
		"DO NOT:",
		"- List available tools",
		"- Explain what you're about to do",
		"- Ask 'what would you like me to do?'",
		"",
		"Example:",
		"User: 'play some miles davis'",
		"You: [call add_to_queue(field='artist', query='Miles Davis'), then play()]",
	}, "\n")
}

// buildTextToolInstructions creates the system prompt for backends with no
// native function calling. The full parameter schema of every tool is
// embedded, along with the exact JSON shape the reply must use, since the
// only way to get a tool call out of these models is to ask for one in
// text and scrape it back out.
func buildTextToolInstructions(tools []mcptypes.Tool) string {
	var b strings.Builder

	b.WriteString("You control a music player. You can only act through the tools below.\n\n")
	b.WriteString("AVAILABLE TOOLS:\n")

	for _, tool := range tools {
		schema, err := json.Marshal(tool.InputSchema)
		if err != nil {
			continue
		}
		b.WriteString("- ")
		b.WriteString(tool.Name)
		b.WriteString(": ")
		b.WriteString(tool.Description)
		b.WriteString("\n  parameters: ")
		b.Write(schema)
		b.WriteString("\n")
	}

	b.WriteString(strings.Join([]string{
		"",
		"To perform an action, reply with EXACTLY ONE JSON object on its own line:",
		`{"tool": "<tool name>", "arguments": {<parameters>}}`,
		"",
		"For several actions, reply with ONE JSON array of such objects, in order.",
		"",
		"RULES:",
		"1. Use only the tool names and parameters listed above",
		"2. Do not wrap the JSON in code fences or add commentary around it",
		"3. If no tool is needed, reply with plain text and NO JSON",
		"4. If a required parameter is missing, ask for it instead of guessing",
		"",
		"Example:",
		"User: 'turn it down to 30'",
		`You: {"tool": "set_volume", "arguments": {"volume": 30}}`,
	}, "\n"))

	return b.String()
}
